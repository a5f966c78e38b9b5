package render

import "github.com/automate-formation/orchestrator/domain"

// documentSkeleton opens every generated document. The body templates below
// close the html tag themselves.
const documentSkeleton = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<style>
body { font-family: "Helvetica Neue", Arial, sans-serif; margin: 2.5cm; color: #1a1a1a; }
h1 { text-align: center; text-transform: uppercase; font-size: 1.4em; }
h2 { font-size: 1.1em; border-bottom: 1px solid #999; padding-bottom: 4px; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { border: 1px solid #999; padding: 6px 10px; text-align: left; }
.footer { margin-top: 3em; font-size: 0.8em; color: #555; }
.signature { margin-top: 4em; }
.checkbox { letter-spacing: 0.3em; }
</style>
</head>
<body>
`

const documentFooter = `<div class="footer">
<p>{{.organisme_nom}} — SIRET {{.organisme_siret}} — Déclaration d'activité {{.organisme_nda}}<br>
{{.organisme_adresse}}</p>
</div>
</body>
</html>`

var baseRequired = []string{"titre_formation", "entreprise_nom", "date_debut", "date_fin"}

func withParticipant(keys ...string) []string {
	return append(append([]string{}, baseRequired...), append([]string{"participant_nom"}, keys...)...)
}

var templateCatalog = map[domain.DocumentType]struct {
	body     string
	required []string
}{
	domain.DocProposition: {
		required: append(baseRequired, "prix_total_ht"),
		body: `<h1>Proposition de formation</h1>
<table>
<tr><td>Formation</td><td>{{.titre_formation}}</td></tr>
<tr><td>Entreprise bénéficiaire</td><td>{{.entreprise_nom}}</td></tr>
<tr><td>Dates</td><td>Du {{.date_debut}} au {{.date_fin}}</td></tr>
<tr><td>Durée</td><td>{{.duree}} heures</td></tr>
<tr><td>Lieu</td><td>{{.lieu}}</td></tr>
<tr><td>Nombre de participants</td><td>{{.nombre_participants}}</td></tr>
</table>
<h2>Conditions financières</h2>
<table>
<tr><td>Prix unitaire HT</td><td>{{.prix_unitaire_ht}} €</td></tr>
<tr><td>Prix total HT</td><td>{{.prix_total_ht}} €</td></tr>
<tr><td>TVA (20%)</td><td>{{.tva}} €</td></tr>
<tr><td>Prix total TTC</td><td>{{.prix_total_ttc}} €</td></tr>
</table>
<p>Proposition valable 30 jours. Pour accord, nous retourner ce document signé.</p>
` + documentFooter,
	},

	domain.DocDevis: {
		required: append(baseRequired, "prix_total_ht"),
		body: `<h1>Devis</h1>
<p><strong>Formation :</strong> {{.titre_formation}}<br>
<strong>Entreprise :</strong> {{.entreprise_nom}}<br>
<strong>Période :</strong> du {{.date_debut}} au {{.date_fin}}</p>
<table>
<tr><th>Désignation</th><th>Quantité</th><th>PU HT</th><th>Total HT</th></tr>
<tr><td>{{.titre_formation}} ({{.duree}} h)</td><td>{{.nombre_participants}}</td><td>{{.prix_unitaire_ht}} €</td><td>{{.prix_total_ht}} €</td></tr>
<tr><td colspan="3">TVA (20%)</td><td>{{.tva}} €</td></tr>
<tr><td colspan="3"><strong>Total TTC</strong></td><td><strong>{{.prix_total_ttc}} €</strong></td></tr>
</table>
<div class="signature"><p>Bon pour accord — Date et signature :</p></div>
` + documentFooter,
	},

	domain.DocConvention: {
		required: append(baseRequired, "prix_total_ht"),
		body: `<h1>Convention de formation professionnelle</h1>
<p>Entre l'organisme de formation <strong>{{.organisme_nom}}</strong> (N° de déclaration d'activité {{.organisme_nda}})
et l'entreprise <strong>{{.entreprise_nom}}</strong> ({{.entreprise_adresse}}), il est conclu la présente convention.</p>
<h2>Article 1 — Objet</h2>
<p>Action de formation : <strong>{{.titre_formation}}</strong>, du {{.date_debut}} au {{.date_fin}},
d'une durée de {{.duree}} heures, au lieu suivant : {{.lieu}}.</p>
<h2>Article 2 — Effectif</h2>
<p>{{.nombre_participants}} participant(s) de l'entreprise bénéficiaire.</p>
<h2>Article 3 — Dispositions financières</h2>
<p>Prix total HT : {{.prix_total_ht}} € — TVA : {{.tva}} € — Prix total TTC : {{.prix_total_ttc}} €.</p>
<div class="signature">
<table>
<tr><th>Pour l'organisme de formation</th><th>Pour l'entreprise</th></tr>
<tr><td style="height:6em">Signature :</td><td>Signature :</td></tr>
</table>
</div>
` + documentFooter,
	},

	domain.DocProgramme: {
		required: baseRequired,
		body: `<h1>Programme de formation</h1>
<p><strong>{{.titre_formation}}</strong> — {{.duree}} heures — du {{.date_debut}} au {{.date_fin}}</p>
<h2>Objectifs pédagogiques</h2>
<p>{{.objectifs}}</p>
<h2>Public visé</h2>
<p>{{.public_vise}}</p>
<h2>Prérequis</h2>
<p>{{.prerequis}}</p>
<h2>Modalités</h2>
<p>Lieu : {{.lieu}} — Horaires : {{.horaires}} — Formateur : {{.formateur_nom}}.</p>
<p>Évaluation des acquis en fin de formation et remise d'un certificat de réalisation.</p>
` + documentFooter,
	},

	domain.DocConvocation: {
		required: withParticipant(),
		body: `<h1>Convocation</h1>
<p>{{.participant_nom_complet}},</p>
<p>Vous êtes convoqué(e) à la formation suivante :</p>
<table>
<tr><td>Formation</td><td>{{.titre_formation}}</td></tr>
<tr><td>Dates</td><td>Du {{.date_debut}} au {{.date_fin}}</td></tr>
<tr><td>Horaires</td><td>{{.horaires}}</td></tr>
<tr><td>Lieu</td><td>{{.lieu}}</td></tr>
</table>
<p>Merci de vous présenter 15 minutes avant le début de la session, muni(e) de cette convocation.</p>
` + documentFooter,
	},

	domain.DocEmargement: {
		required: baseRequired,
		body: `<h1>Feuille d'émargement</h1>
<p><strong>{{.titre_formation}}</strong> — {{.entreprise_nom}} — du {{.date_debut}} au {{.date_fin}} — {{.lieu}}</p>
<table>
<tr><th>Nom et prénom</th><th>Matin</th><th>Après-midi</th></tr>
<tr><td style="height:3em"></td><td></td><td></td></tr>
<tr><td style="height:3em"></td><td></td><td></td></tr>
<tr><td style="height:3em"></td><td></td><td></td></tr>
<tr><td style="height:3em"></td><td></td><td></td></tr>
<tr><td style="height:3em"></td><td></td><td></td></tr>
</table>
<p>Signature du formateur ({{.formateur_nom}}) :</p>
` + documentFooter,
	},

	domain.DocCertificat: {
		required: withParticipant(),
		body: `<h1>Certificat de réalisation</h1>
<p>L'organisme de formation <strong>{{.organisme_nom}}</strong> atteste que</p>
<p style="text-align:center; font-size:1.2em"><strong>{{.participant_nom_complet}}</strong></p>
<p>de l'entreprise {{.entreprise_nom}} a suivi la formation
<strong>{{.titre_formation}}</strong> d'une durée de {{.duree}} heures,
du {{.date_debut}} au {{.date_fin}}.</p>
<div class="signature"><p>Fait pour valoir ce que de droit.<br>Signature et cachet de l'organisme :</p></div>
` + documentFooter,
	},

	domain.DocQuestionnairePrealable: {
		required: withParticipant(),
		body: `<h1>Questionnaire préalable à la formation</h1>
<p>Participant : <strong>{{.participant_nom_complet}}</strong> — Fonction : {{.participant_fonction}}<br>
Formation : {{.titre_formation}} (du {{.date_debut}} au {{.date_fin}})</p>
<h2>Vos attentes</h2>
<p>1. Quelles sont vos attentes vis-à-vis de cette formation ?</p>
<p>____________________________________________________________</p>
<p>2. Quel est votre niveau actuel sur le sujet ?</p>
<p class="checkbox">☐ Débutant &nbsp; ☐ Intermédiaire &nbsp; ☐ Avancé</p>
<p>3. Avez-vous des besoins spécifiques (accessibilité, matériel) ?</p>
<p>____________________________________________________________</p>
<p>Merci de retourner ce questionnaire avant le début de la formation.</p>
` + documentFooter,
	},

	domain.DocEvaluationAChaud: {
		required: withParticipant(),
		body: `<h1>Évaluation à chaud</h1>
<p>Participant : {{.participant_nom_complet}} — Formation : {{.titre_formation}} ({{.date_debut}} au {{.date_fin}})</p>
<p>1. Les objectifs annoncés ont-ils été atteints ?</p>
<p class="checkbox">☐ Totalement &nbsp; ☐ Partiellement &nbsp; ☐ Pas du tout</p>
<p>2. Le contenu correspondait-il à vos attentes ?</p>
<p class="checkbox">☐ Oui &nbsp; ☐ Partiellement &nbsp; ☐ Non</p>
<p>3. La pédagogie du formateur était-elle adaptée ?</p>
<p class="checkbox">☐ Oui &nbsp; ☐ Partiellement &nbsp; ☐ Non</p>
<p>4. Recommanderiez-vous cette formation ?</p>
<p class="checkbox">☐ Oui &nbsp; ☐ Non</p>
<p>Commentaires : ____________________________________________________________</p>
` + documentFooter,
	},

	domain.DocEvaluationAFroid: {
		required: withParticipant(),
		body: `<h1>Évaluation à froid</h1>
<p>Participant : {{.participant_nom_complet}} — Formation : {{.titre_formation}} (terminée le {{.date_fin}})</p>
<p>Deux mois après la formation :</p>
<p>1. Avez-vous mis en pratique les acquis de la formation ?</p>
<p class="checkbox">☐ Régulièrement &nbsp; ☐ Occasionnellement &nbsp; ☐ Jamais</p>
<p>2. Les compétences acquises ont-elles amélioré votre pratique professionnelle ?</p>
<p class="checkbox">☐ Oui &nbsp; ☐ Partiellement &nbsp; ☐ Non</p>
<p>3. Un accompagnement complémentaire serait-il utile ?</p>
<p class="checkbox">☐ Oui &nbsp; ☐ Non</p>
<p>Commentaires : ____________________________________________________________</p>
` + documentFooter,
	},

	domain.DocEvaluationFormateur: {
		required: append(baseRequired, "formateur_nom"),
		body: `<h1>Questionnaire d'évaluation formateur</h1>
<p>Formateur : <strong>{{.formateur_nom}}</strong> — Formation : {{.titre_formation}}<br>
Entreprise : {{.entreprise_nom}} — du {{.date_debut}} au {{.date_fin}}</p>
<p>1. Le déroulement s'est-il effectué conformément au programme prévu ?</p>
<p class="checkbox">☐ Oui &nbsp; ☐ Non &nbsp; ☐ Partiellement</p>
<p>2. Les objectifs pédagogiques ont-ils été atteints ?</p>
<p class="checkbox">☐ Totalement &nbsp; ☐ Partiellement &nbsp; ☐ Pas du tout</p>
<p>3. Les participants étaient-ils impliqués et motivés ?</p>
<p class="checkbox">☐ Très impliqués &nbsp; ☐ Moyennement &nbsp; ☐ Peu impliqués</p>
<p>4. Avez-vous rencontré des difficultés particulières ?</p>
<p>____________________________________________________________</p>
<p>Suggestions d'amélioration : ____________________________________________________________</p>
` + documentFooter,
	},

	domain.DocEvaluationSatisfaction: {
		required: baseRequired,
		body: `<h1>Évaluation de satisfaction client</h1>
<p>Entreprise : <strong>{{.entreprise_nom}}</strong> — Formation : {{.titre_formation}}
(du {{.date_debut}} au {{.date_fin}}, {{.nombre_participants}} participant(s))</p>
<p>1. La formation a-t-elle répondu aux besoins identifiés de l'entreprise ?</p>
<p class="checkbox">☐ Oui &nbsp; ☐ Partiellement &nbsp; ☐ Non</p>
<p>2. L'organisation (convocations, documents, délais) était-elle satisfaisante ?</p>
<p class="checkbox">☐ Oui &nbsp; ☐ Non</p>
<p>3. Recommanderiez-vous notre organisme de formation ?</p>
<p class="checkbox">☐ Oui &nbsp; ☐ Non</p>
<p>Observations : ____________________________________________________________</p>
` + documentFooter,
	},

	domain.DocEvaluationOPCO: {
		required: baseRequired,
		body: `<h1>Questionnaire d'évaluation financeur (OPCO)</h1>
<p>Organisme de formation : {{.organisme_nom}} — N° de déclaration d'activité : {{.organisme_nda}}<br>
Formation : <strong>{{.titre_formation}}</strong> — Entreprise bénéficiaire : {{.entreprise_nom}}<br>
Réalisée du {{.date_debut}} au {{.date_fin}} — {{.nombre_participants}} participant(s)</p>
<p>1. Les objectifs de la formation ont-ils été atteints ?</p>
<p class="checkbox">☐ Totalement &nbsp; ☐ Partiellement &nbsp; ☐ Pas du tout</p>
<p>2. Les compétences visées ont-elles été acquises par les participants ?</p>
<p class="checkbox">☐ Oui &nbsp; ☐ Partiellement &nbsp; ☐ Non &nbsp; ☐ Ne sait pas</p>
<p>3. Les documents fournis (convention, programme, attestations) étaient-ils conformes ?</p>
<p class="checkbox">☐ Oui &nbsp; ☐ Non</p>
<p>4. Recommanderiez-vous cet organisme de formation ?</p>
<p class="checkbox">☐ Oui &nbsp; ☐ Non</p>
<div class="signature"><p>Nom, fonction et signature du représentant OPCO :</p></div>
` + documentFooter,
	},

	domain.DocReglementInterieur: {
		required: []string{"organisme_nom"},
		body: `<h1>Règlement intérieur</h1>
<p>Applicable aux stagiaires accueillis par {{.organisme_nom}}.</p>
<h2>Article 1 — Hygiène et sécurité</h2>
<p>Chaque stagiaire doit respecter les consignes d'hygiène et de sécurité du lieu de formation.</p>
<h2>Article 2 — Horaires et assiduité</h2>
<p>Les stagiaires respectent les horaires fixés et émargent à chaque demi-journée.</p>
<h2>Article 3 — Discipline</h2>
<p>Tout comportement de nature à perturber le déroulement de la formation peut donner lieu à exclusion.</p>
<h2>Article 4 — Réclamations</h2>
<p>Toute réclamation peut être adressée à {{.organisme_email}} ; elle sera traitée sous 15 jours.</p>
` + documentFooter,
	},

	domain.DocBulletinInscription: {
		required: baseRequired,
		body: `<h1>Bulletin d'inscription</h1>
<table>
<tr><td>Formation</td><td>{{.titre_formation}}</td></tr>
<tr><td>Dates souhaitées</td><td>Du {{.date_debut}} au {{.date_fin}}</td></tr>
<tr><td>Lieu</td><td>{{.lieu}}</td></tr>
<tr><td>Entreprise</td><td>{{.entreprise_nom}}</td></tr>
<tr><td>Contact</td><td>{{.entreprise_email}}</td></tr>
<tr><td>Nombre de participants</td><td>{{.nombre_participants}}</td></tr>
</table>
<h2>Participants à inscrire</h2>
<table>
<tr><th>Nom</th><th>Prénom</th><th>Email</th><th>Fonction</th></tr>
<tr><td style="height:2.5em"></td><td></td><td></td><td></td></tr>
<tr><td style="height:2.5em"></td><td></td><td></td><td></td></tr>
<tr><td style="height:2.5em"></td><td></td><td></td><td></td></tr>
</table>
<p>Bulletin à retourner complété à {{.organisme_email}}.</p>
` + documentFooter,
	},

	domain.DocGrilleCompetences: {
		required: withParticipant(),
		body: `<h1>Grille d'évaluation des compétences</h1>
<p>Participant : <strong>{{.participant_nom_complet}}</strong> — Formation : {{.titre_formation}}</p>
<table>
<tr><th>Compétence visée</th><th>Non acquise</th><th>En cours</th><th>Acquise</th></tr>
<tr><td style="height:2.5em"></td><td></td><td></td><td></td></tr>
<tr><td style="height:2.5em"></td><td></td><td></td><td></td></tr>
<tr><td style="height:2.5em"></td><td></td><td></td><td></td></tr>
<tr><td style="height:2.5em"></td><td></td><td></td><td></td></tr>
</table>
<p>Évaluation réalisée par {{.formateur_nom}} le {{.date_fin}}.</p>
` + documentFooter,
	},

	domain.DocContratFormateur: {
		required: append(baseRequired, "formateur_nom"),
		body: `<h1>Contrat de sous-traitance — prestation de formation</h1>
<p>Entre le donneur d'ordre <strong>{{.organisme_nom}}</strong> (SIRET {{.organisme_siret}},
N° de déclaration d'activité {{.organisme_nda}}) et le formateur <strong>{{.formateur_nom}}</strong>
({{.formateur_email}}).</p>
<h2>Article 1 — Mission</h2>
<table>
<tr><td>Formation</td><td>{{.titre_formation}}</td></tr>
<tr><td>Dates d'intervention</td><td>Du {{.date_debut}} au {{.date_fin}}</td></tr>
<tr><td>Durée</td><td>{{.duree}} heures</td></tr>
<tr><td>Lieu</td><td>{{.lieu}}</td></tr>
<tr><td>Entreprise bénéficiaire</td><td>{{.entreprise_nom}}</td></tr>
</table>
<h2>Article 2 — Obligations du formateur</h2>
<p>Réaliser la prestation conformément au programme, émarger les feuilles de présence,
respecter le référentiel national qualité et remettre un bilan sous 7 jours.</p>
<h2>Article 3 — Rémunération</h2>
<p>Règlement à 30 jours sur présentation de facture.</p>
<div class="signature">
<table>
<tr><th>Pour le donneur d'ordre</th><th>Pour le formateur</th></tr>
<tr><td style="height:6em">Signature :</td><td>Signature :</td></tr>
</table>
</div>
` + documentFooter,
	},

	domain.DocDeroulePedagogique: {
		required: baseRequired,
		body: `<h1>Déroulé pédagogique</h1>
<p>Document interne — {{.organisme_nom}}</p>
<table>
<tr><td>Formation</td><td>{{.titre_formation}}</td></tr>
<tr><td>Formateur</td><td>{{.formateur_nom}}</td></tr>
<tr><td>Dates</td><td>Du {{.date_debut}} au {{.date_fin}}</td></tr>
<tr><td>Durée totale</td><td>{{.duree}} heures</td></tr>
<tr><td>Lieu</td><td>{{.lieu}}</td></tr>
</table>
<h2>Déroulé par séquence</h2>
<table>
<tr><th>Séquence</th><th>Durée</th><th>Contenu</th><th>Méthodes</th></tr>
<tr><td>Accueil et présentation</td><td>0h30</td><td></td><td></td></tr>
<tr><td>Séquence 1</td><td></td><td></td><td></td></tr>
<tr><td>Séquence 2</td><td></td><td></td><td></td></tr>
<tr><td>Évaluation et clôture</td><td>0h30</td><td></td><td></td></tr>
</table>
<h2>Objectifs pédagogiques</h2>
<p>{{.objectifs}}</p>
` + documentFooter,
	},

	domain.DocTraitementReclamation: {
		required: []string{"organisme_nom"},
		body: `<h1>Fiche de traitement des réclamations</h1>
<p>Organisme : {{.organisme_nom}}</p>
<table>
<tr><td>Date de réception</td><td></td></tr>
<tr><td>Émetteur de la réclamation</td><td></td></tr>
<tr><td>Formation concernée</td><td>{{.titre_formation}}</td></tr>
<tr><td>Description</td><td style="height:6em"></td></tr>
<tr><td>Action corrective</td><td style="height:6em"></td></tr>
<tr><td>Date de clôture</td><td></td></tr>
</table>
<p>Toute réclamation est traitée sous 15 jours ouvrés.</p>
` + documentFooter,
	},
}
