// Package domain defines the core domain models for the automation orchestrator.
package domain

// SessionStatus represents the lifecycle status of a training session.
type SessionStatus string

const (
	StatusDemande   SessionStatus = "demande"
	StatusEnAttente SessionStatus = "en_attente"
	StatusConfirmee SessionStatus = "confirmee"
	StatusConvoquee SessionStatus = "convoquee"
	StatusTerminee  SessionStatus = "terminee"
	StatusArchivee  SessionStatus = "archivee"
	StatusAnnulee   SessionStatus = "annulee"
)

// statusRank orders the forward lifecycle. Annulee is absorbing and sits
// outside the forward chain.
var statusRank = map[SessionStatus]int{
	StatusDemande:   0,
	StatusEnAttente: 1,
	StatusConfirmee: 2,
	StatusConvoquee: 3,
	StatusTerminee:  4,
	StatusArchivee:  5,
}

// CanTransition reports whether a session may move from one status to
// another. The lifecycle only moves forward, one step at a time; annulee is
// reachable from any non-terminal status.
func CanTransition(from, to SessionStatus) bool {
	if to == StatusAnnulee {
		return from != StatusArchivee && from != StatusAnnulee
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank == fromRank+1
}

// IsTerminal reports whether no automated transition leaves the status.
func (s SessionStatus) IsTerminal() bool {
	return s == StatusArchivee || s == StatusAnnulee
}

// DocumentType tags a generated artifact. The catalog is fixed: these are
// the 19 documents the certification checklist requires.
type DocumentType string

const (
	DocProposition            DocumentType = "proposition"
	DocConvention             DocumentType = "convention"
	DocProgramme              DocumentType = "programme"
	DocConvocation            DocumentType = "convocation"
	DocEmargement             DocumentType = "emargement"
	DocCertificat             DocumentType = "certificat"
	DocQuestionnairePrealable DocumentType = "questionnaire_prealable"
	DocEvaluationAChaud       DocumentType = "evaluation_a_chaud"
	DocEvaluationAFroid       DocumentType = "evaluation_a_froid"
	DocEvaluationFormateur    DocumentType = "evaluation_formateur"
	DocEvaluationSatisfaction DocumentType = "evaluation_satisfaction_client"
	DocEvaluationOPCO         DocumentType = "evaluation_opco"
	DocReglementInterieur     DocumentType = "reglement_interieur"
	DocBulletinInscription    DocumentType = "bulletin_inscription"
	DocGrilleCompetences      DocumentType = "grille_competences"
	DocContratFormateur       DocumentType = "contrat_formateur"
	DocDeroulePedagogique     DocumentType = "deroule_pedagogique"
	DocTraitementReclamation  DocumentType = "traitement_reclamation"
	DocDevis                  DocumentType = "devis"
)

// DocumentTypes lists the full catalog.
var DocumentTypes = []DocumentType{
	DocProposition,
	DocConvention,
	DocProgramme,
	DocConvocation,
	DocEmargement,
	DocCertificat,
	DocQuestionnairePrealable,
	DocEvaluationAChaud,
	DocEvaluationAFroid,
	DocEvaluationFormateur,
	DocEvaluationSatisfaction,
	DocEvaluationOPCO,
	DocReglementInterieur,
	DocBulletinInscription,
	DocGrilleCompetences,
	DocContratFormateur,
	DocDeroulePedagogique,
	DocTraitementReclamation,
	DocDevis,
}

// DocumentStatus tracks whether an artifact was only generated or also sent.
type DocumentStatus string

const (
	DocumentGenere DocumentStatus = "genere"
	DocumentEnvoye DocumentStatus = "envoye"
)

// EvaluationType identifies a questionnaire instance.
type EvaluationType string

const (
	EvalAChaud             EvaluationType = "a_chaud"
	EvalAFroid             EvaluationType = "a_froid"
	EvalFormateur          EvaluationType = "formateur"
	EvalSatisfactionClient EvaluationType = "satisfaction_client"
)
