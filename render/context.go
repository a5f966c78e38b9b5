// Package render generates document artifacts from a flat field context.
package render

import (
	"fmt"
	"math"

	"github.com/automate-formation/orchestrator/domain"
)

// Placeholder values used when an optional field is missing. A legal
// document must never show an empty value.
const (
	PlaceholderADefinir  = "À définir"
	PlaceholderAConfimer = "À confirmer"
	defaultHoraires      = "9h00 - 17h00"
)

// tauxTVA is the fixed French VAT rate applied to training prices.
const tauxTVA = 0.20

// Organisme identifies the training organization in generated documents.
type Organisme struct {
	Nom       string
	Siret     string
	NDA       string
	Adresse   string
	Email     string
	Telephone string
}

// Context is the flat field mapping consumed by document templates,
// regardless of document type.
type Context map[string]string

// Round2 rounds a price to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func euros(v float64) string {
	return fmt.Sprintf("%.2f", Round2(v))
}

func orElse(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}

// BuildContext assembles the field mapping for a session. participant may be
// nil for session-level documents. Missing optional fields resolve to
// explicit placeholders; prices are computed from the per-participant
// catalog price and the fixed VAT rate.
func BuildContext(org Organisme, session *domain.Session, entreprise *domain.Entreprise, formation *domain.Formation, participant *domain.Participant) Context {
	c := Context{
		"organisme_nom":       orElse(org.Nom, PlaceholderADefinir),
		"organisme_siret":     orElse(org.Siret, PlaceholderADefinir),
		"organisme_nda":       orElse(org.NDA, PlaceholderADefinir),
		"organisme_adresse":   orElse(org.Adresse, PlaceholderADefinir),
		"organisme_email":     orElse(org.Email, PlaceholderADefinir),
		"organisme_telephone": orElse(org.Telephone, PlaceholderADefinir),

		"entreprise_nom":       entreprise.Nom,
		"entreprise_email":     orElse(entreprise.ContactEmail, PlaceholderAConfimer),
		"entreprise_telephone": orElse(entreprise.Telephone, PlaceholderAConfimer),
		"entreprise_adresse":   orElse(entreprise.Adresse, PlaceholderAConfimer),
		"entreprise_siret":     orElse(entreprise.Siret, PlaceholderAConfimer),

		"titre_formation": formation.Titre,
		"duree":           fmt.Sprintf("%d", formation.DureeHeure),
		"objectifs":       orElse(formation.Objectifs, PlaceholderADefinir),
		"prerequis":       orElse(formation.Prerequis, "Aucun"),
		"public_vise":     orElse(formation.PublicVise, PlaceholderADefinir),

		"session_id":          session.ID,
		"date_debut":          session.DateDebut.Format("02/01/2006"),
		"date_fin":            session.DateFin.Format("02/01/2006"),
		"lieu":                orElse(session.Lieu, PlaceholderADefinir),
		"horaires":            orElse(session.Horaires, defaultHoraires),
		"nombre_participants": fmt.Sprintf("%d", session.NombreParticipants),
		"formateur_nom":       orElse(session.FormateurNom, PlaceholderAConfimer),
		"formateur_email":     orElse(session.FormateurEmail, PlaceholderAConfimer),

		"prix_unitaire_ht":  euros(formation.PrixHT),
		"prix_unitaire_ttc": euros(formation.PrixHT * (1 + tauxTVA)),
		"prix_total_ht":     euros(session.PrixTotalHT),
		"prix_total_ttc":    euros(session.PrixTotalHT * (1 + tauxTVA)),
		"tva":               euros(session.PrixTotalHT * tauxTVA),
	}

	if participant != nil {
		c["participant_nom"] = participant.Nom
		c["participant_prenom"] = participant.Prenom
		c["participant_nom_complet"] = fmt.Sprintf("%s %s", participant.Prenom, participant.Nom)
		c["participant_email"] = orElse(participant.Email, PlaceholderAConfimer)
		c["participant_fonction"] = orElse(participant.Fonction, PlaceholderADefinir)
	}

	return c
}
