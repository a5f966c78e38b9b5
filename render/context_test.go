package render

import (
	"testing"
	"time"

	"github.com/automate-formation/orchestrator/domain"
)

func fixtureEntities() (*domain.Session, *domain.Entreprise, *domain.Formation, *domain.Participant) {
	session := &domain.Session{
		ID:                 "ses_test",
		Statut:             domain.StatusConfirmee,
		DateDebut:          time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		DateFin:            time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Lieu:               "Paris",
		NombreParticipants: 4,
		PrixTotalHT:        1000.00,
		FormateurNom:       "Claire Petit",
		FormateurEmail:     "claire@formateurs.fr",
	}
	entreprise := &domain.Entreprise{
		ID:           "ent_test",
		Nom:          "ACME SARL",
		ContactEmail: "contact@acme.fr",
	}
	formation := &domain.Formation{
		ID:         "for_test",
		Titre:      "Sécurité incendie",
		DureeHeure: 14,
		PrixHT:     250.00,
	}
	participant := &domain.Participant{
		ID:     "par_test",
		Nom:    "Durand",
		Prenom: "Marie",
		Email:  "marie@acme.fr",
	}
	return session, entreprise, formation, participant
}

func TestBuildContextPrices(t *testing.T) {
	session, entreprise, formation, _ := fixtureEntities()
	c := BuildContext(Organisme{Nom: "Centre Alpha"}, session, entreprise, formation, nil)

	if got := c["prix_total_ht"]; got != "1000.00" {
		t.Fatalf("prix_total_ht = %q", got)
	}
	if got := c["prix_total_ttc"]; got != "1200.00" {
		t.Fatalf("prix_total_ttc = %q", got)
	}
	if got := c["tva"]; got != "200.00" {
		t.Fatalf("tva = %q", got)
	}
	if got := c["prix_unitaire_ht"]; got != "250.00" {
		t.Fatalf("prix_unitaire_ht = %q", got)
	}
}

func TestBuildContextPlaceholders(t *testing.T) {
	session, entreprise, formation, _ := fixtureEntities()
	session.Lieu = ""
	session.Horaires = ""
	session.FormateurNom = ""
	entreprise.ContactEmail = ""

	c := BuildContext(Organisme{}, session, entreprise, formation, nil)
	if c["lieu"] != PlaceholderADefinir {
		t.Fatalf("lieu = %q", c["lieu"])
	}
	if c["horaires"] != "9h00 - 17h00" {
		t.Fatalf("horaires = %q", c["horaires"])
	}
	if c["formateur_nom"] != PlaceholderAConfimer {
		t.Fatalf("formateur_nom = %q", c["formateur_nom"])
	}
	if c["entreprise_email"] != PlaceholderAConfimer {
		t.Fatalf("entreprise_email = %q", c["entreprise_email"])
	}
	if c["prerequis"] != "Aucun" {
		t.Fatalf("prerequis = %q", c["prerequis"])
	}
}

func TestBuildContextDates(t *testing.T) {
	session, entreprise, formation, participant := fixtureEntities()
	c := BuildContext(Organisme{}, session, entreprise, formation, participant)

	if c["date_debut"] != "09/03/2026" {
		t.Fatalf("date_debut = %q", c["date_debut"])
	}
	if c["participant_nom_complet"] != "Marie Durand" {
		t.Fatalf("participant_nom_complet = %q", c["participant_nom_complet"])
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(100.006); got != 100.01 {
		t.Fatalf("Round2(100.006) = %v", got)
	}
	if got := Round2(1234.5649); got != 1234.56 {
		t.Fatalf("Round2(1234.5649) = %v", got)
	}
}
