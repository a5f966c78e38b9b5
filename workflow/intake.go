package workflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/automate-formation/orchestrator/domain"
	"github.com/automate-formation/orchestrator/notify"
	"github.com/automate-formation/orchestrator/render"
)

// trainingHoursPerDay converts a catalog duration in hours into a number of
// session days when the request does not state an end date.
const trainingHoursPerDay = 7

// ParticipantInput declares one trainee at intake.
type ParticipantInput struct {
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Fonction  string `json:"fonction"`
}

// RequestInput is a new training request. Entreprise and Formation are
// referenced by id when they already exist, otherwise created from the
// inline fields.
type RequestInput struct {
	EntrepriseID        string `json:"entreprise_id"`
	EntrepriseNom       string `json:"entreprise_nom"`
	EntrepriseEmail     string `json:"entreprise_email"`
	EntrepriseTelephone string `json:"entreprise_telephone"`
	EntrepriseAdresse   string `json:"entreprise_adresse"`
	EntrepriseSiret     string `json:"entreprise_siret"`

	FormationID    string  `json:"formation_id"`
	FormationTitre string  `json:"formation_titre"`
	DureeHeure     int     `json:"duree"`
	PrixHT         float64 `json:"prix_ht"`

	DateDebut          time.Time          `json:"date_debut"`
	DateFin            time.Time          `json:"date_fin"`
	Lieu               string             `json:"lieu"`
	Horaires           string             `json:"horaires"`
	NombreParticipants int                `json:"nombre_participants"`
	BesoinDevis        bool               `json:"besoin_devis"`
	Notes              string             `json:"notes"`
	Participants       []ParticipantInput `json:"participants"`
}

// CreateRequest records a new training request in status demande. The
// entreprise and formation are resolved or created, the end date is derived
// from the catalog duration when absent, and the total price is computed
// from the per-participant catalog price. A confirmation email is attempted
// when the company has a contact address, but intake succeeds without it.
func (s *Steps) CreateRequest(ctx context.Context, input RequestInput) (*domain.Session, error) {
	if input.DateDebut.IsZero() {
		return nil, fmt.Errorf("date_debut is required")
	}

	now := s.clock.Now().UTC()

	entreprise, err := s.resolveEntreprise(ctx, input, now)
	if err != nil {
		return nil, err
	}
	formation, err := s.resolveFormation(ctx, input, now)
	if err != nil {
		return nil, err
	}

	dateFin := input.DateFin
	if dateFin.IsZero() {
		days := (formation.DureeHeure + trainingHoursPerDay - 1) / trainingHoursPerDay
		if days < 1 {
			days = 1
		}
		dateFin = input.DateDebut.AddDate(0, 0, days-1)
	}
	if dateFin.Before(input.DateDebut) {
		return nil, fmt.Errorf("date_fin %s precedes date_debut %s",
			dateFin.Format("2006-01-02"), input.DateDebut.Format("2006-01-02"))
	}

	nombre := input.NombreParticipants
	if nombre == 0 {
		nombre = len(input.Participants)
	}

	session := &domain.Session{
		ID:                 newID("ses"),
		EntrepriseID:       entreprise.ID,
		FormationID:        formation.ID,
		Statut:             domain.StatusDemande,
		DateDebut:          input.DateDebut,
		DateFin:            dateFin,
		Lieu:               input.Lieu,
		Horaires:           input.Horaires,
		NombreParticipants: nombre,
		PrixTotalHT:        render.Round2(formation.PrixHT * float64(nombre)),
		BesoinDevis:        input.BesoinDevis,
		Notes:              input.Notes,
		Metadata:           domain.SessionMetadata{DateDemande: &now},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	for _, p := range input.Participants {
		participant := &domain.Participant{
			ID:        newID("par"),
			SessionID: session.ID,
			Nom:       p.Nom,
			Prenom:    p.Prenom,
			Email:     p.Email,
			Telephone: p.Telephone,
			Fonction:  p.Fonction,
			CreatedAt: now,
		}
		if err := s.store.CreateParticipant(ctx, participant); err != nil {
			return nil, fmt.Errorf("create participant %s: %w", p.Nom, err)
		}
	}

	if entreprise.ContactEmail != "" {
		subject := fmt.Sprintf("Accusé de réception : %s", formation.Titre)
		html := fmt.Sprintf("<p>Bonjour,</p><p>Nous avons bien reçu votre demande pour la formation <strong>%s</strong> à partir du %s. Nous revenons vers vous rapidement avec le bulletin d'inscription.</p>",
			formation.Titre, session.DateDebut.Format("02/01/2006"))
		if err := s.sender.Send(ctx, notify.Email{To: []string{entreprise.ContactEmail}, Subject: subject, HTML: html}); err != nil {
			log.Printf("WARN: session %s: confirmation email not sent: %v", session.ID, err)
		}
	}

	return session, nil
}

func (s *Steps) resolveEntreprise(ctx context.Context, input RequestInput, now time.Time) (*domain.Entreprise, error) {
	if input.EntrepriseID != "" {
		entreprise, err := s.store.GetEntreprise(ctx, input.EntrepriseID)
		if err != nil {
			return nil, err
		}
		if entreprise == nil {
			return nil, fmt.Errorf("entreprise %s not found", input.EntrepriseID)
		}
		return entreprise, nil
	}
	if input.EntrepriseNom == "" {
		return nil, fmt.Errorf("entreprise_nom is required when no entreprise_id is given")
	}
	entreprise := &domain.Entreprise{
		ID:           newID("ent"),
		Nom:          input.EntrepriseNom,
		ContactEmail: input.EntrepriseEmail,
		Telephone:    input.EntrepriseTelephone,
		Adresse:      input.EntrepriseAdresse,
		Siret:        input.EntrepriseSiret,
		CreatedAt:    now,
	}
	if err := s.store.CreateEntreprise(ctx, entreprise); err != nil {
		return nil, err
	}
	return entreprise, nil
}

func (s *Steps) resolveFormation(ctx context.Context, input RequestInput, now time.Time) (*domain.Formation, error) {
	if input.FormationID != "" {
		formation, err := s.store.GetFormation(ctx, input.FormationID)
		if err != nil {
			return nil, err
		}
		if formation == nil {
			return nil, fmt.Errorf("formation %s not found", input.FormationID)
		}
		return formation, nil
	}
	if input.FormationTitre == "" {
		return nil, fmt.Errorf("formation_titre is required when no formation_id is given")
	}
	if input.DureeHeure <= 0 {
		return nil, fmt.Errorf("duree must be positive")
	}
	formation := &domain.Formation{
		ID:         newID("for"),
		Titre:      input.FormationTitre,
		DureeHeure: input.DureeHeure,
		PrixHT:     input.PrixHT,
		CreatedAt:  now,
	}
	if err := s.store.CreateFormation(ctx, formation); err != nil {
		return nil, err
	}
	return formation, nil
}
