package domain

import "time"

// Session is one scheduled delivery of a training course to one company.
type Session struct {
	ID                 string          `json:"id"`
	EntrepriseID       string          `json:"entreprise_id"`
	FormationID        string          `json:"formation_catalogue_id"`
	Statut             SessionStatus   `json:"statut"`
	DateDebut          time.Time       `json:"date_debut"`
	DateFin            time.Time       `json:"date_fin"`
	Lieu               string          `json:"lieu,omitempty"`
	Horaires           string          `json:"horaires,omitempty"`
	NombreParticipants int             `json:"nombre_participants"`
	PrixTotalHT        float64         `json:"prix_total_ht"`
	BesoinDevis        bool            `json:"besoin_devis,omitempty"`
	FormateurNom       string          `json:"formateur_nom,omitempty"`
	FormateurEmail     string          `json:"formateur_email,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	Metadata           SessionMetadata `json:"metadata"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Entreprise is the client organization a session belongs to.
type Entreprise struct {
	ID           string    `json:"id"`
	Nom          string    `json:"nom"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Telephone    string    `json:"telephone,omitempty"`
	Adresse      string    `json:"adresse,omitempty"`
	Siret        string    `json:"siret,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Formation is a catalog entry describing a training offering.
// PrixHT is the per-participant price.
type Formation struct {
	ID         string    `json:"id"`
	Titre      string    `json:"titre"`
	DureeHeure int       `json:"duree"`
	PrixHT     float64   `json:"prix_ht"`
	Objectifs  string    `json:"objectifs,omitempty"`
	Prerequis  string    `json:"prerequis,omitempty"`
	PublicVise string    `json:"public_vise,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Participant is one trainee attached to a session. Present stays nil until
// attendance is recorded after the session.
type Participant struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_formation_id"`
	Nom       string    `json:"nom"`
	Prenom    string    `json:"prenom"`
	Email     string    `json:"email,omitempty"`
	Telephone string    `json:"telephone,omitempty"`
	Fonction  string    `json:"fonction,omitempty"`
	Present   *bool     `json:"present,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Document records a generated artifact. ParticipantID is empty for
// session-level documents.
type Document struct {
	ID            string         `json:"id"`
	SessionID     string         `json:"session_formation_id"`
	ParticipantID string         `json:"participant_id,omitempty"`
	Type          DocumentType   `json:"type"`
	NomFichier    string         `json:"nom_fichier"`
	StoragePath   string         `json:"storage_path"`
	Statut        DocumentStatus `json:"statut"`
	DateEnvoi     *time.Time     `json:"date_envoi,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Evaluation is a questionnaire instance issued to a recipient. Repondu is
// flipped externally when the response comes back.
type Evaluation struct {
	ID             string         `json:"id"`
	SessionID      string         `json:"session_formation_id"`
	ParticipantID  string         `json:"participant_id,omitempty"`
	Type           EvaluationType `json:"type"`
	DateEvaluation time.Time      `json:"date_evaluation"`
	Repondu        bool           `json:"repondu"`
}
