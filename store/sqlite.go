package store

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/automate-formation/orchestrator/domain"
	_ "github.com/mattn/go-sqlite3"
)

const dateLayout = "2006-01-02"

// signedURLTTL is how long a generated document URL stays valid.
const signedURLTTL = 7 * 24 * time.Hour

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db        *sql.DB
	urlSecret []byte
	now       func() time.Time
}

// NewSQLiteStore creates a new SQLite store. urlSecret signs document URLs.
func NewSQLiteStore(dsn, urlSecret string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db, urlSecret: []byte(urlSecret), now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS entreprises (
			id TEXT PRIMARY KEY,
			nom TEXT NOT NULL,
			contact_email TEXT,
			telephone TEXT,
			adresse TEXT,
			siret TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS formations_catalogue (
			id TEXT PRIMARY KEY,
			titre TEXT NOT NULL,
			duree INTEGER NOT NULL,
			prix_ht REAL NOT NULL,
			objectifs TEXT,
			prerequis TEXT,
			public_vise TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions_formation (
			id TEXT PRIMARY KEY,
			entreprise_id TEXT NOT NULL,
			formation_catalogue_id TEXT NOT NULL,
			statut TEXT NOT NULL,
			date_debut TEXT NOT NULL,
			date_fin TEXT NOT NULL,
			lieu TEXT,
			horaires TEXT,
			nombre_participants INTEGER NOT NULL DEFAULT 0,
			prix_total_ht REAL NOT NULL DEFAULT 0,
			besoin_devis INTEGER NOT NULL DEFAULT 0,
			formateur_nom TEXT,
			formateur_email TEXT,
			notes TEXT,
			metadata TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (entreprise_id) REFERENCES entreprises(id),
			FOREIGN KEY (formation_catalogue_id) REFERENCES formations_catalogue(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_statut ON sessions_formation(statut)`,
		`CREATE TABLE IF NOT EXISTS participants (
			id TEXT PRIMARY KEY,
			session_formation_id TEXT NOT NULL,
			nom TEXT NOT NULL,
			prenom TEXT,
			email TEXT,
			telephone TEXT,
			fonction TEXT,
			present INTEGER,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_formation_id) REFERENCES sessions_formation(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_participants_session ON participants(session_formation_id)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			session_formation_id TEXT NOT NULL,
			participant_id TEXT,
			type TEXT NOT NULL,
			nom_fichier TEXT NOT NULL,
			storage_path TEXT NOT NULL,
			statut TEXT NOT NULL,
			date_envoi DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_formation_id) REFERENCES sessions_formation(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_session ON documents(session_formation_id, type)`,
		`CREATE TABLE IF NOT EXISTS evaluations (
			id TEXT PRIMARY KEY,
			session_formation_id TEXT NOT NULL,
			participant_id TEXT,
			type TEXT NOT NULL,
			date_evaluation TEXT NOT NULL,
			repondu INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (session_formation_id) REFERENCES sessions_formation(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_session ON evaluations(session_formation_id)`,
		`CREATE TABLE IF NOT EXISTS storage_objects (
			bucket TEXT NOT NULL,
			path TEXT NOT NULL,
			content_type TEXT NOT NULL,
			data BLOB NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (bucket, path)
		)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession inserts a new session.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *domain.Session) error {
	metadata, err := json.Marshal(session.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO sessions_formation
		(id, entreprise_id, formation_catalogue_id, statut, date_debut, date_fin, lieu, horaires,
		 nombre_participants, prix_total_ht, besoin_devis, formateur_nom, formateur_email, notes, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.EntrepriseID, session.FormationID, string(session.Statut),
		session.DateDebut.Format(dateLayout), session.DateFin.Format(dateLayout),
		session.Lieu, session.Horaires, session.NombreParticipants, session.PrixTotalHT,
		session.BesoinDevis, session.FormateurNom, session.FormateurEmail, session.Notes,
		string(metadata), session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

const sessionColumns = `id, entreprise_id, formation_catalogue_id, statut, date_debut, date_fin,
	COALESCE(lieu, ''), COALESCE(horaires, ''), nombre_participants, prix_total_ht, besoin_devis,
	COALESCE(formateur_nom, ''), COALESCE(formateur_email, ''), COALESCE(notes, ''), COALESCE(metadata, '{}'),
	created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }) (*domain.Session, error) {
	var session domain.Session
	var statut, dateDebut, dateFin, metadata string
	err := row.Scan(&session.ID, &session.EntrepriseID, &session.FormationID, &statut,
		&dateDebut, &dateFin, &session.Lieu, &session.Horaires, &session.NombreParticipants,
		&session.PrixTotalHT, &session.BesoinDevis, &session.FormateurNom, &session.FormateurEmail,
		&session.Notes, &metadata, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return nil, err
	}
	session.Statut = domain.SessionStatus(statut)
	if session.DateDebut, err = time.Parse(dateLayout, dateDebut); err != nil {
		return nil, fmt.Errorf("invalid date_debut %q: %w", dateDebut, err)
	}
	if session.DateFin, err = time.Parse(dateLayout, dateFin); err != nil {
		return nil, fmt.Errorf("invalid date_fin %q: %w", dateFin, err)
	}
	if err := json.Unmarshal([]byte(metadata), &session.Metadata); err != nil {
		return nil, fmt.Errorf("invalid session metadata: %w", err)
	}
	return &session, nil
}

// GetSession retrieves a session by ID. Returns nil when not found.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions_formation WHERE id = ?`, sessionID)
	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// FindSessions lists sessions, optionally filtered by status.
func (s *SQLiteStore) FindSessions(ctx context.Context, statut domain.SessionStatus) ([]domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions_formation`
	args := []any{}
	if statut != "" {
		query += ` WHERE statut = ?`
		args = append(args, string(statut))
	}
	query += ` ORDER BY date_debut, created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

// TransitionSession updates a session's status only if it still holds the
// expected current status. Concurrent runs lose the compare-and-swap instead
// of double-advancing.
func (s *SQLiteStore) TransitionSession(ctx context.Context, sessionID string, from, to domain.SessionStatus) (bool, error) {
	if !domain.CanTransition(from, to) {
		return false, fmt.Errorf("invalid transition %s -> %s", from, to)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions_formation SET statut = ?, updated_at = ? WHERE id = ? AND statut = ?`,
		string(to), s.now().UTC(), sessionID, string(from))
	if err != nil {
		return false, fmt.Errorf("failed to update session status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// UpdateSessionMetadata replaces a session's metadata ledger.
func (s *SQLiteStore) UpdateSessionMetadata(ctx context.Context, sessionID string, metadata domain.SessionMetadata) error {
	data, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions_formation SET metadata = ?, updated_at = ? WHERE id = ?`,
		string(data), s.now().UTC(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session metadata: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}

// AssignFormateur records the trainer for a session.
func (s *SQLiteStore) AssignFormateur(ctx context.Context, sessionID, nom, email string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions_formation SET formateur_nom = ?, formateur_email = ?, updated_at = ? WHERE id = ?`,
		nom, email, s.now().UTC(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to assign formateur: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}

// CreateEntreprise inserts a new client company.
func (s *SQLiteStore) CreateEntreprise(ctx context.Context, entreprise *domain.Entreprise) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entreprises (id, nom, contact_email, telephone, adresse, siret, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entreprise.ID, entreprise.Nom, entreprise.ContactEmail, entreprise.Telephone,
		entreprise.Adresse, entreprise.Siret, entreprise.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create entreprise: %w", err)
	}
	return nil
}

// GetEntreprise retrieves a company by ID. Returns nil when not found.
func (s *SQLiteStore) GetEntreprise(ctx context.Context, entrepriseID string) (*domain.Entreprise, error) {
	var e domain.Entreprise
	err := s.db.QueryRowContext(ctx,
		`SELECT id, nom, COALESCE(contact_email, ''), COALESCE(telephone, ''), COALESCE(adresse, ''), COALESCE(siret, ''), created_at
		 FROM entreprises WHERE id = ?`, entrepriseID).
		Scan(&e.ID, &e.Nom, &e.ContactEmail, &e.Telephone, &e.Adresse, &e.Siret, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entreprise: %w", err)
	}
	return &e, nil
}

// CreateFormation inserts a catalog entry.
func (s *SQLiteStore) CreateFormation(ctx context.Context, formation *domain.Formation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO formations_catalogue (id, titre, duree, prix_ht, objectifs, prerequis, public_vise, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		formation.ID, formation.Titre, formation.DureeHeure, formation.PrixHT,
		formation.Objectifs, formation.Prerequis, formation.PublicVise, formation.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create formation: %w", err)
	}
	return nil
}

// GetFormation retrieves a catalog entry by ID. Returns nil when not found.
func (s *SQLiteStore) GetFormation(ctx context.Context, formationID string) (*domain.Formation, error) {
	var f domain.Formation
	err := s.db.QueryRowContext(ctx,
		`SELECT id, titre, duree, prix_ht, COALESCE(objectifs, ''), COALESCE(prerequis, ''), COALESCE(public_vise, ''), created_at
		 FROM formations_catalogue WHERE id = ?`, formationID).
		Scan(&f.ID, &f.Titre, &f.DureeHeure, &f.PrixHT, &f.Objectifs, &f.Prerequis, &f.PublicVise, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get formation: %w", err)
	}
	return &f, nil
}

// CreateParticipant inserts a trainee.
func (s *SQLiteStore) CreateParticipant(ctx context.Context, participant *domain.Participant) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO participants (id, session_formation_id, nom, prenom, email, telephone, fonction, present, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		participant.ID, participant.SessionID, participant.Nom, participant.Prenom,
		participant.Email, participant.Telephone, participant.Fonction, participant.Present,
		participant.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

// GetParticipant retrieves a trainee by ID. Returns nil when not found.
func (s *SQLiteStore) GetParticipant(ctx context.Context, participantID string) (*domain.Participant, error) {
	var p domain.Participant
	err := s.db.QueryRowContext(ctx,
		`SELECT id, session_formation_id, nom, COALESCE(prenom, ''), COALESCE(email, ''), COALESCE(telephone, ''), COALESCE(fonction, ''), present, created_at
		 FROM participants WHERE id = ?`, participantID).
		Scan(&p.ID, &p.SessionID, &p.Nom, &p.Prenom, &p.Email, &p.Telephone, &p.Fonction, &p.Present, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return &p, nil
}

// ListParticipants lists the trainees of a session in declaration order.
func (s *SQLiteStore) ListParticipants(ctx context.Context, sessionID string) ([]domain.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_formation_id, nom, COALESCE(prenom, ''), COALESCE(email, ''), COALESCE(telephone, ''), COALESCE(fonction, ''), present, created_at
		 FROM participants WHERE session_formation_id = ? ORDER BY created_at, id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.SessionID, &p.Nom, &p.Prenom, &p.Email, &p.Telephone, &p.Fonction, &p.Present, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// RecordDocument inserts a document metadata record. An existing active
// record for the same (session, participant, type) tuple is superseded so
// regeneration does not pile up duplicates.
func (s *SQLiteStore) RecordDocument(ctx context.Context, document *domain.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM documents WHERE session_formation_id = ? AND COALESCE(participant_id, '') = ? AND type = ?`,
		document.SessionID, document.ParticipantID, string(document.Type))
	if err != nil {
		return fmt.Errorf("failed to supersede document: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, session_formation_id, participant_id, type, nom_fichier, storage_path, statut, date_envoi, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		document.ID, document.SessionID, document.ParticipantID, string(document.Type),
		document.NomFichier, document.StoragePath, string(document.Statut), document.DateEnvoi,
		document.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record document: %w", err)
	}
	return tx.Commit()
}

// ListDocuments lists the documents of a session.
func (s *SQLiteStore) ListDocuments(ctx context.Context, sessionID string) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_formation_id, COALESCE(participant_id, ''), type, nom_fichier, storage_path, statut, date_envoi, created_at
		 FROM documents WHERE session_formation_id = ? ORDER BY created_at, id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var documents []domain.Document
	for rows.Next() {
		var d domain.Document
		var docType, statut string
		if err := rows.Scan(&d.ID, &d.SessionID, &d.ParticipantID, &docType, &d.NomFichier, &d.StoragePath, &statut, &d.DateEnvoi, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		d.Type = domain.DocumentType(docType)
		d.Statut = domain.DocumentStatus(statut)
		documents = append(documents, d)
	}
	return documents, rows.Err()
}

// MarkDocumentSent records the send time of a document.
func (s *SQLiteStore) MarkDocumentSent(ctx context.Context, documentID string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET statut = ?, date_envoi = ? WHERE id = ?`,
		string(domain.DocumentEnvoye), at.UTC(), documentID)
	if err != nil {
		return fmt.Errorf("failed to mark document sent: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("document %s not found", documentID)
	}
	return nil
}

// CreateEvaluation inserts a questionnaire instance.
func (s *SQLiteStore) CreateEvaluation(ctx context.Context, evaluation *domain.Evaluation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluations (id, session_formation_id, participant_id, type, date_evaluation, repondu)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		evaluation.ID, evaluation.SessionID, evaluation.ParticipantID, string(evaluation.Type),
		evaluation.DateEvaluation.Format(dateLayout), evaluation.Repondu)
	if err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

// ListEvaluations lists the questionnaire instances of a session.
func (s *SQLiteStore) ListEvaluations(ctx context.Context, sessionID string) ([]domain.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_formation_id, COALESCE(participant_id, ''), type, date_evaluation, repondu
		 FROM evaluations WHERE session_formation_id = ?`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	var evaluations []domain.Evaluation
	for rows.Next() {
		var e domain.Evaluation
		var evalType, date string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.ParticipantID, &evalType, &date, &e.Repondu); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		e.Type = domain.EvaluationType(evalType)
		if e.DateEvaluation, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("invalid date_evaluation %q: %w", date, err)
		}
		evaluations = append(evaluations, e)
	}
	return evaluations, rows.Err()
}

// UploadBinary stores a binary artifact and returns its storage location.
// Re-uploading to the same path overwrites the previous content.
func (s *SQLiteStore) UploadBinary(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO storage_objects (bucket, path, content_type, data, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(bucket, path) DO UPDATE SET content_type = excluded.content_type, data = excluded.data, created_at = excluded.created_at`,
		bucket, path, contentType, data, s.now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to upload binary: %w", err)
	}
	return bucket + "/" + path, nil
}

// GetBinary retrieves a stored artifact and its content type.
func (s *SQLiteStore) GetBinary(ctx context.Context, bucket, path string) ([]byte, string, error) {
	var data []byte
	var contentType string
	err := s.db.QueryRowContext(ctx,
		`SELECT data, content_type FROM storage_objects WHERE bucket = ? AND path = ?`, bucket, path).
		Scan(&data, &contentType)
	if err == sql.ErrNoRows {
		return nil, "", fmt.Errorf("object %s/%s not found", bucket, path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get binary: %w", err)
	}
	return data, contentType, nil
}

// GetDocumentURL returns a signed relative URL for a stored artifact,
// valid for seven days.
func (s *SQLiteStore) GetDocumentURL(bucket, path string) (string, error) {
	expires := s.now().Add(signedURLTTL).Unix()
	sig := s.sign(bucket, path, expires)
	return fmt.Sprintf("/storage/%s/%s?expires=%d&sig=%s", bucket, path, expires, sig), nil
}

// VerifySignedURL checks a signature produced by GetDocumentURL and that it
// has not expired.
func (s *SQLiteStore) VerifySignedURL(bucket, path string, expires int64, sig string) bool {
	if s.now().Unix() > expires {
		return false
	}
	expected := s.sign(bucket, path, expires)
	return hmac.Equal([]byte(expected), []byte(sig))
}

func (s *SQLiteStore) sign(bucket, path string, expires int64) string {
	mac := hmac.New(sha256.New, s.urlSecret)
	fmt.Fprintf(mac, "%s/%s:%d", bucket, path, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
