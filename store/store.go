// Package store defines the storage interface and implementations.
package store

import (
	"context"
	"time"

	"github.com/automate-formation/orchestrator/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// Session operations
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	FindSessions(ctx context.Context, statut domain.SessionStatus) ([]domain.Session, error)
	// TransitionSession moves a session from one status to another with a
	// compare-and-swap on the current status. It returns false when the
	// session is not in the expected status anymore.
	TransitionSession(ctx context.Context, sessionID string, from, to domain.SessionStatus) (bool, error)
	UpdateSessionMetadata(ctx context.Context, sessionID string, metadata domain.SessionMetadata) error
	AssignFormateur(ctx context.Context, sessionID, nom, email string) error

	// Entreprise operations
	CreateEntreprise(ctx context.Context, entreprise *domain.Entreprise) error
	GetEntreprise(ctx context.Context, entrepriseID string) (*domain.Entreprise, error)

	// Formation catalog operations
	CreateFormation(ctx context.Context, formation *domain.Formation) error
	GetFormation(ctx context.Context, formationID string) (*domain.Formation, error)

	// Participant operations
	CreateParticipant(ctx context.Context, participant *domain.Participant) error
	GetParticipant(ctx context.Context, participantID string) (*domain.Participant, error)
	ListParticipants(ctx context.Context, sessionID string) ([]domain.Participant, error)

	// Document operations
	RecordDocument(ctx context.Context, document *domain.Document) error
	ListDocuments(ctx context.Context, sessionID string) ([]domain.Document, error)
	MarkDocumentSent(ctx context.Context, documentID string, at time.Time) error

	// Evaluation operations
	CreateEvaluation(ctx context.Context, evaluation *domain.Evaluation) error
	ListEvaluations(ctx context.Context, sessionID string) ([]domain.Evaluation, error)

	// Binary storage
	UploadBinary(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
	GetBinary(ctx context.Context, bucket, path string) ([]byte, string, error)
	// GetDocumentURL returns a signed URL for a stored binary, valid for
	// seven days.
	GetDocumentURL(bucket, path string) (string, error)

	// Lifecycle
	Close() error
}
