// Package workflow implements the lifecycle step functions: one per status
// transition plus the day-offset side triggers. Each step reads the session
// context from the store, renders and uploads the documents its stage
// requires, sends the matching emails, and only then writes status and
// metadata back. A step returns (false, nil) when the session was examined
// but not due, and an error when the stage could not complete; the session
// stays retryable on the next run.
package workflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/automate-formation/orchestrator/domain"
	"github.com/automate-formation/orchestrator/notify"
	"github.com/automate-formation/orchestrator/policy"
	"github.com/automate-formation/orchestrator/render"
	"github.com/automate-formation/orchestrator/store"
)

// Clock supplies the current time so day-offset triggers can be tested
// against arbitrary dates.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// RealClock returns the wall clock.
func RealClock() Clock { return realClock{} }

// Steps holds the injected collaborators shared by every step function.
type Steps struct {
	store      store.Store
	renderer   render.Renderer
	sender     notify.Sender
	policy     *policy.Engine
	clock      Clock
	org        render.Organisme
	bucket     string
	adminEmail string
}

// NewSteps wires the step functions. bucket is the storage bucket documents
// are uploaded to; adminEmail receives alerts when a session is not ready.
func NewSteps(st store.Store, renderer render.Renderer, sender notify.Sender, engine *policy.Engine, clock Clock, org render.Organisme, bucket, adminEmail string) *Steps {
	return &Steps{
		store:      st,
		renderer:   renderer,
		sender:     sender,
		policy:     engine,
		clock:      clock,
		org:        org,
		bucket:     bucket,
		adminEmail: adminEmail,
	}
}

func newID(prefix string) string {
	return prefix + "_" + uuid.New().String()[:8]
}

// daysBetween counts calendar days from one date to another, ignoring the
// time of day.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

func (s *Steps) daysUntil(date time.Time) int {
	return daysBetween(s.clock.Now(), date)
}

func (s *Steps) daysSince(date time.Time) int {
	return -s.daysUntil(date)
}

// sessionContext bundles the entities every document needs.
type sessionContext struct {
	session    *domain.Session
	entreprise *domain.Entreprise
	formation  *domain.Formation
}

func (s *Steps) loadContext(ctx context.Context, session *domain.Session) (*sessionContext, error) {
	entreprise, err := s.store.GetEntreprise(ctx, session.EntrepriseID)
	if err != nil {
		return nil, err
	}
	if entreprise == nil {
		return nil, fmt.Errorf("entreprise %s not found", session.EntrepriseID)
	}
	formation, err := s.store.GetFormation(ctx, session.FormationID)
	if err != nil {
		return nil, err
	}
	if formation == nil {
		return nil, fmt.Errorf("formation %s not found", session.FormationID)
	}
	return &sessionContext{session: session, entreprise: entreprise, formation: formation}, nil
}

// generateDocument renders one artifact, uploads it and records it with
// status genere. The returned attachment carries the rendered bytes so the
// caller can email exactly what was stored.
func (s *Steps) generateDocument(ctx context.Context, sc *sessionContext, participant *domain.Participant, docType domain.DocumentType) (*domain.Document, notify.Attachment, error) {
	c := render.BuildContext(s.org, sc.session, sc.entreprise, sc.formation, participant)
	data, err := s.renderer.Render(docType, c)
	if err != nil {
		return nil, notify.Attachment{}, fmt.Errorf("render %s: %w", docType, err)
	}

	filename := string(docType) + ".html"
	if participant != nil {
		filename = fmt.Sprintf("%s_%s.html", docType, participant.ID)
	}
	path := sc.session.ID + "/" + filename
	if _, err := s.store.UploadBinary(ctx, s.bucket, path, data, render.ContentType); err != nil {
		return nil, notify.Attachment{}, fmt.Errorf("upload %s: %w", docType, err)
	}

	doc := &domain.Document{
		ID:          newID("doc"),
		SessionID:   sc.session.ID,
		Type:        docType,
		NomFichier:  filename,
		StoragePath: path,
		Statut:      domain.DocumentGenere,
		CreatedAt:   s.clock.Now().UTC(),
	}
	if participant != nil {
		doc.ParticipantID = participant.ID
	}
	if err := s.store.RecordDocument(ctx, doc); err != nil {
		return nil, notify.Attachment{}, fmt.Errorf("record %s: %w", docType, err)
	}

	return doc, notify.Attachment{Filename: filename, Content: data, ContentType: render.ContentType}, nil
}

// deliveredDocs returns the documents already recorded as sent for a
// session, keyed by type and participant. Retry loops consult it so a
// partially failed batch resends only what never went out.
func (s *Steps) deliveredDocs(ctx context.Context, sessionID string) (map[string]bool, error) {
	documents, err := s.store.ListDocuments(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	delivered := make(map[string]bool)
	for _, d := range documents {
		if d.Statut == domain.DocumentEnvoye {
			delivered[string(d.Type)+"/"+d.ParticipantID] = true
		}
	}
	return delivered, nil
}

func deliveredKey(docType domain.DocumentType, participantID string) string {
	return string(docType) + "/" + participantID
}

// sendAndMark delivers one email and stamps the attached documents as sent.
// A failed stamp is logged but does not fail the step: the email went out.
func (s *Steps) sendAndMark(ctx context.Context, to []string, subject, html string, docs []*domain.Document, attachments []notify.Attachment) error {
	err := s.sender.Send(ctx, notify.Email{To: to, Subject: subject, HTML: html, Attachments: attachments})
	if err != nil {
		return err
	}
	at := s.clock.Now().UTC()
	for _, doc := range docs {
		if err := s.store.MarkDocumentSent(ctx, doc.ID, at); err != nil {
			log.Printf("WARN: document %s sent but not marked: %v", doc.ID, err)
		}
	}
	return nil
}

// advance moves the session forward with a compare-and-swap on its current
// status. Losing the swap to a concurrent run is reported as a skip.
func (s *Steps) advance(ctx context.Context, session *domain.Session, to domain.SessionStatus) (bool, error) {
	ok, err := s.store.TransitionSession(ctx, session.ID, session.Statut, to)
	if err != nil {
		return false, err
	}
	if !ok {
		log.Printf("WARN: session %s: lost transition %s -> %s to a concurrent run", session.ID, session.Statut, to)
		return false, nil
	}
	session.Statut = to
	return true, nil
}

func (s *Steps) timestamp() *time.Time {
	now := s.clock.Now().UTC()
	return &now
}

func (s *Steps) newEvaluation(ctx context.Context, sessionID, participantID string, evalType domain.EvaluationType) error {
	return s.store.CreateEvaluation(ctx, &domain.Evaluation{
		ID:             newID("eval"),
		SessionID:      sessionID,
		ParticipantID:  participantID,
		Type:           evalType,
		DateEvaluation: s.clock.Now().UTC(),
	})
}
