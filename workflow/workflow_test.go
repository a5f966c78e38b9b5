package workflow

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/automate-formation/orchestrator/domain"
	"github.com/automate-formation/orchestrator/notify"
	"github.com/automate-formation/orchestrator/policy"
	"github.com/automate-formation/orchestrator/render"
	"github.com/automate-formation/orchestrator/store"
	"github.com/automate-formation/orchestrator/tests/helpers"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeSender struct {
	sent   []notify.Email
	failTo map[string]bool
	onSend func(email notify.Email)
}

func (f *fakeSender) Send(ctx context.Context, email notify.Email) error {
	if f.onSend != nil {
		f.onSend(email)
	}
	if len(email.To) > 0 && f.failTo[email.To[0]] {
		return fmt.Errorf("delivery refused for %s", email.To[0])
	}
	f.sent = append(f.sent, email)
	return nil
}

func (f *fakeSender) sentTo(address string) int {
	n := 0
	for _, e := range f.sent {
		for _, to := range e.To {
			if to == address {
				n++
			}
		}
	}
	return n
}

type testEnv struct {
	store  *store.SQLiteStore
	sender *fakeSender
	clock  *fakeClock
	steps  *Steps
}

// today is the fixed reference date all tests run at.
var today = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := helpers.NewTestSQLiteStore(t)
	renderer, err := render.NewTemplateRenderer()
	if err != nil {
		t.Fatalf("NewTemplateRenderer failed: %v", err)
	}
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	sender := &fakeSender{failTo: map[string]bool{}}
	clock := &fakeClock{now: today}
	org := render.Organisme{Nom: "Centre Alpha", Siret: "12345678900011", NDA: "11755512345", Adresse: "1 rue des Écoles, Paris", Email: "contact@alpha.fr"}
	steps := NewSteps(st, renderer, sender, engine, clock, org, "documents", "admin@alpha.fr")
	return &testEnv{store: st, sender: sender, clock: clock, steps: steps}
}

// seed persists a session with its entreprise, formation and participants.
// The passed session only needs statut, dates and any optional fields.
func (e *testEnv) seed(t *testing.T, session *domain.Session, contactEmail string, participantEmails []string) *domain.Session {
	t.Helper()
	ctx := context.Background()
	now := e.clock.now

	entreprise := &domain.Entreprise{ID: newID("ent"), Nom: "ACME SARL", ContactEmail: contactEmail, CreatedAt: now}
	if err := e.store.CreateEntreprise(ctx, entreprise); err != nil {
		t.Fatalf("CreateEntreprise failed: %v", err)
	}
	formation := &domain.Formation{ID: newID("for"), Titre: "Sécurité incendie", DureeHeure: 14, PrixHT: 250, CreatedAt: now}
	if err := e.store.CreateFormation(ctx, formation); err != nil {
		t.Fatalf("CreateFormation failed: %v", err)
	}

	session.ID = newID("ses")
	session.EntrepriseID = entreprise.ID
	session.FormationID = formation.ID
	if session.NombreParticipants == 0 {
		session.NombreParticipants = len(participantEmails)
	}
	session.PrixTotalHT = 250 * float64(session.NombreParticipants)
	session.CreatedAt = now
	session.UpdatedAt = now
	if err := e.store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	for i, email := range participantEmails {
		p := &domain.Participant{
			ID:        newID("par"),
			SessionID: session.ID,
			Nom:       fmt.Sprintf("Durand%d", i+1),
			Prenom:    "Marie",
			Email:     email,
			CreatedAt: now,
		}
		if err := e.store.CreateParticipant(ctx, p); err != nil {
			t.Fatalf("CreateParticipant failed: %v", err)
		}
	}
	return session
}

func (e *testEnv) reload(t *testing.T, id string) *domain.Session {
	t.Helper()
	session, err := e.store.GetSession(context.Background(), id)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if session == nil {
		t.Fatalf("session %s vanished", id)
	}
	return session
}

func date(daysFromToday int) time.Time {
	return time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, daysFromToday)
}

func TestCreateRequestDerivations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session, err := env.steps.CreateRequest(ctx, RequestInput{
		EntrepriseNom:   "ACME SARL",
		EntrepriseEmail: "contact@acme.fr",
		FormationTitre:  "Sécurité incendie",
		DureeHeure:      14,
		PrixHT:          250,
		DateDebut:       date(30),
		Participants: []ParticipantInput{
			{Nom: "Durand", Prenom: "Marie", Email: "marie@acme.fr"},
			{Nom: "Martin", Prenom: "Paul", Email: "paul@acme.fr"},
			{Nom: "Bernard", Prenom: "Luc", Email: "luc@acme.fr"},
		},
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	if session.Statut != domain.StatusDemande {
		t.Fatalf("unexpected statut: %s", session.Statut)
	}
	// 14 hours at 7 hours a day: two days, so the end date is start + 1.
	if !session.DateFin.Equal(date(31)) {
		t.Fatalf("unexpected date_fin: %v", session.DateFin)
	}
	if session.PrixTotalHT != 750 {
		t.Fatalf("unexpected prix_total_ht: %v", session.PrixTotalHT)
	}
	if session.Metadata.DateDemande == nil {
		t.Fatalf("date_demande not recorded")
	}

	participants, err := env.store.ListParticipants(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}
	if len(participants) != 3 {
		t.Fatalf("expected 3 participants, got %d", len(participants))
	}
	if env.sender.sentTo("contact@acme.fr") != 1 {
		t.Fatalf("expected a confirmation email")
	}
}

func TestCreateRequestEndBeforeStart(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.steps.CreateRequest(context.Background(), RequestInput{
		EntrepriseNom:  "ACME SARL",
		FormationTitre: "Sécurité incendie",
		DureeHeure:     14,
		DateDebut:      date(30),
		DateFin:        date(29),
	})
	if err == nil {
		t.Fatalf("expected date order error")
	}
}

func TestProcessRequestAdvances(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:      domain.StatusDemande,
		DateDebut:   date(30),
		DateFin:     date(31),
		BesoinDevis: true,
	}, "contact@acme.fr", []string{"marie@acme.fr"})

	acted, err := env.steps.ProcessRequest(ctx, session)
	if err != nil {
		t.Fatalf("ProcessRequest failed: %v", err)
	}
	if !acted {
		t.Fatalf("expected the step to act")
	}
	if env.reload(t, session.ID).Statut != domain.StatusEnAttente {
		t.Fatalf("session not advanced")
	}

	docs, err := env.store.ListDocuments(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	types := map[domain.DocumentType]domain.DocumentStatus{}
	for _, d := range docs {
		types[d.Type] = d.Statut
	}
	for _, want := range []domain.DocumentType{domain.DocProposition, domain.DocBulletinInscription, domain.DocDevis} {
		if types[want] != domain.DocumentEnvoye {
			t.Fatalf("document %s not sent: %v", want, types)
		}
	}
	if env.reload(t, session.ID).Metadata.DateEnvoiInscription == nil {
		t.Fatalf("date_envoi_inscription not recorded")
	}
}

func TestProcessRequestWrongStatus(t *testing.T) {
	env := newTestEnv(t)
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusConfirmee,
		DateDebut: date(30),
		DateFin:   date(31),
	}, "contact@acme.fr", nil)

	if _, err := env.steps.ProcessRequest(context.Background(), session); err == nil {
		t.Fatalf("expected wrong-status error")
	}
}

func TestProcessRequestNoContactEmail(t *testing.T) {
	env := newTestEnv(t)
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusDemande,
		DateDebut: date(30),
		DateFin:   date(31),
	}, "", nil)

	if _, err := env.steps.ProcessRequest(context.Background(), session); err == nil {
		t.Fatalf("expected missing-email error")
	}
	if env.reload(t, session.ID).Statut != domain.StatusDemande {
		t.Fatalf("session must stay in demande")
	}
}

func TestSendConvocationsDateGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusConfirmee,
		DateDebut: date(8),
		DateFin:   date(9),
	}, "contact@acme.fr", []string{"marie@acme.fr", "paul@acme.fr"})

	// Eight days out: not due.
	acted, err := env.steps.SendConvocations(ctx, session)
	if err != nil {
		t.Fatalf("SendConvocations failed: %v", err)
	}
	if acted {
		t.Fatalf("must not convoke eight days out")
	}
	if len(env.sender.sent) != 0 {
		t.Fatalf("no email expected, got %d", len(env.sender.sent))
	}

	// The next day the session is exactly seven days out.
	env.clock.now = env.clock.now.AddDate(0, 0, 1)
	acted, err = env.steps.SendConvocations(ctx, session)
	if err != nil {
		t.Fatalf("SendConvocations failed: %v", err)
	}
	if !acted {
		t.Fatalf("expected convocations seven days out")
	}
	if got := env.reload(t, session.ID); got.Statut != domain.StatusConvoquee {
		t.Fatalf("session not convoked: %s", got.Statut)
	}
	// One session-level email plus one per participant.
	if len(env.sender.sent) != 3 {
		t.Fatalf("expected 3 emails, got %d", len(env.sender.sent))
	}
}

func TestSendConvocationsPartialFailureBlocks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusConfirmee,
		DateDebut: date(7),
		DateFin:   date(8),
	}, "contact@acme.fr", []string{"marie@acme.fr", "paul@acme.fr"})
	env.sender.failTo["marie@acme.fr"] = true

	_, err := env.steps.SendConvocations(ctx, session)
	if err == nil {
		t.Fatalf("expected a partial-failure error")
	}
	if got := env.reload(t, session.ID); got.Statut != domain.StatusConfirmee {
		t.Fatalf("a partial-failure batch must not advance status, got %s", got.Statut)
	}
	// The sibling recipient was still attempted.
	if env.sender.sentTo("paul@acme.fr") != 1 {
		t.Fatalf("sibling participant not attempted")
	}
}

func TestSendConvocationsRequireParticipants(t *testing.T) {
	env := newTestEnv(t)
	session := env.seed(t, &domain.Session{
		Statut:             domain.StatusConfirmee,
		DateDebut:          date(7),
		DateFin:            date(8),
		NombreParticipants: 2,
	}, "contact@acme.fr", nil)

	if _, err := env.steps.SendConvocations(context.Background(), session); err == nil {
		t.Fatalf("expected missing-participants error")
	}
}

func TestConvocationDocumentRecordedBeforeSend(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusConfirmee,
		DateDebut: date(7),
		DateFin:   date(8),
	}, "contact@acme.fr", []string{"marie@acme.fr"})

	env.sender.onSend = func(email notify.Email) {
		for _, att := range email.Attachments {
			if !strings.HasPrefix(att.Filename, string(domain.DocConvocation)) {
				continue
			}
			docs, err := env.store.ListDocuments(ctx, session.ID)
			if err != nil {
				t.Fatalf("ListDocuments failed: %v", err)
			}
			found := false
			for _, d := range docs {
				if d.Type == domain.DocConvocation && d.Statut == domain.DocumentGenere {
					found = true
				}
			}
			if !found {
				t.Fatalf("convocation must be recorded as genere before its email is sent")
			}
		}
	}

	if _, err := env.steps.SendConvocations(ctx, session); err != nil {
		t.Fatalf("SendConvocations failed: %v", err)
	}
}

func TestPreQuestionnairesIdempotence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusConfirmee,
		DateDebut: date(7),
		DateFin:   date(8),
	}, "contact@acme.fr", []string{"marie@acme.fr", "paul@acme.fr"})

	acted, err := env.steps.SendPreQuestionnaires(ctx, session)
	if err != nil {
		t.Fatalf("SendPreQuestionnaires failed: %v", err)
	}
	if !acted {
		t.Fatalf("expected the step to act at J-7")
	}
	if len(env.sender.sent) != 2 {
		t.Fatalf("expected 2 questionnaires, got %d emails", len(env.sender.sent))
	}

	// Same day, fresh session snapshot: the metadata flag makes it a no-op.
	acted, err = env.steps.SendPreQuestionnaires(ctx, env.reload(t, session.ID))
	if err != nil {
		t.Fatalf("SendPreQuestionnaires failed: %v", err)
	}
	if acted {
		t.Fatalf("second run must be a no-op")
	}
	if len(env.sender.sent) != 2 {
		t.Fatalf("questionnaires re-sent: %d emails", len(env.sender.sent))
	}
}

func TestReminderGating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusConvoquee,
		DateDebut: date(2),
		DateFin:   date(3),
	}, "contact@acme.fr", nil)

	acted, err := env.steps.SendReminder(ctx, session)
	if err != nil {
		t.Fatalf("SendReminder failed: %v", err)
	}
	if !acted {
		t.Fatalf("expected reminder at J-2")
	}
	if env.reload(t, session.ID).Metadata.Rappel2Jours == nil {
		t.Fatalf("reminder flag not set")
	}

	acted, err = env.steps.SendReminder(ctx, env.reload(t, session.ID))
	if err != nil || acted {
		t.Fatalf("second reminder must be a no-op, got acted=%v err=%v", acted, err)
	}
}

func TestCheckReadiness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusConvoquee,
		DateDebut: date(1),
		DateFin:   date(2),
	}, "contact@acme.fr", nil)

	// No trainer: the administrator is alerted and the check stays due.
	_, err := env.steps.CheckReadiness(ctx, session)
	if err == nil {
		t.Fatalf("expected no-formateur error")
	}
	if env.sender.sentTo("admin@alpha.fr") != 1 {
		t.Fatalf("expected an admin alert")
	}

	if err := env.store.AssignFormateur(ctx, session.ID, "Claire Petit", "claire@formateurs.fr"); err != nil {
		t.Fatalf("AssignFormateur failed: %v", err)
	}
	acted, err := env.steps.CheckReadiness(ctx, env.reload(t, session.ID))
	if err != nil {
		t.Fatalf("CheckReadiness failed: %v", err)
	}
	if !acted {
		t.Fatalf("expected trainer notification")
	}
	if env.sender.sentTo("claire@formateurs.fr") != 1 {
		t.Fatalf("trainer not notified")
	}
	if env.reload(t, session.ID).Metadata.NotificationFormateur == nil {
		t.Fatalf("notification flag not set")
	}
}

func TestHotEvaluationsGating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusConvoquee,
		DateDebut: date(0),
		DateFin:   date(1),
	}, "contact@acme.fr", []string{"marie@acme.fr"})

	// The session ends tomorrow: nothing to send yet.
	acted, err := env.steps.SendHotEvaluations(ctx, session)
	if err != nil || acted {
		t.Fatalf("must not act before the end date, got acted=%v err=%v", acted, err)
	}

	env.clock.now = env.clock.now.AddDate(0, 0, 1)
	acted, err = env.steps.SendHotEvaluations(ctx, session)
	if err != nil {
		t.Fatalf("SendHotEvaluations failed: %v", err)
	}
	if !acted {
		t.Fatalf("expected hot evaluations on the end date")
	}
	if env.sender.sentTo("marie@acme.fr") != 1 {
		t.Fatalf("participant questionnaire not sent")
	}
	if env.reload(t, session.ID).Metadata.EvaluationsAChaud == nil {
		t.Fatalf("hot evaluation flag not set")
	}
	evaluations, err := env.store.ListEvaluations(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListEvaluations failed: %v", err)
	}
	if len(evaluations) != 1 || evaluations[0].Type != domain.EvalAChaud {
		t.Fatalf("hot evaluation not recorded: %+v", evaluations)
	}

	// Same day, fresh snapshot: the metadata flag makes it a no-op.
	acted, err = env.steps.SendHotEvaluations(ctx, env.reload(t, session.ID))
	if err != nil || acted {
		t.Fatalf("second run must be a no-op, got acted=%v err=%v", acted, err)
	}
	if env.sender.sentTo("marie@acme.fr") != 1 {
		t.Fatalf("questionnaire re-sent")
	}
}

func TestTrainerReviewGating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusTerminee,
		DateDebut: date(-2),
		DateFin:   date(0),
	}, "contact@acme.fr", nil)

	// The session ended today: the review is due tomorrow.
	acted, err := env.steps.SendTrainerReview(ctx, session)
	if err != nil || acted {
		t.Fatalf("must not act on the end date, got acted=%v err=%v", acted, err)
	}

	env.clock.now = env.clock.now.AddDate(0, 0, 1)

	// Due, but no trainer assigned.
	if _, err := env.steps.SendTrainerReview(ctx, session); err == nil {
		t.Fatalf("expected no-formateur error")
	}

	if err := env.store.AssignFormateur(ctx, session.ID, "Claire Petit", "claire@formateurs.fr"); err != nil {
		t.Fatalf("AssignFormateur failed: %v", err)
	}
	acted, err = env.steps.SendTrainerReview(ctx, env.reload(t, session.ID))
	if err != nil {
		t.Fatalf("SendTrainerReview failed: %v", err)
	}
	if !acted {
		t.Fatalf("expected the review the day after the session")
	}
	if env.sender.sentTo("claire@formateurs.fr") != 1 {
		t.Fatalf("trainer review not sent")
	}
	if env.reload(t, session.ID).Metadata.BilanFormateur == nil {
		t.Fatalf("trainer review flag not set")
	}
	evaluations, err := env.store.ListEvaluations(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListEvaluations failed: %v", err)
	}
	if len(evaluations) != 1 || evaluations[0].Type != domain.EvalFormateur {
		t.Fatalf("trainer evaluation not recorded: %+v", evaluations)
	}

	acted, err = env.steps.SendTrainerReview(ctx, env.reload(t, session.ID))
	if err != nil || acted {
		t.Fatalf("second run must be a no-op, got acted=%v err=%v", acted, err)
	}
	if env.sender.sentTo("claire@formateurs.fr") != 1 {
		t.Fatalf("review re-sent")
	}
}

func TestSendConvocationsRetryResendsOnlyMissing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusConfirmee,
		DateDebut: date(7),
		DateFin:   date(8),
	}, "contact@acme.fr", []string{"marie@acme.fr", "paul@acme.fr"})
	env.sender.failTo["marie@acme.fr"] = true

	if _, err := env.steps.SendConvocations(ctx, session); err == nil {
		t.Fatalf("expected a partial-failure error")
	}
	if env.sender.sentTo("contact@acme.fr") != 1 || env.sender.sentTo("paul@acme.fr") != 1 {
		t.Fatalf("successful recipients of the first attempt missing")
	}

	// Delivery recovers: the retry reaches only the failed recipient.
	delete(env.sender.failTo, "marie@acme.fr")
	acted, err := env.steps.SendConvocations(ctx, env.reload(t, session.ID))
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !acted {
		t.Fatalf("expected the retry to act")
	}
	if env.reload(t, session.ID).Statut != domain.StatusConvoquee {
		t.Fatalf("session not convoked after retry")
	}
	if env.sender.sentTo("marie@acme.fr") != 1 {
		t.Fatalf("failed recipient not retried")
	}
	if env.sender.sentTo("contact@acme.fr") != 1 {
		t.Fatalf("session documents re-sent to the company")
	}
	if env.sender.sentTo("paul@acme.fr") != 1 {
		t.Fatalf("already-delivered convocation re-sent")
	}
}

func TestCompleteSessionAdvances(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusConvoquee,
		DateDebut: date(-3),
		DateFin:   date(-2),
	}, "contact@acme.fr", []string{"marie@acme.fr"})

	acted, err := env.steps.CompleteSession(ctx, session)
	if err != nil {
		t.Fatalf("CompleteSession failed: %v", err)
	}
	if !acted {
		t.Fatalf("expected completion at J+2")
	}
	got := env.reload(t, session.ID)
	if got.Statut != domain.StatusTerminee {
		t.Fatalf("session not terminated: %s", got.Statut)
	}
	if got.Metadata.DateEnvoiCertificat == nil {
		t.Fatalf("certificate send date not recorded")
	}

	evaluations, err := env.store.ListEvaluations(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListEvaluations failed: %v", err)
	}
	if len(evaluations) != 1 || evaluations[0].Type != domain.EvalSatisfactionClient {
		t.Fatalf("satisfaction evaluation not recorded: %+v", evaluations)
	}
}

func TestCompleteSessionNotDueBeforeJPlus2(t *testing.T) {
	env := newTestEnv(t)
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusConvoquee,
		DateDebut: date(-2),
		DateFin:   date(-1),
	}, "contact@acme.fr", []string{"marie@acme.fr"})

	acted, err := env.steps.CompleteSession(context.Background(), session)
	if err != nil || acted {
		t.Fatalf("must not complete at J+1, got acted=%v err=%v", acted, err)
	}
}

func TestColdEvaluationsGating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusTerminee,
		DateDebut: date(-61),
		DateFin:   date(-59),
	}, "contact@acme.fr", []string{"marie@acme.fr"})

	acted, err := env.steps.SendColdEvaluations(ctx, session)
	if err != nil || acted {
		t.Fatalf("must not act at J+59, got acted=%v err=%v", acted, err)
	}

	env.clock.now = env.clock.now.AddDate(0, 0, 1)
	acted, err = env.steps.SendColdEvaluations(ctx, session)
	if err != nil {
		t.Fatalf("SendColdEvaluations failed: %v", err)
	}
	if !acted {
		t.Fatalf("expected cold evaluations at J+60")
	}
	evaluations, err := env.store.ListEvaluations(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListEvaluations failed: %v", err)
	}
	if len(evaluations) != 1 || evaluations[0].Type != domain.EvalAFroid {
		t.Fatalf("cold evaluation not recorded: %+v", evaluations)
	}
}

func TestArchivalCompleteness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusTerminee,
		DateDebut: date(-92),
		DateFin:   date(-90),
	}, "contact@acme.fr", []string{"marie@acme.fr"})

	// Everything required is on file except the attendance sheet.
	for _, docType := range []domain.DocumentType{
		domain.DocProposition, domain.DocConvention, domain.DocProgramme,
		domain.DocConvocation, domain.DocCertificat, domain.DocQuestionnairePrealable,
	} {
		doc := &domain.Document{
			ID:          newID("doc"),
			SessionID:   session.ID,
			Type:        docType,
			NomFichier:  string(docType) + ".html",
			StoragePath: session.ID + "/" + string(docType) + ".html",
			Statut:      domain.DocumentEnvoye,
			CreatedAt:   env.clock.now,
		}
		if err := env.store.RecordDocument(ctx, doc); err != nil {
			t.Fatalf("RecordDocument failed: %v", err)
		}
	}

	_, err := env.steps.ArchiveSession(ctx, session)
	if err == nil {
		t.Fatalf("expected completeness error")
	}
	if !strings.Contains(err.Error(), "emargement") {
		t.Fatalf("missing type not named: %v", err)
	}
	if env.reload(t, session.ID).Statut != domain.StatusTerminee {
		t.Fatalf("blocked session must stay terminee")
	}

	// Once the attendance sheet is recorded, a re-run archives the session.
	doc := &domain.Document{
		ID:          newID("doc"),
		SessionID:   session.ID,
		Type:        domain.DocEmargement,
		NomFichier:  "emargement.html",
		StoragePath: session.ID + "/emargement.html",
		Statut:      domain.DocumentGenere,
		CreatedAt:   env.clock.now,
	}
	if err := env.store.RecordDocument(ctx, doc); err != nil {
		t.Fatalf("RecordDocument failed: %v", err)
	}
	acted, err := env.steps.ArchiveSession(ctx, env.reload(t, session.ID))
	if err != nil {
		t.Fatalf("ArchiveSession failed: %v", err)
	}
	if !acted {
		t.Fatalf("expected archival after remediation")
	}
	if env.reload(t, session.ID).Statut != domain.StatusArchivee {
		t.Fatalf("session not archived")
	}
}

func TestGenerateMissingDocuments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusTerminee,
		DateDebut: date(-92),
		DateFin:   date(-90),
	}, "contact@acme.fr", []string{"marie@acme.fr"})

	generated, err := env.steps.GenerateMissingDocuments(ctx, session.ID)
	if err != nil {
		t.Fatalf("GenerateMissingDocuments failed: %v", err)
	}
	if len(generated) != 7 {
		t.Fatalf("expected 7 backfilled types, got %v", generated)
	}

	// A second pass finds nothing left to generate.
	generated, err = env.steps.GenerateMissingDocuments(ctx, session.ID)
	if err != nil {
		t.Fatalf("GenerateMissingDocuments failed: %v", err)
	}
	if len(generated) != 0 {
		t.Fatalf("expected no further backfill, got %v", generated)
	}

	// The remediated session can now be archived.
	acted, err := env.steps.ArchiveSession(ctx, env.reload(t, session.ID))
	if err != nil {
		t.Fatalf("ArchiveSession failed: %v", err)
	}
	if !acted {
		t.Fatalf("expected archival after backfill")
	}
}

func TestCancel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.seed(t, &domain.Session{
		Statut:    domain.StatusConfirmee,
		DateDebut: date(10),
		DateFin:   date(11),
	}, "contact@acme.fr", nil)

	if err := env.steps.Cancel(ctx, session.ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if env.reload(t, session.ID).Statut != domain.StatusAnnulee {
		t.Fatalf("session not cancelled")
	}
	if err := env.steps.Cancel(ctx, session.ID); err == nil {
		t.Fatalf("cancelling a cancelled session must fail")
	}
}
