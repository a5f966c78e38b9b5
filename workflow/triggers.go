package workflow

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/automate-formation/orchestrator/domain"
	"github.com/automate-formation/orchestrator/notify"
)

// The side triggers below never change the session status. Each is keyed by
// a day offset from date_debut or date_fin and guarded by its own metadata
// timestamp so a re-run within the same day is a no-op.

// SendPreQuestionnaires issues the pre-training questionnaire to every
// participant seven days before the session starts.
func (s *Steps) SendPreQuestionnaires(ctx context.Context, session *domain.Session) (bool, error) {
	if session.Statut != domain.StatusConfirmee && session.Statut != domain.StatusConvoquee {
		return false, wrongStatus(session, domain.StatusConfirmee, domain.StatusConvoquee)
	}
	if s.daysUntil(session.DateDebut) != 7 {
		return false, nil
	}
	if session.Metadata.QuestionnairesPrealables != nil {
		return false, nil
	}

	sc, err := s.loadContext(ctx, session)
	if err != nil {
		return false, err
	}
	participants, err := s.store.ListParticipants(ctx, session.ID)
	if err != nil {
		return false, err
	}
	if len(participants) == 0 {
		return false, nil
	}
	delivered, err := s.deliveredDocs(ctx, session.ID)
	if err != nil {
		return false, err
	}

	var failures []string
	for i := range participants {
		p := &participants[i]
		if p.Email == "" {
			failures = append(failures, fmt.Sprintf("participant %s has no email", p.ID))
			continue
		}
		if delivered[deliveredKey(domain.DocQuestionnairePrealable, p.ID)] {
			continue
		}
		doc, att, err := s.generateDocument(ctx, sc, p, domain.DocQuestionnairePrealable)
		if err != nil {
			failures = append(failures, fmt.Sprintf("participant %s: %v", p.ID, err))
			continue
		}
		html := fmt.Sprintf("<p>Bonjour %s %s,</p><p>Votre formation <strong>%s</strong> débute le %s. Merci de compléter le questionnaire préalable ci-joint et de nous le retourner avant le début de la session.</p>",
			p.Prenom, p.Nom, sc.formation.Titre, session.DateDebut.Format("02/01/2006"))
		err = s.sendAndMark(ctx, []string{p.Email}, fmt.Sprintf("Questionnaire préalable : %s", sc.formation.Titre), html, []*domain.Document{doc}, []notify.Attachment{att})
		if err != nil {
			failures = append(failures, fmt.Sprintf("participant %s: %v", p.ID, err))
		}
	}
	if len(failures) > 0 {
		return false, fmt.Errorf("pre-training questionnaires incomplete: %s", strings.Join(failures, "; "))
	}

	session.Metadata.QuestionnairesPrealables = s.timestamp()
	session.Metadata.RecordDocumentSent(domain.DocQuestionnairePrealable)
	if err := s.store.UpdateSessionMetadata(ctx, session.ID, session.Metadata); err != nil {
		return false, err
	}
	return true, nil
}

// SendReminder reminds the company contact two days before the session.
func (s *Steps) SendReminder(ctx context.Context, session *domain.Session) (bool, error) {
	if session.Statut != domain.StatusConvoquee {
		return false, wrongStatus(session, domain.StatusConvoquee)
	}
	if s.daysUntil(session.DateDebut) != 2 {
		return false, nil
	}
	if session.Metadata.Rappel2Jours != nil {
		return false, nil
	}

	sc, err := s.loadContext(ctx, session)
	if err != nil {
		return false, err
	}
	if sc.entreprise.ContactEmail == "" {
		return false, fmt.Errorf("entreprise %s has no contact email", sc.entreprise.ID)
	}

	subject := fmt.Sprintf("Rappel : formation %s dans 2 jours", sc.formation.Titre)
	html := fmt.Sprintf("<p>Bonjour,</p><p>Nous vous rappelons que la formation <strong>%s</strong> débute le %s à l'adresse suivante : %s. Horaires : %s.</p>",
		sc.formation.Titre, session.DateDebut.Format("02/01/2006"), session.Lieu, session.Horaires)
	if err := s.sender.Send(ctx, notify.Email{To: []string{sc.entreprise.ContactEmail}, Subject: subject, HTML: html}); err != nil {
		return false, fmt.Errorf("send reminder: %w", err)
	}

	session.Metadata.Rappel2Jours = s.timestamp()
	if err := s.store.UpdateSessionMetadata(ctx, session.ID, session.Metadata); err != nil {
		return false, err
	}
	return true, nil
}

// CheckReadiness verifies the day before the session that a trainer is
// assigned. Without one the administrator is alerted and the check stays
// due; with one the trainer is notified to prepare.
func (s *Steps) CheckReadiness(ctx context.Context, session *domain.Session) (bool, error) {
	if session.Statut != domain.StatusConvoquee {
		return false, wrongStatus(session, domain.StatusConvoquee)
	}
	if s.daysUntil(session.DateDebut) != 1 {
		return false, nil
	}
	if session.Metadata.NotificationFormateur != nil {
		return false, nil
	}

	sc, err := s.loadContext(ctx, session)
	if err != nil {
		return false, err
	}

	if session.FormateurEmail == "" {
		if s.adminEmail != "" {
			alert := fmt.Sprintf("<p>La session %s (%s, début le %s) n'a pas de formateur assigné.</p>",
				session.ID, sc.formation.Titre, session.DateDebut.Format("02/01/2006"))
			err := s.sender.Send(ctx, notify.Email{To: []string{s.adminEmail}, Subject: fmt.Sprintf("ALERTE : session %s sans formateur", session.ID), HTML: alert})
			if err != nil {
				log.Printf("WARN: session %s: admin alert not sent: %v", session.ID, err)
			}
		}
		return false, fmt.Errorf("no formateur assigned")
	}

	doc, att, err := s.generateDocument(ctx, sc, nil, domain.DocDeroulePedagogique)
	if err != nil {
		return false, err
	}
	html := fmt.Sprintf("<p>Bonjour %s,</p><p>La formation <strong>%s</strong> que vous animez débute demain (%s) : %s, %s. Le déroulé pédagogique est joint.</p>",
		session.FormateurNom, sc.formation.Titre, session.DateDebut.Format("02/01/2006"), session.Lieu, session.Horaires)
	err = s.sendAndMark(ctx, []string{session.FormateurEmail}, fmt.Sprintf("Votre intervention demain : %s", sc.formation.Titre), html, []*domain.Document{doc}, []notify.Attachment{att})
	if err != nil {
		return false, fmt.Errorf("notify formateur: %w", err)
	}

	session.Metadata.NotificationFormateur = s.timestamp()
	if err := s.store.UpdateSessionMetadata(ctx, session.ID, session.Metadata); err != nil {
		return false, err
	}
	return true, nil
}

// SendHotEvaluations issues the end-of-training questionnaire to every
// participant on the day the session ends.
func (s *Steps) SendHotEvaluations(ctx context.Context, session *domain.Session) (bool, error) {
	if session.Statut != domain.StatusConvoquee && session.Statut != domain.StatusTerminee {
		return false, wrongStatus(session, domain.StatusConvoquee, domain.StatusTerminee)
	}
	if s.daysSince(session.DateFin) != 0 {
		return false, nil
	}
	if session.Metadata.EvaluationsAChaud != nil {
		return false, nil
	}

	acted, err := s.sendParticipantEvaluations(ctx, session, domain.DocEvaluationAChaud, domain.EvalAChaud,
		"Évaluation à chaud : %s",
		"<p>Bonjour %s %s,</p><p>La formation <strong>%s</strong> vient de se terminer. Merci de compléter le questionnaire d'évaluation ci-joint.</p>")
	if err != nil || !acted {
		return acted, err
	}

	session.Metadata.EvaluationsAChaud = s.timestamp()
	session.Metadata.RecordDocumentSent(domain.DocEvaluationAChaud)
	if err := s.store.UpdateSessionMetadata(ctx, session.ID, session.Metadata); err != nil {
		return false, err
	}
	return true, nil
}

// SendTrainerReview issues the trainer's post-session questionnaire the day
// after the session ends.
func (s *Steps) SendTrainerReview(ctx context.Context, session *domain.Session) (bool, error) {
	if session.Statut != domain.StatusConvoquee && session.Statut != domain.StatusTerminee {
		return false, wrongStatus(session, domain.StatusConvoquee, domain.StatusTerminee)
	}
	if s.daysSince(session.DateFin) != 1 {
		return false, nil
	}
	if session.Metadata.BilanFormateur != nil {
		return false, nil
	}
	if session.FormateurEmail == "" {
		return false, fmt.Errorf("no formateur assigned")
	}

	sc, err := s.loadContext(ctx, session)
	if err != nil {
		return false, err
	}
	doc, att, err := s.generateDocument(ctx, sc, nil, domain.DocEvaluationFormateur)
	if err != nil {
		return false, err
	}
	html := fmt.Sprintf("<p>Bonjour %s,</p><p>Merci de compléter le bilan de votre intervention sur la formation <strong>%s</strong>, terminée le %s.</p>",
		session.FormateurNom, sc.formation.Titre, session.DateFin.Format("02/01/2006"))
	err = s.sendAndMark(ctx, []string{session.FormateurEmail}, fmt.Sprintf("Bilan formateur : %s", sc.formation.Titre), html, []*domain.Document{doc}, []notify.Attachment{att})
	if err != nil {
		return false, fmt.Errorf("send trainer review: %w", err)
	}
	if err := s.newEvaluation(ctx, session.ID, "", domain.EvalFormateur); err != nil {
		return false, err
	}

	session.Metadata.BilanFormateur = s.timestamp()
	session.Metadata.RecordDocumentSent(domain.DocEvaluationFormateur)
	if err := s.store.UpdateSessionMetadata(ctx, session.ID, session.Metadata); err != nil {
		return false, err
	}
	return true, nil
}

// SendColdEvaluations issues the sixty-day follow-up questionnaire to every
// participant.
func (s *Steps) SendColdEvaluations(ctx context.Context, session *domain.Session) (bool, error) {
	if session.Statut != domain.StatusTerminee {
		return false, wrongStatus(session, domain.StatusTerminee)
	}
	if s.daysSince(session.DateFin) != 60 {
		return false, nil
	}
	if session.Metadata.EvaluationsAFroid != nil {
		return false, nil
	}

	acted, err := s.sendParticipantEvaluations(ctx, session, domain.DocEvaluationAFroid, domain.EvalAFroid,
		"Évaluation à froid : %s",
		"<p>Bonjour %s %s,</p><p>Deux mois après la formation <strong>%s</strong>, merci de compléter le questionnaire de suivi ci-joint.</p>")
	if err != nil || !acted {
		return acted, err
	}

	session.Metadata.EvaluationsAFroid = s.timestamp()
	session.Metadata.RecordDocumentSent(domain.DocEvaluationAFroid)
	if err := s.store.UpdateSessionMetadata(ctx, session.ID, session.Metadata); err != nil {
		return false, err
	}
	return true, nil
}

// sendParticipantEvaluations generates one questionnaire per participant,
// emails it and records the evaluation instance. It reports acted=false
// when the session has no participants.
func (s *Steps) sendParticipantEvaluations(ctx context.Context, session *domain.Session, docType domain.DocumentType, evalType domain.EvaluationType, subjectFormat, bodyFormat string) (bool, error) {
	sc, err := s.loadContext(ctx, session)
	if err != nil {
		return false, err
	}
	participants, err := s.store.ListParticipants(ctx, session.ID)
	if err != nil {
		return false, err
	}
	if len(participants) == 0 {
		return false, nil
	}
	delivered, err := s.deliveredDocs(ctx, session.ID)
	if err != nil {
		return false, err
	}

	var failures []string
	for i := range participants {
		p := &participants[i]
		if p.Email == "" {
			failures = append(failures, fmt.Sprintf("participant %s has no email", p.ID))
			continue
		}
		if delivered[deliveredKey(docType, p.ID)] {
			continue
		}
		doc, att, err := s.generateDocument(ctx, sc, p, docType)
		if err != nil {
			failures = append(failures, fmt.Sprintf("participant %s: %v", p.ID, err))
			continue
		}
		html := fmt.Sprintf(bodyFormat, p.Prenom, p.Nom, sc.formation.Titre)
		err = s.sendAndMark(ctx, []string{p.Email}, fmt.Sprintf(subjectFormat, sc.formation.Titre), html, []*domain.Document{doc}, []notify.Attachment{att})
		if err != nil {
			failures = append(failures, fmt.Sprintf("participant %s: %v", p.ID, err))
			continue
		}
		if err := s.newEvaluation(ctx, session.ID, p.ID, evalType); err != nil {
			failures = append(failures, fmt.Sprintf("participant %s: %v", p.ID, err))
		}
	}
	if len(failures) > 0 {
		return false, fmt.Errorf("%s incomplete: %s", docType, strings.Join(failures, "; "))
	}
	return true, nil
}
