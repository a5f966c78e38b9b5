package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/automate-formation/orchestrator/domain"
	"github.com/automate-formation/orchestrator/notify"
)

func wrongStatus(session *domain.Session, want ...domain.SessionStatus) error {
	wanted := make([]string, len(want))
	for i, w := range want {
		wanted[i] = string(w)
	}
	return fmt.Errorf("session is %s, expected %s", session.Statut, strings.Join(wanted, " or "))
}

// ProcessRequest advances a new request to en_attente: the proposition and
// registration form (plus a quote when asked for) are generated and emailed
// to the company.
func (s *Steps) ProcessRequest(ctx context.Context, session *domain.Session) (bool, error) {
	if session.Statut != domain.StatusDemande {
		return false, wrongStatus(session, domain.StatusDemande)
	}
	sc, err := s.loadContext(ctx, session)
	if err != nil {
		return false, err
	}
	if sc.entreprise.ContactEmail == "" {
		return false, fmt.Errorf("entreprise %s has no contact email", sc.entreprise.ID)
	}

	types := []domain.DocumentType{domain.DocProposition, domain.DocBulletinInscription}
	if session.BesoinDevis {
		types = append(types, domain.DocDevis)
	}

	var docs []*domain.Document
	var attachments []notify.Attachment
	for _, docType := range types {
		doc, att, err := s.generateDocument(ctx, sc, nil, docType)
		if err != nil {
			return false, err
		}
		docs = append(docs, doc)
		attachments = append(attachments, att)
	}

	subject := fmt.Sprintf("Votre demande de formation : %s", sc.formation.Titre)
	html := fmt.Sprintf("<p>Bonjour,</p><p>Suite à votre demande, veuillez trouver ci-joint notre proposition et le bulletin d'inscription pour la formation <strong>%s</strong> du %s au %s.</p><p>Merci de nous retourner le bulletin complété.</p>",
		sc.formation.Titre, session.DateDebut.Format("02/01/2006"), session.DateFin.Format("02/01/2006"))
	if err := s.sendAndMark(ctx, []string{sc.entreprise.ContactEmail}, subject, html, docs, attachments); err != nil {
		return false, fmt.Errorf("send inscription: %w", err)
	}

	session.Metadata.DateEnvoiInscription = s.timestamp()
	for _, docType := range types {
		session.Metadata.RecordDocumentSent(docType)
	}
	if err := s.store.UpdateSessionMetadata(ctx, session.ID, session.Metadata); err != nil {
		return false, err
	}
	return s.advance(ctx, session, domain.StatusEnAttente)
}

// SendConvention confirms a session after commercial acceptance: the
// convention and programme are generated and dispatched to the company for
// signature, then the session moves to confirmee.
func (s *Steps) SendConvention(ctx context.Context, session *domain.Session) (bool, error) {
	if session.Statut != domain.StatusEnAttente {
		return false, wrongStatus(session, domain.StatusEnAttente)
	}
	sc, err := s.loadContext(ctx, session)
	if err != nil {
		return false, err
	}
	if sc.entreprise.ContactEmail == "" {
		return false, fmt.Errorf("entreprise %s has no contact email", sc.entreprise.ID)
	}

	var docs []*domain.Document
	var attachments []notify.Attachment
	for _, docType := range []domain.DocumentType{domain.DocConvention, domain.DocProgramme} {
		doc, att, err := s.generateDocument(ctx, sc, nil, docType)
		if err != nil {
			return false, err
		}
		docs = append(docs, doc)
		attachments = append(attachments, att)
	}

	subject := fmt.Sprintf("Convention de formation à signer : %s", sc.formation.Titre)
	html := fmt.Sprintf("<p>Bonjour,</p><p>Veuillez trouver ci-joint la convention de formation et le programme pour <strong>%s</strong>. Merci de nous retourner la convention signée avant le %s.</p>",
		sc.formation.Titre, session.DateDebut.Format("02/01/2006"))
	if err := s.sendAndMark(ctx, []string{sc.entreprise.ContactEmail}, subject, html, docs, attachments); err != nil {
		return false, fmt.Errorf("send convention: %w", err)
	}

	session.Metadata.DateEnvoiConvention = s.timestamp()
	session.Metadata.RecordDocumentSent(domain.DocConvention)
	session.Metadata.RecordDocumentSent(domain.DocProgramme)
	if err := s.store.UpdateSessionMetadata(ctx, session.ID, session.Metadata); err != nil {
		return false, err
	}
	return s.advance(ctx, session, domain.StatusConfirmee)
}

// SendConvocations convokes a confirmed session seven days before it
// starts: the attendance sheet and house rules go to the company, one
// personalized convocation goes to each participant. Every recipient must
// succeed before the session advances to convoquee.
func (s *Steps) SendConvocations(ctx context.Context, session *domain.Session) (bool, error) {
	if session.Statut != domain.StatusConfirmee {
		return false, wrongStatus(session, domain.StatusConfirmee)
	}
	if s.daysUntil(session.DateDebut) > 7 {
		return false, nil
	}
	if session.Metadata.DateEnvoiConvocation != nil {
		return false, nil
	}

	sc, err := s.loadContext(ctx, session)
	if err != nil {
		return false, err
	}
	if sc.entreprise.ContactEmail == "" {
		return false, fmt.Errorf("entreprise %s has no contact email", sc.entreprise.ID)
	}
	participants, err := s.store.ListParticipants(ctx, session.ID)
	if err != nil {
		return false, err
	}
	if session.NombreParticipants > 0 && len(participants) == 0 {
		return false, fmt.Errorf("expected %d participants but none are declared", session.NombreParticipants)
	}
	delivered, err := s.deliveredDocs(ctx, session.ID)
	if err != nil {
		return false, err
	}

	if !delivered[deliveredKey(domain.DocEmargement, "")] || !delivered[deliveredKey(domain.DocReglementInterieur, "")] {
		var docs []*domain.Document
		var attachments []notify.Attachment
		for _, docType := range []domain.DocumentType{domain.DocEmargement, domain.DocReglementInterieur} {
			doc, att, err := s.generateDocument(ctx, sc, nil, docType)
			if err != nil {
				return false, err
			}
			docs = append(docs, doc)
			attachments = append(attachments, att)
		}
		subject := fmt.Sprintf("Formation %s : documents de session", sc.formation.Titre)
		html := fmt.Sprintf("<p>Bonjour,</p><p>La formation <strong>%s</strong> débute le %s. Vous trouverez ci-joint la feuille d'émargement et le règlement intérieur. Les convocations sont adressées directement aux participants.</p>",
			sc.formation.Titre, session.DateDebut.Format("02/01/2006"))
		if err := s.sendAndMark(ctx, []string{sc.entreprise.ContactEmail}, subject, html, docs, attachments); err != nil {
			return false, fmt.Errorf("send session documents: %w", err)
		}
	}

	var failures []string
	for i := range participants {
		p := &participants[i]
		if p.Email == "" {
			failures = append(failures, fmt.Sprintf("participant %s has no email", p.ID))
			continue
		}
		if delivered[deliveredKey(domain.DocConvocation, p.ID)] {
			continue
		}
		doc, att, err := s.generateDocument(ctx, sc, p, domain.DocConvocation)
		if err != nil {
			failures = append(failures, fmt.Sprintf("participant %s: %v", p.ID, err))
			continue
		}
		html := fmt.Sprintf("<p>Bonjour %s %s,</p><p>Veuillez trouver ci-joint votre convocation à la formation <strong>%s</strong> du %s, %s.</p>",
			p.Prenom, p.Nom, sc.formation.Titre, session.DateDebut.Format("02/01/2006"), session.Lieu)
		err = s.sendAndMark(ctx, []string{p.Email}, fmt.Sprintf("Convocation : %s", sc.formation.Titre), html, []*domain.Document{doc}, []notify.Attachment{att})
		if err != nil {
			failures = append(failures, fmt.Sprintf("participant %s: %v", p.ID, err))
		}
	}
	if len(failures) > 0 {
		return false, fmt.Errorf("convocations incomplete: %s", strings.Join(failures, "; "))
	}

	session.Metadata.DateEnvoiConvocation = s.timestamp()
	session.Metadata.RecordDocumentSent(domain.DocConvocation)
	session.Metadata.RecordDocumentSent(domain.DocEmargement)
	session.Metadata.RecordDocumentSent(domain.DocReglementInterieur)
	if err := s.store.UpdateSessionMetadata(ctx, session.ID, session.Metadata); err != nil {
		return false, err
	}
	return s.advance(ctx, session, domain.StatusConvoquee)
}

// CompleteSession closes a session two days after it ended: each
// participant receives a certificate of completion, the company receives
// the satisfaction questionnaire, and the session moves to terminee only
// when every send succeeded.
func (s *Steps) CompleteSession(ctx context.Context, session *domain.Session) (bool, error) {
	if session.Statut != domain.StatusConvoquee {
		return false, wrongStatus(session, domain.StatusConvoquee)
	}
	if s.daysSince(session.DateFin) < 2 {
		return false, nil
	}

	sc, err := s.loadContext(ctx, session)
	if err != nil {
		return false, err
	}
	if sc.entreprise.ContactEmail == "" {
		return false, fmt.Errorf("entreprise %s has no contact email", sc.entreprise.ID)
	}
	participants, err := s.store.ListParticipants(ctx, session.ID)
	if err != nil {
		return false, err
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
		if delivered[deliveredKey(domain.DocCertificat, p.ID)] {
			continue
		}
		doc, att, err := s.generateDocument(ctx, sc, p, domain.DocCertificat)
		if err != nil {
			failures = append(failures, fmt.Sprintf("participant %s: %v", p.ID, err))
			continue
		}
		html := fmt.Sprintf("<p>Bonjour %s %s,</p><p>Veuillez trouver ci-joint votre certificat de réalisation pour la formation <strong>%s</strong>.</p>",
			p.Prenom, p.Nom, sc.formation.Titre)
		err = s.sendAndMark(ctx, []string{p.Email}, fmt.Sprintf("Certificat de réalisation : %s", sc.formation.Titre), html, []*domain.Document{doc}, []notify.Attachment{att})
		if err != nil {
			failures = append(failures, fmt.Sprintf("participant %s: %v", p.ID, err))
		}
	}

	if !delivered[deliveredKey(domain.DocEvaluationSatisfaction, "")] {
		doc, att, err := s.generateDocument(ctx, sc, nil, domain.DocEvaluationSatisfaction)
		if err != nil {
			failures = append(failures, fmt.Sprintf("satisfaction questionnaire: %v", err))
		} else {
			html := fmt.Sprintf("<p>Bonjour,</p><p>La formation <strong>%s</strong> est terminée. Merci de compléter le questionnaire de satisfaction ci-joint.</p>", sc.formation.Titre)
			err = s.sendAndMark(ctx, []string{sc.entreprise.ContactEmail}, fmt.Sprintf("Votre avis sur la formation %s", sc.formation.Titre), html, []*domain.Document{doc}, []notify.Attachment{att})
			if err != nil {
				failures = append(failures, fmt.Sprintf("satisfaction questionnaire: %v", err))
			} else if err := s.newEvaluation(ctx, session.ID, "", domain.EvalSatisfactionClient); err != nil {
				failures = append(failures, fmt.Sprintf("satisfaction evaluation record: %v", err))
			}
		}
	}

	if len(failures) > 0 {
		return false, fmt.Errorf("completion incomplete: %s", strings.Join(failures, "; "))
	}

	session.Metadata.DateEnvoiCertificat = s.timestamp()
	session.Metadata.RecordDocumentSent(domain.DocCertificat)
	session.Metadata.RecordDocumentSent(domain.DocEvaluationSatisfaction)
	if err := s.store.UpdateSessionMetadata(ctx, session.ID, session.Metadata); err != nil {
		return false, err
	}
	return s.advance(ctx, session, domain.StatusTerminee)
}

// ArchiveSession archives a terminated session ninety days after it ended,
// once the archival policy finds every required document type on file. A
// blocked session reports the missing types and stays terminee.
func (s *Steps) ArchiveSession(ctx context.Context, session *domain.Session) (bool, error) {
	if session.Statut != domain.StatusTerminee {
		return false, wrongStatus(session, domain.StatusTerminee)
	}
	if s.daysSince(session.DateFin) < 90 {
		return false, nil
	}

	documents, err := s.store.ListDocuments(ctx, session.ID)
	if err != nil {
		return false, err
	}
	seen := make(map[string]bool)
	present := []string{}
	for _, doc := range documents {
		if !seen[string(doc.Type)] {
			seen[string(doc.Type)] = true
			present = append(present, string(doc.Type))
		}
	}

	missing, err := s.policy.Evaluate(ctx, map[string]interface{}{"present_types": present})
	if err != nil {
		return false, err
	}
	if len(missing) > 0 {
		return false, fmt.Errorf("cannot archive: missing document types: %s", strings.Join(missing, ", "))
	}

	return s.advance(ctx, session, domain.StatusArchivee)
}

// Cancel is the administrative override moving a session to annulee. It
// fails on sessions already archived or cancelled.
func (s *Steps) Cancel(ctx context.Context, sessionID string) error {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session %s not found", sessionID)
	}
	ok, err := s.store.TransitionSession(ctx, sessionID, session.Statut, domain.StatusAnnulee)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("session %s changed status concurrently, retry", sessionID)
	}
	return nil
}
