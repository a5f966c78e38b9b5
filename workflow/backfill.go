package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/automate-formation/orchestrator/domain"
)

// perParticipantTypes are the catalog entries generated once per trainee
// rather than once per session.
var perParticipantTypes = map[domain.DocumentType]bool{
	domain.DocConvocation:            true,
	domain.DocCertificat:             true,
	domain.DocQuestionnairePrealable: true,
	domain.DocEvaluationAChaud:       true,
	domain.DocEvaluationAFroid:       true,
	domain.DocGrilleCompetences:      true,
}

// GenerateMissingDocuments regenerates every document type the archival
// policy still requires for a session, without sending anything. It is the
// remediation path for sessions blocked from archiving.
func (s *Steps) GenerateMissingDocuments(ctx context.Context, sessionID string) ([]domain.DocumentType, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	sc, err := s.loadContext(ctx, session)
	if err != nil {
		return nil, err
	}

	documents, err := s.store.ListDocuments(ctx, sessionID)
	if err != nil {
		return nil, err
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
		return nil, err
	}
	if len(missing) == 0 {
		return nil, nil
	}

	var participants []domain.Participant
	var generated []domain.DocumentType
	var failures []string
	for _, name := range missing {
		docType := domain.DocumentType(name)
		if !perParticipantTypes[docType] {
			if _, _, err := s.generateDocument(ctx, sc, nil, docType); err != nil {
				failures = append(failures, err.Error())
				continue
			}
			generated = append(generated, docType)
			continue
		}

		if participants == nil {
			participants, err = s.store.ListParticipants(ctx, sessionID)
			if err != nil {
				return generated, err
			}
		}
		if len(participants) == 0 {
			failures = append(failures, fmt.Sprintf("%s needs participants but none are declared", docType))
			continue
		}
		ok := true
		for i := range participants {
			if _, _, err := s.generateDocument(ctx, sc, &participants[i], docType); err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", docType, err))
				ok = false
				break
			}
		}
		if ok {
			generated = append(generated, docType)
		}
	}

	if len(failures) > 0 {
		return generated, fmt.Errorf("backfill incomplete: %s", strings.Join(failures, "; "))
	}
	return generated, nil
}
