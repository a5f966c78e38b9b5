// Package schedule enumerates due sessions and dispatches them to the
// matching workflow step.
package schedule

import (
	"context"
	"log"

	"github.com/automate-formation/orchestrator/domain"
	"github.com/automate-formation/orchestrator/store"
	"github.com/automate-formation/orchestrator/workflow"
)

// StepFunc is one workflow step applied to a candidate session. acted=false
// with a nil error means the session was examined but not due.
type StepFunc func(ctx context.Context, session *domain.Session) (bool, error)

// Trigger pairs a status filter with the step run on every session holding
// that status. Date gating and idempotence flags are checked inside the
// step, not here: the store only filters by status.
type Trigger struct {
	Name   string
	Status domain.SessionStatus
	Run    StepFunc
}

// Triggers is the full trigger table in lifecycle order. Triggers sharing a
// status are independent: a session due for several of them in the same run
// gets all of them.
func Triggers(steps *workflow.Steps) []Trigger {
	return []Trigger{
		{Name: "process_requests", Status: domain.StatusDemande, Run: steps.ProcessRequest},
		// Questionnaires run before convocations: both are due at J-7 and
		// the convocation step moves the session out of confirmee.
		{Name: "pre_questionnaires", Status: domain.StatusConfirmee, Run: steps.SendPreQuestionnaires},
		{Name: "send_convocations", Status: domain.StatusConfirmee, Run: steps.SendConvocations},
		{Name: "reminder_2_days", Status: domain.StatusConvoquee, Run: steps.SendReminder},
		{Name: "readiness_check", Status: domain.StatusConvoquee, Run: steps.CheckReadiness},
		{Name: "hot_evaluations", Status: domain.StatusConvoquee, Run: steps.SendHotEvaluations},
		{Name: "trainer_review", Status: domain.StatusConvoquee, Run: steps.SendTrainerReview},
		{Name: "complete_sessions", Status: domain.StatusConvoquee, Run: steps.CompleteSession},
		{Name: "cold_evaluations", Status: domain.StatusTerminee, Run: steps.SendColdEvaluations},
		{Name: "archive_sessions", Status: domain.StatusTerminee, Run: steps.ArchiveSession},
	}
}

// Scheduler runs triggers over the sessions currently in their status.
type Scheduler struct {
	store    store.Store
	triggers []Trigger
}

// NewScheduler creates a scheduler over the given trigger table.
func NewScheduler(st store.Store, triggers []Trigger) *Scheduler {
	return &Scheduler{store: st, triggers: triggers}
}

// Triggers returns the trigger table.
func (s *Scheduler) Triggers() []Trigger {
	return s.triggers
}

// RunTrigger applies one trigger to every candidate session. A failing
// session is counted and logged, never lets it block its siblings. The
// returned error is reserved for enumeration failure.
func (s *Scheduler) RunTrigger(ctx context.Context, trigger Trigger) (domain.TaskResult, error) {
	var result domain.TaskResult

	sessions, err := s.store.FindSessions(ctx, trigger.Status)
	if err != nil {
		return result, err
	}

	for i := range sessions {
		session := &sessions[i]
		acted, err := trigger.Run(ctx, session)
		if err != nil {
			log.Printf("ERROR: trigger %s: session %s: %v", trigger.Name, session.ID, err)
		}
		result.Record(session.ID, acted, err)
	}
	return result, nil
}

// RunAll executes every trigger in table order and merges the outcomes. An
// enumeration failure aborts only the failing trigger.
func (s *Scheduler) RunAll(ctx context.Context) domain.TaskResult {
	var total domain.TaskResult
	for _, trigger := range s.triggers {
		result, err := s.RunTrigger(ctx, trigger)
		if err != nil {
			log.Printf("ERROR: trigger %s: %v", trigger.Name, err)
			total.Total++
			total.Failed++
			total.Errors = append(total.Errors, "trigger "+trigger.Name+": "+err.Error())
			continue
		}
		total.Merge(result)
	}
	return total
}
