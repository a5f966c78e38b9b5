// Package orchestrator groups the trigger table into operational phases and
// runs them as batches.
package orchestrator

import (
	"context"
	"fmt"
	"log"

	"github.com/automate-formation/orchestrator/domain"
	"github.com/automate-formation/orchestrator/schedule"
)

// Phase is an operator-facing group of triggers.
type Phase string

const (
	PhaseAll         Phase = "all"
	PhaseNewRequests Phase = "new_requests"
	PhaseScheduled   Phase = "scheduled"
	PhaseCompleted   Phase = "completed"
	PhaseUpcoming    Phase = "upcoming"
)

// phaseOrder is the fixed execution order of RunAll, matching the forward
// progression of the lifecycle.
var phaseOrder = []Phase{PhaseNewRequests, PhaseScheduled, PhaseCompleted, PhaseUpcoming}

// phaseOf maps each trigger to its phase.
var phaseOf = map[string]Phase{
	"process_requests":   PhaseNewRequests,
	"send_convocations":  PhaseScheduled,
	"pre_questionnaires": PhaseScheduled,
	"hot_evaluations":    PhaseCompleted,
	"trainer_review":     PhaseCompleted,
	"complete_sessions":  PhaseCompleted,
	"cold_evaluations":   PhaseCompleted,
	"archive_sessions":   PhaseCompleted,
	"reminder_2_days":    PhaseUpcoming,
	"readiness_check":    PhaseUpcoming,
}

// Orchestrator sequences trigger execution per phase.
type Orchestrator struct {
	scheduler *schedule.Scheduler
	phases    map[Phase][]schedule.Trigger
}

// New partitions the scheduler's trigger table into phases.
func New(scheduler *schedule.Scheduler) *Orchestrator {
	phases := make(map[Phase][]schedule.Trigger)
	for _, trigger := range scheduler.Triggers() {
		phase, ok := phaseOf[trigger.Name]
		if !ok {
			log.Printf("WARN: trigger %s has no phase, skipping", trigger.Name)
			continue
		}
		phases[phase] = append(phases[phase], trigger)
	}
	return &Orchestrator{scheduler: scheduler, phases: phases}
}

// RunPhase executes one named phase, or everything for PhaseAll.
func (o *Orchestrator) RunPhase(ctx context.Context, phase Phase) (domain.TaskResult, error) {
	if phase == PhaseAll {
		return o.RunAllTasks(ctx), nil
	}
	triggers, ok := o.phases[phase]
	if !ok {
		return domain.TaskResult{}, fmt.Errorf("unknown phase %q", phase)
	}
	return o.runTriggers(ctx, phase, triggers), nil
}

// RunAllTasks executes every phase in lifecycle order. A failing phase
// never prevents later phases from running.
func (o *Orchestrator) RunAllTasks(ctx context.Context) domain.TaskResult {
	var total domain.TaskResult
	for _, phase := range phaseOrder {
		result := o.runTriggers(ctx, phase, o.phases[phase])
		log.Printf("phase %s: %s", phase, result)
		total.Merge(result)
	}
	return total
}

func (o *Orchestrator) runTriggers(ctx context.Context, phase Phase, triggers []schedule.Trigger) domain.TaskResult {
	var result domain.TaskResult
	for _, trigger := range triggers {
		r, err := o.scheduler.RunTrigger(ctx, trigger)
		if err != nil {
			log.Printf("ERROR: phase %s: trigger %s: %v", phase, trigger.Name, err)
			result.Total++
			result.Failed++
			result.Errors = append(result.Errors, "trigger "+trigger.Name+": "+err.Error())
			continue
		}
		result.Merge(r)
	}
	return result
}

// ParsePhase validates an operator-supplied phase selector.
func ParsePhase(s string) (Phase, error) {
	switch Phase(s) {
	case PhaseAll, PhaseNewRequests, PhaseScheduled, PhaseCompleted, PhaseUpcoming:
		return Phase(s), nil
	}
	return "", fmt.Errorf("unknown phase %q (expected all, new_requests, scheduled, completed or upcoming)", s)
}
