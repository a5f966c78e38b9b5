package schedule

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Daemon runs the trigger table periodically, one cron entry per trigger so
// a slow trigger does not delay the others.
type Daemon struct {
	cron *cron.Cron
}

// NewDaemon registers every trigger of the scheduler on the given cron
// expression.
func NewDaemon(scheduler *Scheduler, spec string) (*Daemon, error) {
	c := cron.New()
	for _, trigger := range scheduler.Triggers() {
		trigger := trigger
		_, err := c.AddFunc(spec, func() {
			result, err := scheduler.RunTrigger(context.Background(), trigger)
			if err != nil {
				log.Printf("ERROR: trigger %s: %v", trigger.Name, err)
				return
			}
			log.Printf("trigger %s: %s", trigger.Name, result)
		})
		if err != nil {
			return nil, fmt.Errorf("register trigger %s: %w", trigger.Name, err)
		}
	}
	return &Daemon{cron: c}, nil
}

// Start launches the cron loop in the background.
func (d *Daemon) Start() {
	d.cron.Start()
}

// Stop halts scheduling and returns a context closed when running jobs
// finish.
func (d *Daemon) Stop() context.Context {
	return d.cron.Stop()
}
