package domain

import "fmt"

// TaskResult summarizes a batch of per-session step executions. A skipped
// session is one that was examined but not due (date gate not reached, or
// its idempotence flag is already set).
type TaskResult struct {
	Total   int      `json:"total"`
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// Record folds one session outcome into the result.
func (r *TaskResult) Record(sessionID string, acted bool, err error) {
	r.Total++
	switch {
	case err != nil:
		r.Failed++
		r.Errors = append(r.Errors, fmt.Sprintf("session %s: %v", sessionID, err))
	case acted:
		r.Success++
	default:
		r.Skipped++
	}
}

// Merge adds another result into this one.
func (r *TaskResult) Merge(other TaskResult) {
	r.Total += other.Total
	r.Success += other.Success
	r.Failed += other.Failed
	r.Skipped += other.Skipped
	r.Errors = append(r.Errors, other.Errors...)
}

func (r TaskResult) String() string {
	return fmt.Sprintf("total=%d success=%d failed=%d skipped=%d", r.Total, r.Success, r.Failed, r.Skipped)
}
