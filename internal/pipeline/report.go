package pipeline

import "fmt"

// NoteError records a per-note failure. Failures never abort the run;
// the remaining notes are still processed.
type NoteError struct {
	NoteID  int64  `json:"note_id" yaml:"note_id"`
	Stage   string `json:"stage" yaml:"stage"` // "prompt", "inference", "extract", "save"
	Message string `json:"message" yaml:"message"`
}

// Report summarizes one pipeline run.
type Report struct {
	RunID    string `json:"run_id" yaml:"run_id"`
	Task     string `json:"task" yaml:"task"`
	Selected int    `json:"selected" yaml:"selected"`
	Eligible int    `json:"eligible" yaml:"eligible"`
	Skipped  int    `json:"skipped" yaml:"skipped"`
	Updated  int    `json:"updated" yaml:"updated"`
	NoResult int    `json:"no_result" yaml:"no_result"`
	Failed   int    `json:"failed" yaml:"failed"`

	Errors []NoteError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Summary returns a one-line human-readable outcome.
func (r *Report) Summary() string {
	if r.Selected == 0 {
		return "No notes selected. Select notes in the Anki browser first."
	}
	if r.Eligible == 0 {
		return fmt.Sprintf("Nothing to do: none of the %d selected notes need %s.", r.Selected, r.Task)
	}
	s := fmt.Sprintf("Generated %s for %d of %d eligible notes.", r.Task, r.Updated, r.Eligible)
	if r.Failed > 0 {
		s += fmt.Sprintf(" Encountered %d errors.", r.Failed)
	}
	return s
}
