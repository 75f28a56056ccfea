package metrics

import "time"

// RunMetrics counts what a simulation run has shown so far.
type RunMetrics struct {
	RunID      string    `json:"run_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	DurationMs int64     `json:"duration_ms"`

	Iterations int `json:"iterations"`
	Lines      int `json:"lines"`

	Tasks    int `json:"tasks"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`

	// Attempt lines shown inside the error branch.
	RetryAttempts int `json:"retry_attempts"`
	// Errors whose final attempt left the task pending.
	Deferred int `json:"deferred"`
	// Errors whose final attempt resolved on the spot.
	Resolved int `json:"resolved"`

	Retries     int `json:"retries"`
	Recovered   int `json:"recovered"`
	FailedAgain int `json:"failed_again"`
}

func New(runID string) *RunMetrics {
	return &RunMetrics{RunID: runID, Start: time.Now()}
}

// Compute derived fields once the run is over.
func (m *RunMetrics) Finalize() {
	if m.End.IsZero() {
		m.End = time.Now()
	}
	m.DurationMs = m.End.Sub(m.Start).Milliseconds()
}
