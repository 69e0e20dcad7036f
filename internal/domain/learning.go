package domain

import "time"

// Outcome records whether an executed command succeeded.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// LearningRecord is one append-only feedback entry. Records bias future intent
// disambiguation and are pruned by an age-based retention sweep.
type LearningRecord struct {
	IntentType IntentType `json:"intent_type"`
	Entity     string     `json:"entity"`
	Timestamp  time.Time  `json:"timestamp"`
	Outcome    Outcome    `json:"outcome"`
	SessionID  string     `json:"session_id"`
}

// BiasStats aggregates historical outcomes for one (intent, entity) pair.
type BiasStats struct {
	Successes int
	Failures  int
}

// Total returns the number of recorded outcomes.
func (b BiasStats) Total() int {
	return b.Successes + b.Failures
}

// SuccessRate returns the fraction of successful outcomes, or 0 when empty.
func (b BiasStats) SuccessRate() float64 {
	total := b.Total()
	if total == 0 {
		return 0
	}
	return float64(b.Successes) / float64(total)
}
