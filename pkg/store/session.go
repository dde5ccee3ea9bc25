package store

import "sync"

// Interview session states
const (
	StateInterviewing = "INTERVIEWING"
	StateComplete     = "COMPLETE"
	StateConsumed     = "CONSUMED"
)

// InterviewSession represents one in-progress question/answer interview held
// in memory. Questions are fixed once generated; Answers grows by one per
// turn and is always index-aligned with Questions.
type InterviewSession struct {
	ID              string   `json:"id"`
	TaskDescription string   `json:"task_description"`
	State           string   `json:"state"` // "INTERVIEWING" | "COMPLETE" | "CONSUMED"
	Questions       []string `json:"questions"`
	Answers         []string `json:"answers"`
	CurrentIndex    int      `json:"current_index"`

	// Serializes turns on this session only. Distinct sessions proceed in
	// parallel.
	Mu sync.Mutex `json:"-"`
}

// Complete reports whether every question has been answered.
func (s *InterviewSession) Complete() bool {
	return s.CurrentIndex == len(s.Questions)
}
