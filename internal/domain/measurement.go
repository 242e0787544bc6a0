package domain

import "time"

// Measurement is one timed trial: an operator timing a target (work element)
// once. TimeMs is the stopped duration in milliseconds.
type Measurement struct {
	ID         string    `json:"id"`
	StudyID    string    `json:"studyId"`
	Operator   string    `json:"operator"`
	Target     string    `json:"target"`
	TimeMs     float64   `json:"timeMs"`
	RecordedAt time.Time `json:"recordedAt"`
}
