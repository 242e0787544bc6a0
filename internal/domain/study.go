package domain

import (
	"fmt"
	"strings"
	"time"
)

// Study is a time-study session grouping the measurements of one work process.
type Study struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks the fields required before a study is persisted.
func (s *Study) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("study name is required")
	}
	if len(s.Name) > 120 {
		return fmt.Errorf("study name %q is longer than 120 characters", s.Name)
	}
	return nil
}

// DisplayID returns the first 8 characters of the ID.
func (s *Study) DisplayID() string {
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}
