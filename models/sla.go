package models

import (
	"strconv"
	"strings"
)

// SLA represents a service-level agreement with response/resolution targets.
type SLA struct {
	ID                 int    `json:"id" db:"id"`
	Name               string `json:"name" db:"name"`
	TargetResponseMins int    `json:"target_response_mins" db:"target_response_mins"`
	TargetResolveMins  int    `json:"target_resolve_mins" db:"target_resolve_mins"`
}

// SLAForm represents form data for creating/updating SLAs. The minute
// fields arrive as raw strings and are coerced with ToInt.
type SLAForm struct {
	Name               string `json:"name"`
	TargetResponseMins string `json:"target_response_mins"`
	TargetResolveMins  string `json:"target_resolve_mins"`
}

// Validate validates the SLA form data.
func (f *SLAForm) Validate() []string {
	var errors []string

	if strings.TrimSpace(f.Name) == "" {
		errors = append(errors, "Name is required")
	}

	return errors
}

// ToInt parses a form value as an integer, returning 0 when it is blank
// or not numeric. Matches the tracker's lenient numeric handling.
func ToInt(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}
