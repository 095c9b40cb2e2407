package models

import (
	"strings"
	"time"
)

// Default values applied when the incident form leaves them blank.
const (
	DefaultPriority = "Low"
	DefaultStatus   = "Open"
)

// Incident represents a reported problem tied to a client and an SLA.
type Incident struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Priority    string    `json:"priority" db:"priority"`
	Status      string    `json:"status" db:"status"`
	ClientID    int       `json:"client_id" db:"client_id"`
	SLAID       int       `json:"sla_id" db:"sla_id"`
	CreatedBy   int       `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Display-only fields resolved by list queries. Empty when the
	// referenced record no longer exists.
	ClientName string `json:"client_name,omitempty" db:"-"`
	SLAName    string `json:"sla_name,omitempty" db:"-"`
	Creator    string `json:"creator,omitempty" db:"-"`
}

// IncidentForm represents form data for creating/updating incidents.
// ClientID and SLAID arrive as raw strings and are coerced with ToInt;
// a zero id counts as missing.
type IncidentForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	ClientID    string `json:"client_id"`
	SLAID       string `json:"sla_id"`
}

// Validate validates the incident form data.
func (f *IncidentForm) Validate() []string {
	var errors []string

	if strings.TrimSpace(f.Title) == "" {
		errors = append(errors, "Title is required")
	}
	if ToInt(f.ClientID) == 0 {
		errors = append(errors, "Client is required")
	}
	if ToInt(f.SLAID) == 0 {
		errors = append(errors, "SLA is required")
	}

	return errors
}

// PriorityOrDefault returns the form priority with the default applied.
func (f *IncidentForm) PriorityOrDefault() string {
	if p := strings.TrimSpace(f.Priority); p != "" {
		return p
	}
	return DefaultPriority
}

// StatusOrDefault returns the form status with the default applied.
func (f *IncidentForm) StatusOrDefault() string {
	if s := strings.TrimSpace(f.Status); s != "" {
		return s
	}
	return DefaultStatus
}
