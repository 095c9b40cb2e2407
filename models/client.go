package models

import "strings"

// Client represents a customer organization incidents are reported against.
type Client struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Sector       string `json:"sector" db:"sector"`
	ContactEmail string `json:"contact_email" db:"contact_email"`
}

// ClientForm represents form data for creating/updating clients.
type ClientForm struct {
	Name         string `json:"name"`
	Sector       string `json:"sector"`
	ContactEmail string `json:"contact_email"`
}

// Validate validates the client form data.
func (f *ClientForm) Validate() []string {
	var errors []string

	if strings.TrimSpace(f.Name) == "" {
		errors = append(errors, "Name is required")
	}

	return errors
}
