package repositories

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// Repositories struct holds all repository interfaces
type Repositories struct {
	Users     UserRepository
	Clients   ClientRepository
	SLAs      SLARepository
	Incidents IncidentRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(db),
		Clients:   NewClientRepository(db),
		SLAs:      NewSLARepository(db),
		Incidents: NewIncidentRepository(db),
	}
}
