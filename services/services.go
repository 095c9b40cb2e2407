package services

import (
	"github.com/helpdesk-tools/incident-tracker/repositories"
)

// Services holds all service instances
type Services struct {
	Auth      AuthService
	Clients   ClientService
	SLAs      SLAService
	Incidents IncidentService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, bcryptCost int) *Services {
	return &Services{
		Auth:      NewAuthService(repos.Users, bcryptCost),
		Clients:   NewClientService(repos.Clients),
		SLAs:      NewSLAService(repos.SLAs),
		Incidents: NewIncidentService(repos.Incidents),
	}
}
