package controllers

import (
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/helpdesk-tools/incident-tracker/models"
	"github.com/helpdesk-tools/incident-tracker/services"
)

// DashboardController handles the landing page
type DashboardController struct {
	services *services.Services
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(services *services.Services) *DashboardController {
	return &DashboardController{
		services: services,
	}
}

type dashboardData struct {
	Title         string
	CurrentPage   string
	Error         string
	Success       string
	User          *models.User
	IncidentCount int
	ClientCount   int
	SLACount      int
}

// Index handles GET / — a welcome page for visitors, record counts and
// shortcuts for signed-in users.
func (c *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{
		Title:       "Incident Tracker",
		CurrentPage: "dashboard",
		Success:     popFlash(r),
	}

	sess := session.GetSession(r)
	if userID, ok := sess.Get("user_id").(int); ok && userID != 0 {
		user, err := c.services.Auth.GetUser(r.Context(), userID)
		if err == nil {
			data.User = user

			if n, err := c.services.Incidents.CountVisible(r.Context(), user); err == nil {
				data.IncidentCount = n
			}
			if n, err := c.services.Clients.Count(r.Context()); err == nil {
				data.ClientCount = n
			}
			if n, err := c.services.SLAs.Count(r.Context()); err == nil {
				data.SLACount = n
			}
		}
	}

	renderTemplate(w, "dashboard", "templates/dashboard.html", data)
}
