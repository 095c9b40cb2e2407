package controllers

import (
	"errors"
	"html/template"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/helpdesk-tools/incident-tracker/repositories"
	"github.com/helpdesk-tools/incident-tracker/services"
)

// renderTemplate creates a template set and renders it with the provided data
func renderTemplate(w http.ResponseWriter, templateName string, pageTemplate string, data interface{}) error {
	return renderTemplateWithStatus(w, http.StatusOK, templateName, pageTemplate, data)
}

// renderTemplateWithStatus creates a template set and renders it with the provided data and status code
func renderTemplateWithStatus(w http.ResponseWriter, statusCode int, templateName string, pageTemplate string, data interface{}) error {
	tmpl := template.New(templateName)

	// Parse layout and page template
	_, err := tmpl.ParseFiles("templates/layout.html", pageTemplate)
	if err != nil {
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}

	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	return nil
}

// setFlash stores a one-shot message shown on the next rendered page
func setFlash(r *http.Request, message string) {
	sess := session.GetSession(r)
	if sess != nil {
		sess.Set("flash", message)
	}
}

// popFlash returns and clears the pending flash message, if any
func popFlash(r *http.Request) string {
	sess := session.GetSession(r)
	if sess == nil {
		return ""
	}
	if msg, ok := sess.Get("flash").(string); ok {
		sess.Delete("flash")
		return msg
	}
	return ""
}

// handleServiceError maps non-validation service errors onto HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, services.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Controllers holds all controller instances
type Controllers struct {
	Auth      *AuthController
	Dashboard *DashboardController
	Clients   *ClientController
	SLAs      *SLAController
	Incidents *IncidentController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Auth:      NewAuthController(services),
		Dashboard: NewDashboardController(services),
		Clients:   NewClientController(services),
		SLAs:      NewSLAController(services),
		Incidents: NewIncidentController(services),
	}
}
