package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/helpdesk-tools/incident-tracker/models"
	"github.com/helpdesk-tools/incident-tracker/services"
	"github.com/helpdesk-tools/incident-tracker/userctx"
)

// IncidentController handles incident management requests
type IncidentController struct {
	services *services.Services
}

// NewIncidentController creates a new incident controller
func NewIncidentController(services *services.Services) *IncidentController {
	return &IncidentController{
		services: services,
	}
}

type incidentListData struct {
	Title       string
	CurrentPage string
	Error       string
	Success     string
	User        *models.User
	Incidents   []models.Incident
}

type incidentFormData struct {
	Title       string
	CurrentPage string
	Error       string
	Success     string
	User        *models.User
	Form        *models.IncidentForm
	Clients     []models.Client
	SLAs        []models.SLA
	Action      string
}

// Index handles GET /incidents/ — all incidents for admins, own for
// regular users, newest first.
func (c *IncidentController) Index(w http.ResponseWriter, r *http.Request) {
	user := userctx.GetUser(r.Context())

	incidents, err := c.services.Incidents.List(r.Context(), user)
	if err != nil {
		http.Error(w, "Failed to load incidents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "incidents", "templates/incidents/list.html", incidentListData{
		Title:       "Incidents",
		CurrentPage: "incidents",
		Success:     popFlash(r),
		User:        user,
		Incidents:   incidents,
	})
}

// New handles GET /incidents/create
func (c *IncidentController) New(w http.ResponseWriter, r *http.Request) {
	data, err := c.formData(r, "New Incident", &models.IncidentForm{}, "/incidents/create")
	if err != nil {
		http.Error(w, "Failed to load form data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "incident_form", "templates/incidents/form.html", *data)
}

// Create handles POST /incidents/create
func (c *IncidentController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	user := userctx.GetUser(r.Context())
	form := incidentFormFromRequest(r)

	if _, err := c.services.Incidents.Create(r.Context(), user, form); err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			// Re-render preserving the entered values
			data, loadErr := c.formData(r, "New Incident", form, "/incidents/create")
			if loadErr != nil {
				http.Error(w, "Failed to load form data: "+loadErr.Error(), http.StatusInternalServerError)
				return
			}
			data.Error = verr.Error()
			renderTemplateWithStatus(w, http.StatusBadRequest, "incident_form_error", "templates/incidents/form.html", *data)
			return
		}
		handleServiceError(w, err)
		return
	}

	setFlash(r, "Incident created.")
	http.Redirect(w, r, "/incidents/", http.StatusSeeOther)
}

// Edit handles GET /incidents/{id}/edit
func (c *IncidentController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid incident ID", http.StatusBadRequest)
		return
	}

	user := userctx.GetUser(r.Context())
	incident, err := c.services.Incidents.GetForEdit(r.Context(), user, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	form := &models.IncidentForm{
		Title:       incident.Title,
		Description: incident.Description,
		Priority:    incident.Priority,
		Status:      incident.Status,
		ClientID:    strconv.Itoa(incident.ClientID),
		SLAID:       strconv.Itoa(incident.SLAID),
	}

	data, err := c.formData(r, "Edit Incident", form, fmt.Sprintf("/incidents/%d/edit", incident.ID))
	if err != nil {
		http.Error(w, "Failed to load form data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "incident_edit", "templates/incidents/form.html", *data)
}

// Update handles POST /incidents/{id}/edit
func (c *IncidentController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid incident ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	user := userctx.GetUser(r.Context())
	form := incidentFormFromRequest(r)

	if _, err := c.services.Incidents.Update(r.Context(), user, id, form); err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			// Re-render with the unsaved edited values, not the stored record
			data, loadErr := c.formData(r, "Edit Incident", form, fmt.Sprintf("/incidents/%d/edit", id))
			if loadErr != nil {
				http.Error(w, "Failed to load form data: "+loadErr.Error(), http.StatusInternalServerError)
				return
			}
			data.Error = verr.Error()
			renderTemplateWithStatus(w, http.StatusBadRequest, "incident_edit_error", "templates/incidents/form.html", *data)
			return
		}
		handleServiceError(w, err)
		return
	}

	setFlash(r, "Incident updated.")
	http.Redirect(w, r, "/incidents/", http.StatusSeeOther)
}

// Delete handles POST /incidents/{id}/delete (admin only)
func (c *IncidentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid incident ID", http.StatusBadRequest)
		return
	}

	user := userctx.GetUser(r.Context())
	if err := c.services.Incidents.Delete(r.Context(), user, id); err != nil {
		handleServiceError(w, err)
		return
	}

	setFlash(r, "Incident deleted.")
	http.Redirect(w, r, "/incidents/", http.StatusSeeOther)
}

// formData assembles the incident form page data including the client and
// SLA select options, both ordered by name.
func (c *IncidentController) formData(r *http.Request, title string, form *models.IncidentForm, action string) (*incidentFormData, error) {
	clients, err := c.services.Clients.GetAll(r.Context())
	if err != nil {
		return nil, err
	}
	slas, err := c.services.SLAs.GetAll(r.Context())
	if err != nil {
		return nil, err
	}

	return &incidentFormData{
		Title:       title,
		CurrentPage: "incidents",
		User:        userctx.GetUser(r.Context()),
		Form:        form,
		Clients:     clients,
		SLAs:        slas,
		Action:      action,
	}, nil
}

// incidentFormFromRequest reads the incident fields from a parsed form
func incidentFormFromRequest(r *http.Request) *models.IncidentForm {
	return &models.IncidentForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Priority:    r.FormValue("priority"),
		Status:      r.FormValue("status"),
		ClientID:    r.FormValue("client_id"),
		SLAID:       r.FormValue("sla_id"),
	}
}
