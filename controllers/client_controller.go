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

// ClientController handles client management requests
type ClientController struct {
	services *services.Services
}

// NewClientController creates a new client controller
func NewClientController(services *services.Services) *ClientController {
	return &ClientController{
		services: services,
	}
}

type clientListData struct {
	Title       string
	CurrentPage string
	Error       string
	Success     string
	User        *models.User
	Clients     []models.Client
}

type clientFormData struct {
	Title       string
	CurrentPage string
	Error       string
	Success     string
	User        *models.User
	Form        *models.ClientForm
	Action      string
}

// Index handles GET /clients/
func (c *ClientController) Index(w http.ResponseWriter, r *http.Request) {
	clients, err := c.services.Clients.GetAll(r.Context())
	if err != nil {
		http.Error(w, "Failed to load clients: "+err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "clients", "templates/clients/list.html", clientListData{
		Title:       "Clients",
		CurrentPage: "clients",
		Success:     popFlash(r),
		User:        userctx.GetUser(r.Context()),
		Clients:     clients,
	})
}

// New handles GET /clients/create
func (c *ClientController) New(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "client_form", "templates/clients/form.html", clientFormData{
		Title:       "New Client",
		CurrentPage: "clients",
		User:        userctx.GetUser(r.Context()),
		Form:        &models.ClientForm{},
		Action:      "/clients/create",
	})
}

// Create handles POST /clients/create
func (c *ClientController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.ClientForm{
		Name:         r.FormValue("name"),
		Sector:       r.FormValue("sector"),
		ContactEmail: r.FormValue("contact_email"),
	}

	if _, err := c.services.Clients.Create(r.Context(), form); err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			renderTemplateWithStatus(w, http.StatusBadRequest, "client_form_error", "templates/clients/form.html", clientFormData{
				Title:       "New Client",
				CurrentPage: "clients",
				Error:       verr.Error(),
				User:        userctx.GetUser(r.Context()),
				Form:        form,
				Action:      "/clients/create",
			})
			return
		}
		handleServiceError(w, err)
		return
	}

	setFlash(r, "Client created.")
	http.Redirect(w, r, "/clients/", http.StatusSeeOther)
}

// Edit handles GET /clients/{id}/edit
func (c *ClientController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid client ID", http.StatusBadRequest)
		return
	}

	client, err := c.services.Clients.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	form := &models.ClientForm{
		Name:         client.Name,
		Sector:       client.Sector,
		ContactEmail: client.ContactEmail,
	}

	renderTemplate(w, "client_edit", "templates/clients/form.html", clientFormData{
		Title:       "Edit Client",
		CurrentPage: "clients",
		User:        userctx.GetUser(r.Context()),
		Form:        form,
		Action:      fmt.Sprintf("/clients/%d/edit", client.ID),
	})
}

// Update handles POST /clients/{id}/edit
func (c *ClientController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid client ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.ClientForm{
		Name:         r.FormValue("name"),
		Sector:       r.FormValue("sector"),
		ContactEmail: r.FormValue("contact_email"),
	}

	// Edit overwrites all editable fields unconditionally; only create
	// validates the name.
	if _, err := c.services.Clients.Update(r.Context(), id, form); err != nil {
		handleServiceError(w, err)
		return
	}

	setFlash(r, "Client updated.")
	http.Redirect(w, r, "/clients/", http.StatusSeeOther)
}

// Delete handles POST /clients/{id}/delete
func (c *ClientController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid client ID", http.StatusBadRequest)
		return
	}

	if err := c.services.Clients.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	setFlash(r, "Client deleted.")
	http.Redirect(w, r, "/clients/", http.StatusSeeOther)
}
