package controllers

import (
	"errors"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/helpdesk-tools/incident-tracker/models"
	"github.com/helpdesk-tools/incident-tracker/services"
	"github.com/helpdesk-tools/incident-tracker/userctx"
)

// AuthController handles registration, login and logout
type AuthController struct {
	services *services.Services
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services) *AuthController {
	return &AuthController{
		services: services,
	}
}

type authPageData struct {
	Title       string
	CurrentPage string
	Error       string
	Success     string
	User        *models.User
	Form        *models.RegisterForm
	Next        string
}

// ShowRegister handles GET /auth/register
func (c *AuthController) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if c.redirectIfAuthenticated(w, r) {
		return
	}

	renderTemplate(w, "register", "templates/auth/register.html", authPageData{
		Title:       "Register",
		CurrentPage: "register",
		Form:        &models.RegisterForm{},
	})
}

// Register handles POST /auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if c.redirectIfAuthenticated(w, r) {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.RegisterForm{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	_, err := c.services.Auth.Register(r.Context(), form)
	if err != nil {
		message := "Registration failed"
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			message = verr.Error()
		case errors.Is(err, services.ErrEmailTaken):
			message = "Email is already registered."
		default:
			handleServiceError(w, err)
			return
		}

		renderTemplateWithStatus(w, http.StatusBadRequest, "register_error", "templates/auth/register.html", authPageData{
			Title:       "Register",
			CurrentPage: "register",
			Error:       message,
			Form:        form,
		})
		return
	}

	setFlash(r, "Account created. Please log in.")
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

// ShowLogin handles GET /auth/login
func (c *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if c.redirectIfAuthenticated(w, r) {
		return
	}

	renderTemplate(w, "login", "templates/auth/login.html", authPageData{
		Title:       "Login",
		CurrentPage: "login",
		Success:     popFlash(r),
		Form:        &models.RegisterForm{},
		Next:        r.URL.Query().Get("next"),
	})
}

// Login handles POST /auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if c.redirectIfAuthenticated(w, r) {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.LoginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	user, err := c.services.Auth.Login(r.Context(), form)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			renderTemplateWithStatus(w, http.StatusUnauthorized, "login_error", "templates/auth/login.html", authPageData{
				Title:       "Login",
				CurrentPage: "login",
				Error:       "Invalid email or password.",
				Form:        &models.RegisterForm{Email: form.Email},
				Next:        r.FormValue("next"),
			})
			return
		}
		handleServiceError(w, err)
		return
	}

	sess := session.GetSession(r)
	sess.Set("user_id", user.ID)

	// Prefer an explicit ?next= target, then the destination stored when
	// an unauthenticated request was redirected here.
	next := r.FormValue("next")
	if next == "" {
		if stored, ok := sess.Get("redirect_after_login").(string); ok && stored != "" {
			next = stored
		}
	}
	sess.Delete("redirect_after_login")
	if next == "" {
		next = "/"
	}

	setFlash(r, "Welcome back, "+user.Name)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout handles GET /auth/logout (runs behind RequireAuth)
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	user := userctx.GetUser(r.Context())

	sess := session.GetSession(r)
	sess.Delete("user_id")

	if user != nil {
		setFlash(r, "Logged out "+user.Name+".")
	}
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

// redirectIfAuthenticated sends already signed-in users to the landing page
func (c *AuthController) redirectIfAuthenticated(w http.ResponseWriter, r *http.Request) bool {
	sess := session.GetSession(r)
	if sess == nil {
		return false
	}
	if userID, ok := sess.Get("user_id").(int); ok && userID != 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return true
	}
	return false
}
