package cmd

import (
	"fmt"
	"net/http"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helpdesk-tools/incident-tracker/config"
	"github.com/helpdesk-tools/incident-tracker/controllers"
	"github.com/helpdesk-tools/incident-tracker/database"
	authmiddleware "github.com/helpdesk-tools/incident-tracker/middleware"
	"github.com/helpdesk-tools/incident-tracker/repositories"
	"github.com/helpdesk-tools/incident-tracker/services"
)

var rootCmd = &cobra.Command{
	Use:   "incident-tracker",
	Short: "Incident tracking web app: clients, SLAs and incidents behind role-based access",
	RunE:  runServer,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(createAdminCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repos := repositories.NewRepositories(db)
	srvs := services.NewServices(repos, cfg.BcryptCost)
	ctrl := controllers.NewControllers(srvs)

	r, err := setupRouter(cfg, ctrl, srvs)
	if err != nil {
		return fmt.Errorf("failed to setup router: %w", err)
	}

	logger.Info("incident tracker starting",
		zap.String("port", cfg.Port),
		zap.String("database", cfg.DatabasePath),
	)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// setupRouter configures all routes
func setupRouter(cfg *config.Config, ctrl *controllers.Controllers, srvs *services.Services) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     cfg.SessionCookie,
		Secure:         cfg.UseHTTPS,
		Gclifetime:     cfg.SessionLifetimeSeconds,
		Maxlifetime:    cfg.SessionLifetimeSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)

	// PUBLIC ROUTES (no authentication required)
	r.Get("/", ctrl.Dashboard.Index)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "incident-tracker"}`)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Get("/register", ctrl.Auth.ShowRegister)
		r.Post("/register", ctrl.Auth.Register)
		r.Get("/login", ctrl.Auth.ShowLogin)
		r.Post("/login", ctrl.Auth.Login)
	})

	// PROTECTED ROUTES (authentication required)
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireAuth(srvs.Auth))

		r.Get("/auth/logout", ctrl.Auth.Logout)

		// Client management: anyone may list, only admins mutate
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", ctrl.Clients.Index)
			r.Group(func(r chi.Router) {
				r.Use(authmiddleware.RequireAdmin)
				r.Get("/create", ctrl.Clients.New)
				r.Post("/create", ctrl.Clients.Create)
				r.Get("/{id}/edit", ctrl.Clients.Edit)
				r.Post("/{id}/edit", ctrl.Clients.Update)
				r.Post("/{id}/delete", ctrl.Clients.Delete)
			})
		})

		// SLA management: same contract as clients
		r.Route("/slas", func(r chi.Router) {
			r.Get("/", ctrl.SLAs.Index)
			r.Group(func(r chi.Router) {
				r.Use(authmiddleware.RequireAdmin)
				r.Get("/create", ctrl.SLAs.New)
				r.Post("/create", ctrl.SLAs.Create)
				r.Get("/{id}/edit", ctrl.SLAs.Edit)
				r.Post("/{id}/edit", ctrl.SLAs.Update)
				r.Post("/{id}/delete", ctrl.SLAs.Delete)
			})
		})

		// Incident management: ownership-gated edit, admin-only delete
		r.Route("/incidents", func(r chi.Router) {
			r.Get("/", ctrl.Incidents.Index)
			r.Get("/create", ctrl.Incidents.New)
			r.Post("/create", ctrl.Incidents.Create)
			r.Get("/{id}/edit", ctrl.Incidents.Edit)
			r.Post("/{id}/edit", ctrl.Incidents.Update)
			r.With(authmiddleware.RequireAdmin).Post("/{id}/delete", ctrl.Incidents.Delete)
		})
	})

	return r, nil
}
