package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/incident-tracker/config"
	"github.com/helpdesk-tools/incident-tracker/database"
	"github.com/helpdesk-tools/incident-tracker/repositories"
	"github.com/helpdesk-tools/incident-tracker/services"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin EMAIL PASSWORD",
	Short: "Create an admin user directly against the store",
	Args:  cobra.ExactArgs(2),
	RunE:  runCreateAdmin,
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	email, password := args[0], args[1]

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repos := repositories.NewRepositories(db)
	srvs := services.NewServices(repos, cfg.BcryptCost)

	user, err := srvs.Auth.CreateAdmin(cmd.Context(), email, password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			fmt.Println("User already exists")
			return nil
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Printf("Admin created: %s\n", user.Email)
	return nil
}
