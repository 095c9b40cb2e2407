package services

import (
	"context"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/helpdesk-tools/incident-tracker/database"
	"github.com/helpdesk-tools/incident-tracker/models"
	"github.com/helpdesk-tools/incident-tracker/repositories"
)

// newTestServices wires the services against a throwaway sqlite database
// created through the real migration runner.
func newTestServices(t *testing.T) (*Services, *repositories.Repositories) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repos := repositories.NewRepositories(db)
	return NewServices(repos, bcrypt.MinCost), repos
}

// seedUser inserts a user with a hashed password directly via the repository
func seedUser(t *testing.T, repos *repositories.Repositories, name, email string, role models.Role) *models.User {
	t.Helper()

	user, err := models.NewUser(name, email, role)
	if err != nil {
		t.Fatalf("Failed to build user: %v", err)
	}
	if err := user.SetPassword("pw123", bcrypt.MinCost); err != nil {
		t.Fatalf("Failed to set password: %v", err)
	}
	if err := repos.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}
