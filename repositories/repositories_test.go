package repositories

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/helpdesk-tools/incident-tracker/database"
	"github.com/helpdesk-tools/incident-tracker/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	// Initialize test database using the actual migration system
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed",
		Role:         models.RoleRegular,
	}

	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if user.ID == 0 {
		t.Error("Expected user ID to be set after creation")
	}

	retrieved, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Failed to get user by email: %v", err)
	}
	if retrieved.Name != "Alice" || retrieved.Role != models.RoleRegular {
		t.Errorf("Unexpected user: %+v", retrieved)
	}

	byID, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("Failed to get user by ID: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Errorf("Expected email alice@example.com, got %s", byID.Email)
	}

	// Unknown lookups return ErrNotFound
	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown email, got %v", err)
	}
	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown ID, got %v", err)
	}

	// The email column is unique
	dup := &models.User{Name: "Other", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleRegular}
	if err := repo.Create(ctx, dup); err == nil {
		t.Error("Expected error when creating user with duplicate email")
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}
}

func TestClientRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	// Insert out of alphabetical order to check list ordering
	for _, name := range []string{"Zeta Ltd", "Acme Corp", "Mango Inc"} {
		if err := repo.Create(ctx, &models.Client{Name: name, Sector: "Tech"}); err != nil {
			t.Fatalf("Failed to create client %s: %v", name, err)
		}
	}

	clients, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("Failed to get all clients: %v", err)
	}
	if len(clients) != 3 {
		t.Fatalf("Expected 3 clients, got %d", len(clients))
	}
	if clients[0].Name != "Acme Corp" || clients[1].Name != "Mango Inc" || clients[2].Name != "Zeta Ltd" {
		t.Errorf("Expected clients ordered by name, got %v", clients)
	}

	client := clients[0]
	client.Sector = "Retail"
	client.ContactEmail = "ops@acme.example"
	if err := repo.Update(ctx, &client); err != nil {
		t.Fatalf("Failed to update client: %v", err)
	}

	updated, err := repo.GetByID(ctx, client.ID)
	if err != nil {
		t.Fatalf("Failed to get updated client: %v", err)
	}
	if updated.Sector != "Retail" || updated.ContactEmail != "ops@acme.example" {
		t.Errorf("Unexpected client after update: %+v", updated)
	}

	if err := repo.Delete(ctx, client.ID); err != nil {
		t.Fatalf("Failed to delete client: %v", err)
	}
	if _, err := repo.GetByID(ctx, client.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, client.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for double delete, got %v", err)
	}
}

func TestSLARepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSLARepository(db)
	ctx := context.Background()

	sla := &models.SLA{Name: "Gold", TargetResponseMins: 30, TargetResolveMins: 240}
	if err := repo.Create(ctx, sla); err != nil {
		t.Fatalf("Failed to create SLA: %v", err)
	}
	if err := repo.Create(ctx, &models.SLA{Name: "Bronze", TargetResponseMins: 480}); err != nil {
		t.Fatalf("Failed to create SLA: %v", err)
	}

	slas, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("Failed to get all SLAs: %v", err)
	}
	if len(slas) != 2 || slas[0].Name != "Bronze" || slas[1].Name != "Gold" {
		t.Errorf("Expected SLAs ordered by name, got %v", slas)
	}

	sla.TargetResolveMins = 120
	if err := repo.Update(ctx, sla); err != nil {
		t.Fatalf("Failed to update SLA: %v", err)
	}
	updated, err := repo.GetByID(ctx, sla.ID)
	if err != nil {
		t.Fatalf("Failed to get updated SLA: %v", err)
	}
	if updated.TargetResolveMins != 120 {
		t.Errorf("Expected target resolve 120, got %d", updated.TargetResolveMins)
	}

	if err := repo.Delete(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown SLA, got %v", err)
	}
}

func TestIncidentRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	clients := NewClientRepository(db)
	slas := NewSLARepository(db)
	repo := NewIncidentRepository(db)

	alice := &models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleRegular}
	bob := &models.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "x", Role: models.RoleRegular}
	for _, u := range []*models.User{alice, bob} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
	}

	client := &models.Client{Name: "Acme Corp"}
	if err := clients.Create(ctx, client); err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	sla := &models.SLA{Name: "Gold"}
	if err := slas.Create(ctx, sla); err != nil {
		t.Fatalf("Failed to create SLA: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	mkIncident := func(title string, createdBy int, createdAt time.Time) *models.Incident {
		inc := &models.Incident{
			Title:     title,
			Priority:  "Low",
			Status:    "Open",
			ClientID:  client.ID,
			SLAID:     sla.ID,
			CreatedBy: createdBy,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		if err := repo.Create(ctx, inc); err != nil {
			t.Fatalf("Failed to create incident %s: %v", title, err)
		}
		return inc
	}

	oldest := mkIncident("Oldest", alice.ID, base)
	mkIncident("Middle", bob.ID, base.Add(10*time.Minute))
	newest := mkIncident("Newest", alice.ID, base.Add(20*time.Minute))

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("Failed to get all incidents: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 incidents, got %d", len(all))
	}
	if all[0].Title != "Newest" || all[2].Title != "Oldest" {
		t.Errorf("Expected incidents newest first, got %v", all)
	}
	if all[0].ClientName != "Acme Corp" || all[0].SLAName != "Gold" || all[0].Creator != "Alice" {
		t.Errorf("Expected joined display names, got %+v", all[0])
	}

	own, err := repo.GetByCreator(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Failed to get incidents by creator: %v", err)
	}
	if len(own) != 2 || own[0].Title != "Newest" || own[1].Title != "Oldest" {
		t.Errorf("Expected Alice's incidents newest first, got %v", own)
	}

	// Update overwrites fields and refreshes updated_at
	newest.Status = "Resolved"
	before := newest.UpdatedAt
	if err := repo.Update(ctx, newest); err != nil {
		t.Fatalf("Failed to update incident: %v", err)
	}
	updated, err := repo.GetByID(ctx, newest.ID)
	if err != nil {
		t.Fatalf("Failed to get updated incident: %v", err)
	}
	if updated.Status != "Resolved" {
		t.Errorf("Expected status Resolved, got %s", updated.Status)
	}
	if !updated.UpdatedAt.After(before) {
		t.Error("Expected updated_at to be refreshed")
	}

	// A deleted client leaves the incident with a dangling reference
	if err := clients.Delete(ctx, client.ID); err != nil {
		t.Fatalf("Failed to delete client: %v", err)
	}
	dangling, err := repo.GetByID(ctx, oldest.ID)
	if err != nil {
		t.Fatalf("Failed to get incident after client delete: %v", err)
	}
	if dangling.ClientName != "" {
		t.Errorf("Expected empty client name for dangling reference, got %q", dangling.ClientName)
	}
	if dangling.ClientID != client.ID {
		t.Errorf("Expected client_id to be preserved, got %d", dangling.ClientID)
	}

	if err := repo.Delete(ctx, oldest.ID); err != nil {
		t.Fatalf("Failed to delete incident: %v", err)
	}
	if _, err := repo.GetByID(ctx, oldest.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	count, err := repo.CountByCreator(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Failed to count by creator: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 incident for Alice after delete, got %d", count)
	}
}
