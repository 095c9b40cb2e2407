package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/helpdesk-tools/incident-tracker/models"
)

// ClientRepository interface defines client database operations
type ClientRepository interface {
	GetAll(ctx context.Context) ([]models.Client, error)
	GetByID(ctx context.Context, id int) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// clientRepository implements ClientRepository interface
type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

// GetAll retrieves all clients ordered by name
func (r *clientRepository) GetAll(ctx context.Context) ([]models.Client, error) {
	query := `
		SELECT id, name, sector, contact_email
		FROM clients
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var client models.Client
		if err := rows.Scan(&client.ID, &client.Name, &client.Sector, &client.ContactEmail); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

// GetByID retrieves a client by ID
func (r *clientRepository) GetByID(ctx context.Context, id int) (*models.Client, error) {
	query := `
		SELECT id, name, sector, contact_email
		FROM clients
		WHERE id = ?
	`

	var client models.Client
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&client.ID,
		&client.Name,
		&client.Sector,
		&client.ContactEmail,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return &client, nil
}

// Create creates a new client
func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (name, sector, contact_email)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, client.Name, client.Sector, client.ContactEmail)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	client.ID = int(id)
	return nil
}

// Update updates an existing client
func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET name = ?, sector = ?, contact_email = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, client.Name, client.Sector, client.ContactEmail, client.ID)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("client %d: %w", client.ID, ErrNotFound)
	}

	return nil
}

// Delete deletes a client by ID
func (r *clientRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("client %d: %w", id, ErrNotFound)
	}

	return nil
}

// Count returns the total number of clients
func (r *clientRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}

	return count, nil
}
