package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/helpdesk-tools/incident-tracker/models"
)

// SLARepository interface defines SLA database operations
type SLARepository interface {
	GetAll(ctx context.Context) ([]models.SLA, error)
	GetByID(ctx context.Context, id int) (*models.SLA, error)
	Create(ctx context.Context, sla *models.SLA) error
	Update(ctx context.Context, sla *models.SLA) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// slaRepository implements SLARepository interface
type slaRepository struct {
	db *sql.DB
}

// NewSLARepository creates a new SLA repository
func NewSLARepository(db *sql.DB) SLARepository {
	return &slaRepository{db: db}
}

// GetAll retrieves all SLAs ordered by name
func (r *slaRepository) GetAll(ctx context.Context) ([]models.SLA, error) {
	query := `
		SELECT id, name, target_response_mins, target_resolve_mins
		FROM slas
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query SLAs: %w", err)
	}
	defer rows.Close()

	var slas []models.SLA
	for rows.Next() {
		var sla models.SLA
		if err := rows.Scan(&sla.ID, &sla.Name, &sla.TargetResponseMins, &sla.TargetResolveMins); err != nil {
			return nil, fmt.Errorf("failed to scan SLA: %w", err)
		}
		slas = append(slas, sla)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating SLAs: %w", err)
	}

	return slas, nil
}

// GetByID retrieves an SLA by ID
func (r *slaRepository) GetByID(ctx context.Context, id int) (*models.SLA, error) {
	query := `
		SELECT id, name, target_response_mins, target_resolve_mins
		FROM slas
		WHERE id = ?
	`

	var sla models.SLA
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sla.ID,
		&sla.Name,
		&sla.TargetResponseMins,
		&sla.TargetResolveMins,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("SLA %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get SLA: %w", err)
	}

	return &sla, nil
}

// Create creates a new SLA
func (r *slaRepository) Create(ctx context.Context, sla *models.SLA) error {
	query := `
		INSERT INTO slas (name, target_response_mins, target_resolve_mins)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, sla.Name, sla.TargetResponseMins, sla.TargetResolveMins)
	if err != nil {
		return fmt.Errorf("failed to create SLA: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	sla.ID = int(id)
	return nil
}

// Update updates an existing SLA
func (r *slaRepository) Update(ctx context.Context, sla *models.SLA) error {
	query := `
		UPDATE slas
		SET name = ?, target_response_mins = ?, target_resolve_mins = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, sla.Name, sla.TargetResponseMins, sla.TargetResolveMins, sla.ID)
	if err != nil {
		return fmt.Errorf("failed to update SLA: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("SLA %d: %w", sla.ID, ErrNotFound)
	}

	return nil
}

// Delete deletes an SLA by ID
func (r *slaRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM slas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete SLA: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("SLA %d: %w", id, ErrNotFound)
	}

	return nil
}

// Count returns the total number of SLAs
func (r *slaRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM slas`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count SLAs: %w", err)
	}

	return count, nil
}
