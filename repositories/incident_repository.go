package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/helpdesk-tools/incident-tracker/models"
)

// IncidentRepository interface defines incident database operations
type IncidentRepository interface {
	GetAll(ctx context.Context) ([]models.Incident, error)
	GetByCreator(ctx context.Context, userID int) ([]models.Incident, error)
	GetByID(ctx context.Context, id int) (*models.Incident, error)
	Create(ctx context.Context, incident *models.Incident) error
	Update(ctx context.Context, incident *models.Incident) error
	Delete(ctx context.Context, id int) error
	CountByCreator(ctx context.Context, userID int) (int, error)
	Count(ctx context.Context) (int, error)
}

// incidentRepository implements IncidentRepository interface
type incidentRepository struct {
	db *sql.DB
}

// NewIncidentRepository creates a new incident repository
func NewIncidentRepository(db *sql.DB) IncidentRepository {
	return &incidentRepository{db: db}
}

// Client, SLA and creator names are resolved with LEFT JOINs because
// incident rows may outlive the records they reference.
const incidentListQuery = `
	SELECT i.id, i.title, i.description, i.priority, i.status,
	       i.client_id, i.sla_id, i.created_by, i.created_at, i.updated_at,
	       c.name, s.name, u.name
	FROM incidents i
	LEFT JOIN clients c ON c.id = i.client_id
	LEFT JOIN slas s ON s.id = i.sla_id
	LEFT JOIN users u ON u.id = i.created_by
`

// GetAll retrieves all incidents, newest first
func (r *incidentRepository) GetAll(ctx context.Context) ([]models.Incident, error) {
	query := incidentListQuery + ` ORDER BY i.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	return scanIncidents(rows)
}

// GetByCreator retrieves incidents created by the given user, newest first
func (r *incidentRepository) GetByCreator(ctx context.Context, userID int) ([]models.Incident, error) {
	query := incidentListQuery + ` WHERE i.created_by = ? ORDER BY i.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents by creator: %w", err)
	}
	defer rows.Close()

	return scanIncidents(rows)
}

// GetByID retrieves an incident by ID
func (r *incidentRepository) GetByID(ctx context.Context, id int) (*models.Incident, error) {
	query := incidentListQuery + ` WHERE i.id = ?`

	row := r.db.QueryRowContext(ctx, query, id)

	var incident models.Incident
	var clientName, slaName, creator sql.NullString
	err := row.Scan(
		&incident.ID,
		&incident.Title,
		&incident.Description,
		&incident.Priority,
		&incident.Status,
		&incident.ClientID,
		&incident.SLAID,
		&incident.CreatedBy,
		&incident.CreatedAt,
		&incident.UpdatedAt,
		&clientName,
		&slaName,
		&creator,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("incident %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get incident: %w", err)
	}

	incident.ClientName = clientName.String
	incident.SLAName = slaName.String
	incident.Creator = creator.String

	return &incident, nil
}

// Create creates a new incident
func (r *incidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (title, description, priority, status,
		                       client_id, sla_id, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	if incident.CreatedAt.IsZero() {
		incident.CreatedAt = now
	}
	if incident.UpdatedAt.IsZero() {
		incident.UpdatedAt = now
	}

	result, err := r.db.ExecContext(ctx, query,
		incident.Title,
		incident.Description,
		incident.Priority,
		incident.Status,
		incident.ClientID,
		incident.SLAID,
		incident.CreatedBy,
		incident.CreatedAt,
		incident.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	incident.ID = int(id)
	return nil
}

// Update updates an existing incident
func (r *incidentRepository) Update(ctx context.Context, incident *models.Incident) error {
	query := `
		UPDATE incidents
		SET title = ?, description = ?, priority = ?, status = ?,
		    client_id = ?, sla_id = ?, updated_at = ?
		WHERE id = ?
	`

	incident.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		incident.Title,
		incident.Description,
		incident.Priority,
		incident.Status,
		incident.ClientID,
		incident.SLAID,
		incident.UpdatedAt,
		incident.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update incident: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("incident %d: %w", incident.ID, ErrNotFound)
	}

	return nil
}

// Delete deletes an incident by ID
func (r *incidentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM incidents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete incident: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("incident %d: %w", id, ErrNotFound)
	}

	return nil
}

// CountByCreator returns the number of incidents created by the given user
func (r *incidentRepository) CountByCreator(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM incidents WHERE created_by = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count incidents by creator: %w", err)
	}

	return count, nil
}

// Count returns the total number of incidents
func (r *incidentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM incidents`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count incidents: %w", err)
	}

	return count, nil
}

// scanIncidents reads incident rows including the joined display names
func scanIncidents(rows *sql.Rows) ([]models.Incident, error) {
	var incidents []models.Incident
	for rows.Next() {
		var incident models.Incident
		var clientName, slaName, creator sql.NullString

		err := rows.Scan(
			&incident.ID,
			&incident.Title,
			&incident.Description,
			&incident.Priority,
			&incident.Status,
			&incident.ClientID,
			&incident.SLAID,
			&incident.CreatedBy,
			&incident.CreatedAt,
			&incident.UpdatedAt,
			&clientName,
			&slaName,
			&creator,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}

		incident.ClientName = clientName.String
		incident.SLAName = slaName.String
		incident.Creator = creator.String

		incidents = append(incidents, incident)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incidents: %w", err)
	}

	return incidents, nil
}
