package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/helpdesk-tools/incident-tracker/models"
	"github.com/helpdesk-tools/incident-tracker/repositories"
)

// IncidentService interface defines incident management business logic.
// Edits are allowed for admins and the incident's creator; deletion is
// admin-only and enforced at the route level on top of the predicate here.
type IncidentService interface {
	List(ctx context.Context, user *models.User) ([]models.Incident, error)
	GetForEdit(ctx context.Context, user *models.User, id int) (*models.Incident, error)
	Create(ctx context.Context, user *models.User, form *models.IncidentForm) (*models.Incident, error)
	Update(ctx context.Context, user *models.User, id int, form *models.IncidentForm) (*models.Incident, error)
	Delete(ctx context.Context, user *models.User, id int) error
	CountVisible(ctx context.Context, user *models.User) (int, error)
}

// incidentService implements IncidentService interface
type incidentService struct {
	incidentRepo repositories.IncidentRepository
}

// NewIncidentService creates a new incident service
func NewIncidentService(incidentRepo repositories.IncidentRepository) IncidentService {
	return &incidentService{incidentRepo: incidentRepo}
}

// List returns all incidents for admins and only the user's own incidents
// otherwise, newest first in both cases.
func (s *incidentService) List(ctx context.Context, user *models.User) ([]models.Incident, error) {
	if user.IsAdmin() {
		return s.incidentRepo.GetAll(ctx)
	}
	return s.incidentRepo.GetByCreator(ctx, user.ID)
}

// GetForEdit loads an incident and applies the ownership rule.
func (s *incidentService) GetForEdit(ctx context.Context, user *models.User, id int) (*models.Incident, error) {
	incident, err := s.incidentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.Authorize(user, models.RuleAdminOrOwner, incident.CreatedBy) {
		return nil, ErrForbidden
	}

	return incident, nil
}

// Create creates a new incident stamped with the current user as creator.
func (s *incidentService) Create(ctx context.Context, user *models.User, form *models.IncidentForm) (*models.Incident, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	incident := &models.Incident{
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Priority:    form.PriorityOrDefault(),
		Status:      form.StatusOrDefault(),
		ClientID:    models.ToInt(form.ClientID),
		SLAID:       models.ToInt(form.SLAID),
		CreatedBy:   user.ID,
	}

	if err := s.incidentRepo.Create(ctx, incident); err != nil {
		return nil, fmt.Errorf("failed to create incident: %w", err)
	}

	return incident, nil
}

// Update overwrites all fields of an existing incident, re-validating the
// same required-field rule as Create and refreshing updated_at. The stored
// record stays untouched on validation or authorization failure.
func (s *incidentService) Update(ctx context.Context, user *models.User, id int, form *models.IncidentForm) (*models.Incident, error) {
	incident, err := s.GetForEdit(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if errs := form.Validate(); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	incident.Title = strings.TrimSpace(form.Title)
	incident.Description = strings.TrimSpace(form.Description)
	incident.Priority = form.PriorityOrDefault()
	incident.Status = form.StatusOrDefault()
	incident.ClientID = models.ToInt(form.ClientID)
	incident.SLAID = models.ToInt(form.SLAID)

	if err := s.incidentRepo.Update(ctx, incident); err != nil {
		return nil, fmt.Errorf("failed to update incident: %w", err)
	}

	return incident, nil
}

// Delete deletes an incident. Ownership is insufficient: only admins may
// delete, regardless of who created the record.
func (s *incidentService) Delete(ctx context.Context, user *models.User, id int) error {
	if !models.Authorize(user, models.RuleAdminOnly, 0) {
		return ErrForbidden
	}
	return s.incidentRepo.Delete(ctx, id)
}

// CountVisible returns the number of incidents the user can see in List.
func (s *incidentService) CountVisible(ctx context.Context, user *models.User) (int, error) {
	if user.IsAdmin() {
		return s.incidentRepo.Count(ctx)
	}
	return s.incidentRepo.CountByCreator(ctx, user.ID)
}
