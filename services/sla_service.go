package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/helpdesk-tools/incident-tracker/models"
	"github.com/helpdesk-tools/incident-tracker/repositories"
)

// SLAService interface defines SLA management business logic.
// Admin gating for mutations happens at the route level.
type SLAService interface {
	GetAll(ctx context.Context) ([]models.SLA, error)
	GetByID(ctx context.Context, id int) (*models.SLA, error)
	Create(ctx context.Context, form *models.SLAForm) (*models.SLA, error)
	Update(ctx context.Context, id int, form *models.SLAForm) (*models.SLA, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// slaService implements SLAService interface
type slaService struct {
	slaRepo repositories.SLARepository
}

// NewSLAService creates a new SLA service
func NewSLAService(slaRepo repositories.SLARepository) SLAService {
	return &slaService{slaRepo: slaRepo}
}

// GetAll retrieves all SLAs ordered by name
func (s *slaService) GetAll(ctx context.Context) ([]models.SLA, error) {
	return s.slaRepo.GetAll(ctx)
}

// GetByID retrieves an SLA by ID
func (s *slaService) GetByID(ctx context.Context, id int) (*models.SLA, error) {
	if id <= 0 {
		return nil, fmt.Errorf("SLA %d: %w", id, repositories.ErrNotFound)
	}
	return s.slaRepo.GetByID(ctx, id)
}

// Create creates a new SLA. Non-numeric minute fields silently become 0.
func (s *slaService) Create(ctx context.Context, form *models.SLAForm) (*models.SLA, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	sla := &models.SLA{
		Name:               strings.TrimSpace(form.Name),
		TargetResponseMins: models.ToInt(form.TargetResponseMins),
		TargetResolveMins:  models.ToInt(form.TargetResolveMins),
	}

	if err := s.slaRepo.Create(ctx, sla); err != nil {
		return nil, fmt.Errorf("failed to create SLA: %w", err)
	}

	return sla, nil
}

// Update overwrites all editable fields, re-parsing the minute fields the
// same way as Create.
func (s *slaService) Update(ctx context.Context, id int, form *models.SLAForm) (*models.SLA, error) {
	sla, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sla.Name = strings.TrimSpace(form.Name)
	sla.TargetResponseMins = models.ToInt(form.TargetResponseMins)
	sla.TargetResolveMins = models.ToInt(form.TargetResolveMins)

	if err := s.slaRepo.Update(ctx, sla); err != nil {
		return nil, fmt.Errorf("failed to update SLA: %w", err)
	}

	return sla, nil
}

// Delete deletes an SLA unconditionally; incidents referencing it keep
// their sla_id and render the reference as missing.
func (s *slaService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("SLA %d: %w", id, repositories.ErrNotFound)
	}
	return s.slaRepo.Delete(ctx, id)
}

// Count returns the total number of SLAs
func (s *slaService) Count(ctx context.Context) (int, error) {
	return s.slaRepo.Count(ctx)
}
