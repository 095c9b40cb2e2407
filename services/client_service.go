package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/helpdesk-tools/incident-tracker/models"
	"github.com/helpdesk-tools/incident-tracker/repositories"
)

// ClientService interface defines client management business logic.
// Admin gating for mutations happens at the route level.
type ClientService interface {
	GetAll(ctx context.Context) ([]models.Client, error)
	GetByID(ctx context.Context, id int) (*models.Client, error)
	Create(ctx context.Context, form *models.ClientForm) (*models.Client, error)
	Update(ctx context.Context, id int, form *models.ClientForm) (*models.Client, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// clientService implements ClientService interface
type clientService struct {
	clientRepo repositories.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repositories.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

// GetAll retrieves all clients ordered by name
func (s *clientService) GetAll(ctx context.Context) ([]models.Client, error) {
	return s.clientRepo.GetAll(ctx)
}

// GetByID retrieves a client by ID
func (s *clientService) GetByID(ctx context.Context, id int) (*models.Client, error) {
	if id <= 0 {
		return nil, fmt.Errorf("client %d: %w", id, repositories.ErrNotFound)
	}
	return s.clientRepo.GetByID(ctx, id)
}

// Create creates a new client with validation
func (s *clientService) Create(ctx context.Context, form *models.ClientForm) (*models.Client, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	client := &models.Client{
		Name:         strings.TrimSpace(form.Name),
		Sector:       strings.TrimSpace(form.Sector),
		ContactEmail: strings.TrimSpace(form.ContactEmail),
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// Update overwrites all editable fields of an existing client
func (s *clientService) Update(ctx context.Context, id int, form *models.ClientForm) (*models.Client, error) {
	client, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Name = strings.TrimSpace(form.Name)
	client.Sector = strings.TrimSpace(form.Sector)
	client.ContactEmail = strings.TrimSpace(form.ContactEmail)

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return client, nil
}

// Delete deletes a client unconditionally; incidents referencing it keep
// their client_id and render the reference as missing.
func (s *clientService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("client %d: %w", id, repositories.ErrNotFound)
	}
	return s.clientRepo.Delete(ctx, id)
}

// Count returns the total number of clients
func (s *clientService) Count(ctx context.Context) (int, error) {
	return s.clientRepo.Count(ctx)
}
