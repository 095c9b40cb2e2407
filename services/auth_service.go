package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/helpdesk-tools/incident-tracker/models"
	"github.com/helpdesk-tools/incident-tracker/repositories"
)

// AuthService interface defines registration and login business logic
type AuthService interface {
	Register(ctx context.Context, form *models.RegisterForm) (*models.User, error)
	Login(ctx context.Context, form *models.LoginForm) (*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	CreateAdmin(ctx context.Context, email, password string) (*models.User, error)
}

// authService implements AuthService interface
type authService struct {
	userRepo   repositories.UserRepository
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, bcryptCost int) AuthService {
	return &authService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// Register creates a regular user account. The caller logs in separately.
func (s *authService) Register(ctx context.Context, form *models.RegisterForm) (*models.User, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	email := models.NormalizeEmail(form.Email)
	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}

	user, err := models.NewUser(form.Name, email, models.RoleRegular)
	if err != nil {
		return nil, err
	}
	if err := user.SetPassword(form.Password, s.bcryptCost); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return user, nil
}

// Login verifies credentials. Unknown email and wrong password both return
// ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, form *models.LoginForm) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, models.NormalizeEmail(form.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.CheckPassword(form.Password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (s *authService) GetUser(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid user ID: %d", id)
	}
	return s.userRepo.GetByID(ctx, id)
}

// CreateAdmin creates an admin user directly against the store, guarded
// against duplicate email. Used by the create-admin CLI command.
func (s *authService) CreateAdmin(ctx context.Context, email, password string) (*models.User, error) {
	form := &models.RegisterForm{Name: "Admin", Email: email, Password: password}
	if errs := form.Validate(); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	normalized := models.NormalizeEmail(email)
	if err := s.checkEmailFree(ctx, normalized); err != nil {
		return nil, err
	}

	user, err := models.NewUser("Admin", normalized, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := user.SetPassword(password, s.bcryptCost); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return user, nil
}

// checkEmailFree returns ErrEmailTaken when the email is already registered
func (s *authService) checkEmailFree(ctx context.Context, email string) error {
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}
