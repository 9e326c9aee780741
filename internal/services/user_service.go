package services

import (
	"context"
	"fmt"
	"strings"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// UserService manages user accounts and their roles.
type UserService struct {
	repo     repositories.UserRepository
	events   EventPublisher
	validate *validator.Validate
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(repo repositories.UserRepository, events EventPublisher) *UserService {
	return &UserService{
		repo:     repo,
		events:   events,
		validate: NewValidator(),
	}
}

// CreateUser registers a user, hashing the password. Emails are unique.
func (s *UserService) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := Validate(s.validate, in); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, apperror.Conflict(fmt.Sprintf("Email '%s' already registered", in.Email))
	}
	if err != nil && !apperror.Is(err, apperror.KindNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashedPassword),
		Cart:     in.Cart,
		Role:     in.Role,
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Cart == nil {
		user.Cart = []string{}
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	publish(ctx, s.events, EventUserCreated, user)
	return user, nil
}

// GetAllUsers lists every user.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll(ctx)
}

// GetUserByID retrieves a single user.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateRole changes the role of a user.
func (s *UserService) UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("Invalid role '%s'", role), map[string]string{"Role": "must be one of user, admin"})
	}
	user, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.events, EventUserRoleUpdated, user)
	return user, nil
}
