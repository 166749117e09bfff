package users

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/castkeep/publisher-api/internal/models"
	"github.com/castkeep/publisher-api/internal/services/auth"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
	"github.com/castkeep/publisher-api/pkg/validate"
)

type Service struct {
	repository  UserRepository
	authService *auth.Service
}

var _ UserService = (*Service)(nil)

func NewService(repository UserRepository, authService *auth.Service) *Service {
	return &Service{
		repository:  repository,
		authService: authService,
	}
}

// Register creates an account after validating every field. The role
// defaults to user; only admin and user are accepted.
func (s *Service) Register(ctx context.Context, name, email, password, role string) (*models.User, error) {
	if err := validate.Required(name, "name"); err != nil {
		return nil, err
	}
	if err := validate.Required(email, "email"); err != nil {
		return nil, err
	}
	if err := validate.Email(email); err != nil {
		return nil, err
	}
	if err := validate.Length(password, "password", 6, 72); err != nil {
		return nil, err
	}

	if role == "" {
		role = models.RoleUser
	}
	if err := validate.OneOf(role, "role", models.RoleAdmin, models.RoleUser); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         strings.ToLower(role),
	}

	if err := s.repository.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password produce the same authentication error.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if err := validate.Required(email, "email"); err != nil {
		return nil, "", err
	}
	if err := validate.Required(password, "password"); err != nil {
		return nil, "", err
	}

	user, err := s.repository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
			return nil, "", apperrors.Unauthorized("invalid email or password")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	token, err := s.authService.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}

	return user, token, nil
}
