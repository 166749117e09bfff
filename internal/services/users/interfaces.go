package users

import (
	"context"

	"github.com/castkeep/publisher-api/internal/models"
)

// UserRepository defines the data access interface for users
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// UserService defines the business logic interface for account operations
type UserService interface {
	// Register creates an account. Role defaults to user when empty.
	Register(ctx context.Context, name, email, password, role string) (*models.User, error)
	// Login verifies credentials and returns the user with a signed token.
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}
