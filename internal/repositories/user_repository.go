package repositories

import "rutaapp/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// EnsureSchema creates the usuarios table if it does not exist. It is
	// idempotent and safe to call on every process start.
	EnsureSchema() error
	// Create persists a new user and assigns its ID. A duplicate email is
	// rejected by the store's uniqueness constraint and surfaces as
	// models.ErrEmailTaken.
	Create(user *models.User) error
	// GetAll returns every stored user, password hash included. Projection
	// is the caller's responsibility.
	GetAll() ([]models.User, error)
	// GetByEmail returns the user with the given email, or
	// models.ErrUserNotFound.
	GetByEmail(email string) (*models.User, error)
	// GetByID returns the user with the given id, or models.ErrUserNotFound.
	GetByID(id int) (*models.User, error)
	// DeleteByID removes the user with the given id. Deleting an id that
	// does not exist is not an error.
	DeleteByID(id int) error
}
