package repositories

import (
	"fmt"
	"sync"

	"rutaapp/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository,
// useful for local development without a database.
type MockUserRepository struct {
	users  map[int]models.User
	nextID int
	mu     sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[int]models.User),
		nextID: 1,
	}
}

// EnsureSchema is a no-op for the in-memory store.
func (r *MockUserRepository) EnsureSchema() error {
	return nil
}

// Create adds a new user. The id counter only moves forward, so deleted ids
// are never reused. The uniqueness check runs under the same lock as the
// insert, mirroring the database constraint.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("email %s: %w", user.Email, models.ErrEmailTaken)
		}
	}

	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

// GetAll returns all users in unspecified order.
func (r *MockUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		userList = append(userList, u)
	}
	return userList, nil
}

// GetByEmail returns the user with the given email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("email %s: %w", email, models.ErrUserNotFound)
}

// GetByID returns the user with the given id.
func (r *MockUserRepository) GetByID(id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("id %d: %w", id, models.ErrUserNotFound)
	}
	return &user, nil
}

// DeleteByID removes a user. Removing an absent id succeeds.
func (r *MockUserRepository) DeleteByID(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}
