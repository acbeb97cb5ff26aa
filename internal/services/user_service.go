package services

import (
	"fmt"
	"log"

	"rutaapp/internal/models"
	"rutaapp/internal/repositories"
	"rutaapp/pkg/events"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt work factor applied at registration. The cost is
// embedded in the stored hash, so raising it only affects new registrations.
const hashCost = 10

// RegisterInput carries the fields of a registration request. Phone and
// PhotoRef are optional.
type RegisterInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
	PhotoRef string
}

// UserService handles creation, enumeration and deletion of user records.
type UserService struct {
	userRepo repositories.UserRepository
	mqClient *events.Client
}

// NewUserService creates a new UserService. mqClient may be nil, in which
// case lifecycle events are not published.
func NewUserService(userRepo repositories.UserRepository, mqClient *events.Client) *UserService {
	return &UserService{
		userRepo: userRepo,
		mqClient: mqClient,
	}
}

// Register hashes the password and persists a new user, returning the
// assigned id. The plaintext password is never stored or logged. A duplicate
// email surfaces as models.ErrEmailTaken, rejected by the store's uniqueness
// constraint rather than a prior existence check.
func (s *UserService) Register(input RegisterInput) (int, error) {
	if input.Name == "" {
		return 0, fmt.Errorf("name is required: %w", models.ErrValidation)
	}
	if input.Email == "" {
		return 0, fmt.Errorf("email is required: %w", models.ErrValidation)
	}
	if input.Password == "" {
		return 0, fmt.Errorf("password is required: %w", models.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), hashCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		PhotoRef:     input.PhotoRef,
	}
	if err := s.userRepo.Create(user); err != nil {
		return 0, err
	}

	s.publish(events.UserCreated, user.ID)
	return user.ID, nil
}

// List returns all users projected to UserView, without password hashes.
func (s *UserService) List() ([]models.UserView, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}

	views := make([]models.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.View())
	}
	return views, nil
}

// Get returns a single user's projection, or models.ErrUserNotFound.
func (s *UserService) Get(id int) (*models.UserView, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	view := user.View()
	return &view, nil
}

// Remove deletes the user with the given id. It is idempotent: removing an
// id that was never issued, or was already removed, succeeds.
func (s *UserService) Remove(id int) error {
	if err := s.userRepo.DeleteByID(id); err != nil {
		return err
	}

	s.publish(events.UserDeleted, id)
	return nil
}

// publish sends a lifecycle event, fire and forget. Publication failures are
// logged and never fail the operation that triggered them.
func (s *UserService) publish(event string, userID int) {
	if s.mqClient == nil {
		return
	}

	var err error
	switch event {
	case events.UserCreated:
		err = s.mqClient.PublishUserCreated(userID)
	case events.UserDeleted:
		err = s.mqClient.PublishUserDeleted(userID)
	}
	if err != nil {
		log.Printf("Failed to publish %s event for user %d: %v", event, userID, err)
	}
}
