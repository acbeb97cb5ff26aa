package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"rutaapp/internal/models"
	"rutaapp/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureSchema() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) DeleteByID(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

const testJWTSecret = "test_jwt_secret"

func storedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &models.User{
		ID:           1,
		Name:         "Ana",
		Email:        "ana@x.com",
		PasswordHash: string(hash),
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	user := storedUser(t, "secret1")
	mockRepo.On("GetByEmail", "ana@x.com").Return(user, nil).Once()

	result, err := authService.Login("ana@x.com", "secret1")
	assert.NoError(t, err)
	assert.Equal(t, 1, result.ID)
	assert.Equal(t, "Ana", result.Name)
	assert.NotEmpty(t, result.Token)
	mockRepo.AssertExpectations(t)

	// The token payload carries the user id and a one-hour expiry.
	token, err := jwt.Parse(result.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, float64(1), claims["id"])

	exp := int64(claims["exp"].(float64))
	iat := int64(claims["iat"].(float64))
	assert.Equal(t, int64(3600), exp-iat)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	mockRepo.On("GetByEmail", "nadie@x.com").
		Return(nil, fmt.Errorf("email nadie@x.com: %w", models.ErrUserNotFound)).Once()

	result, err := authService.Login("nadie@x.com", "whatever")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	user := storedUser(t, "secret1")
	// A single-character variation must be rejected.
	mockRepo.On("GetByEmail", "ana@x.com").Return(user, nil).Twice()

	result, err := authService.Login("ana@x.com", "secret2")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	result, err = authService.Login("ana@x.com", "Secret1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	user := storedUser(t, "secret1")
	mockRepo.On("GetByEmail", "ana@x.com").Return(user, nil).Once()

	result, err := authService.Login("ana@x.com", "secret1")
	assert.NoError(t, err)

	claims, err := authService.ValidateToken(result.Token)
	assert.NoError(t, err)
	assert.Equal(t, float64(1), claims["id"])

	// A token signed with a different secret is rejected.
	other := services.NewAuthService(mockRepo, "another_secret", time.Hour)
	_, err = other.ValidateToken(result.Token)
	assert.Error(t, err)

	// Garbage is rejected.
	_, err = authService.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestAuthService_TokenExpiry(t *testing.T) {
	mockRepo := new(MockUserRepository)
	// Negative TTL issues a token that is already past its expiry.
	authService := services.NewAuthService(mockRepo, testJWTSecret, -time.Minute)

	user := storedUser(t, "secret1")
	mockRepo.On("GetByEmail", "ana@x.com").Return(user, nil).Once()

	result, err := authService.Login("ana@x.com", "secret1")
	assert.NoError(t, err)

	_, err = authService.ValidateToken(result.Token)
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}
