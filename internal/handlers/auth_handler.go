package handlers

import (
	"errors"
	"log"

	"rutaapp/internal/models"
	"rutaapp/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/login", h.HandleLogin)
}

// RegisterProtectedRoutes registers routes that require a valid token. The
// guard is mounted per route so it cannot capture unrelated paths.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router, guard fiber.Handler) {
	router.Get("/perfil", guard, h.HandleProfile)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin verifies credentials and issues a token. Unknown email and
// wrong password both return 401, with distinct messages; the running system
// has always exposed the distinction and existing clients depend on it.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email and password are required",
		})
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUserNotFound):
			log.Printf("Login failed for %s: user not found", req.Email)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "user not found",
			})
		case errors.Is(err, models.ErrInvalidCredentials):
			log.Printf("Login failed for %s: wrong password", req.Email)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "incorrect password",
			})
		default:
			log.Printf("Login error for %s: %v", req.Email, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "login failed",
			})
		}
	}

	return c.JSON(result)
}

// HandleProfile returns the record of the user the token was issued to.
func (h *AuthHandler) HandleProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(int)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid token",
		})
	}

	user, err := h.userService.Get(userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user no longer exists",
			})
		}
		log.Printf("Error loading profile for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not load profile",
		})
	}

	return c.JSON(user)
}
