package handlers

import (
	"errors"
	"fmt"
	"log"

	"rutaapp/internal/models"
	"rutaapp/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the user directory.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user directory routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/usuarios", h.HandleList)
	router.Post("/usuarios", h.HandleRegister)
	router.Delete("/usuarios/:id", h.HandleDelete)
}

// RegisterRequest represents the request body for user registration.
// Email is only checked for presence, not format; existing clients send
// arbitrary strings and the store treats the value as an opaque key.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	PhotoRef string `json:"photoRef"`
}

// HandleList returns all users without password hashes.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.userService.List()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not list users",
		})
	}
	return c.JSON(users)
}

// HandleRegister creates a new user record.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			e := validationErrors[0]
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("field '%s' failed on the '%s' rule", e.Field(), e.Tag()),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "validation failed",
		})
	}

	id, err := h.userService.Register(services.RegisterInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		PhotoRef: req.PhotoRef,
	})
	if err != nil {
		log.Printf("Error registering user %s: %v", req.Email, err)
		switch {
		case errors.Is(err, models.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "email already registered",
			})
		case errors.Is(err, models.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "could not register user",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": id,
	})
}

// HandleDelete removes a user by id. Deleting an id that does not exist
// still reports success, so clients can retry safely.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user id",
		})
	}

	if err := h.userService.Remove(id); err != nil {
		log.Printf("Error deleting user %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not delete user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "user deleted",
	})
}
