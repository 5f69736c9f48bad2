package handlers

import (
	"errors"
	"log"

	"til/internal/middleware"
	"til/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user resources.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleGetUsers returns every user, sanitized.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"users": users})
}

// HandleGetUserByID returns a single sanitized user.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	user, err := h.service.GetUserByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Send(nil)
		}
		log.Printf("Error getting user by ID %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve user",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"user": user})
}

// HandleDeleteUser deletes the caller's own account. A mismatched
// caller gets a bare 403 before any lookup happens; a missing target
// gets a bare 404. On success the sanitized pre-deletion record is
// returned.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	caller := middleware.AuthenticatedUser(c)
	if caller == nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	user, err := h.service.DeleteUser(caller.ID, c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).Send(nil)
		}
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Send(nil)
		}
		log.Printf("Error deleting user %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete user",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"user": user})
}
