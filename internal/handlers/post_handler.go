package handlers

import (
	"errors"
	"log"

	"til/internal/middleware"
	"til/internal/models"
	"til/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service  *services.PostService
	validate *validator.Validate
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service *services.PostService) *PostHandler {
	return &PostHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the post routes with the Fiber app.
// Updates are accepted on both POST and PUT for the same route; the
// original TIL client sends updates with POST.
func (h *PostHandler) RegisterRoutes(router fiber.Router) {
	postRoutes := router.Group("/posts")
	postRoutes.Get("/", h.HandleGetPosts)
	postRoutes.Get("/:id", h.HandleGetPostByID)
	postRoutes.Post("/", h.HandleCreatePost)
	postRoutes.Post("/:id", h.HandleUpdatePost)
	postRoutes.Put("/:id", h.HandleUpdatePost)
	postRoutes.Delete("/:id", h.HandleDeletePost)
}

// HandleGetPosts retrieves all posts.
func (h *PostHandler) HandleGetPosts(c *fiber.Ctx) error {
	posts, err := h.service.GetAllPosts()
	if err != nil {
		log.Printf("Error getting all posts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve posts",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// HandleGetPostByID retrieves a single post by its ID.
func (h *PostHandler) HandleGetPostByID(c *fiber.Ctx) error {
	post, err := h.service.GetPostByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Send(nil)
		}
		log.Printf("Error getting post by ID %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve post",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"post": post})
}

// HandleCreatePost creates a new post owned by the caller.
func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	caller := middleware.AuthenticatedUser(c)
	if caller == nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req models.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	post, err := h.service.CreatePost(caller.ID, req)
	if err != nil {
		log.Printf("Error creating post: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create post",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

// HandleUpdatePost applies a partial update to a post the caller owns.
func (h *PostHandler) HandleUpdatePost(c *fiber.Ctx) error {
	caller := middleware.AuthenticatedUser(c)
	if caller == nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req models.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Updates == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "An 'updates' object is required",
		})
	}

	post, err := h.service.UpdatePost(caller.ID, c.Params("id"), req.Updates)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).Send(nil)
		}
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Send(nil)
		}
		log.Printf("Error updating post %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update post",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"post": post})
}

// HandleDeletePost deletes a post the caller owns and returns the
// pre-deletion record.
func (h *PostHandler) HandleDeletePost(c *fiber.Ctx) error {
	caller := middleware.AuthenticatedUser(c)
	if caller == nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	post, err := h.service.DeletePost(caller.ID, c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).Send(nil)
		}
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Send(nil)
		}
		log.Printf("Error deleting post %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete post",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"post": post})
}
