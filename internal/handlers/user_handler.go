package handlers

import (
	"log"
	"time"

	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
	timeout  time.Duration
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, timeout time.Duration) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: services.NewValidator(),
		timeout:  timeout,
	}
}

// RegisterRoutes registers the user routes. adminGuards protect account
// creation and role changes.
func (h *UserHandler) RegisterRoutes(router fiber.Router, adminGuards ...fiber.Handler) {
	router.Post("/add-user", withGuards(adminGuards, h.HandleCreateUser)...)
	router.Get("/get-users", h.HandleGetUsers)
	router.Get("/get-user/:id", h.HandleGetUserByID)
	router.Put("/update-role", withGuards(adminGuards, h.HandleUpdateRole)...)
}

// HandleCreateUser registers a new user.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var input models.UserInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing add-user body: %v", err)
		return respondError(c, invalidBody(err))
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	user, err := h.service.CreateUser(ctx, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// HandleGetUsers lists every user.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	users, err := h.service.GetAllUsers(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// HandleGetUserByID retrieves a single user.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	user, err := h.service.GetUserByID(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User retrieved successfully",
		"user":    user,
	})
}

// HandleUpdateRole changes the role of a user.
func (h *UserHandler) HandleUpdateRole(c *fiber.Ctx) error {
	var req models.RoleUpdate
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-role body: %v", err)
		return respondError(c, invalidBody(err))
	}
	if err := services.Validate(h.validate, req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	user, err := h.service.UpdateRole(ctx, req.UserID, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Role updated successfully",
		"user":    user,
	})
}
