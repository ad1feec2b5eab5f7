package handlers

import (
	"log"

	"souq/internal/middleware"
	"souq/internal/models"
	"souq/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the read-only admin listings. The routes sit behind
// the same session middleware as everything else, gated on role=admin.
type AdminHandler struct {
	userRepo    repositories.UserRepository
	contactRepo repositories.ContactRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userRepo repositories.UserRepository, contactRepo repositories.ContactRepository) *AdminHandler {
	return &AdminHandler{
		userRepo:    userRepo,
		contactRepo: contactRepo,
	}
}

// RegisterRoutes registers the admin routes.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, session fiber.Handler) {
	adminRoutes := router.Group("/admin", session, middleware.RequireRole(models.RoleAdmin))
	adminRoutes.Get("/users", h.HandleListUsers)
	adminRoutes.Get("/contacts", h.HandleListContacts)
}

// HandleListUsers dumps every user. Password hashes are never serialized
// (the model elides them from JSON).
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.userRepo.GetAll()
	if err != nil {
		log.Printf("Error listing users for admin: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
		})
	}
	return c.JSON(users)
}

// HandleListContacts dumps every contact message.
func (h *AdminHandler) HandleListContacts(c *fiber.Ctx) error {
	msgs, err := h.contactRepo.GetAll()
	if err != nil {
		log.Printf("Error listing contact messages for admin: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve contact messages",
		})
	}
	return c.JSON(msgs)
}
