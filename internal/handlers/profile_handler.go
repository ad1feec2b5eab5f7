package handlers

import (
	"errors"
	"log"

	"souq/internal/middleware"
	"souq/internal/models"
	"souq/internal/repositories"
	"souq/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles public profiles, sector browsing, ratings, and the
// contact form.
type ProfileHandler struct {
	service     *services.ProfileService
	contactRepo repositories.ContactRepository
	validate    *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService, contactRepo repositories.ContactRepository) *ProfileHandler {
	return &ProfileHandler{
		service:     service,
		contactRepo: contactRepo,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public routes plus the factory-gated rating
// route.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router, session fiber.Handler) {
	router.Get("/industries", h.HandleIndustries)
	router.Get("/factories/sector/:sector", h.HandleFactoriesBySector)
	router.Get("/factories/:id", h.HandleFactoryProfile)
	router.Get("/suppliers/:id", h.HandleSupplierProfile)
	router.Post("/suppliers/:id/ratings", session, middleware.RequireRole(models.RoleFactory), h.HandleRateSupplier)
	router.Post("/contact", h.HandleContact)
}

// HandleIndustries lists the recognized industry sectors.
func (h *ProfileHandler) HandleIndustries(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"sectors": models.Sectors,
	})
}

// HandleFactoriesBySector lists factory accounts registered in a sector.
func (h *ProfileHandler) HandleFactoriesBySector(c *fiber.Ctx) error {
	factories, err := h.service.GetFactoriesBySector(c.Params("sector"))
	if err != nil {
		log.Printf("Error listing factories by sector: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve factories",
		})
	}
	if factories == nil {
		factories = []models.User{}
	}
	return c.JSON(factories)
}

// HandleFactoryProfile returns a factory's public profile with its orders.
func (h *ProfileHandler) HandleFactoryProfile(c *fiber.Ctx) error {
	profile, err := h.service.GetFactoryProfile(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Factory not found",
			})
		}
		log.Printf("Error loading factory profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve factory profile",
		})
	}
	return c.JSON(profile)
}

// HandleSupplierProfile returns a supplier's public profile. A supplier with
// no ratings comes back with a null average_rating and rating_count 0.
func (h *ProfileHandler) HandleSupplierProfile(c *fiber.Ctx) error {
	profile, err := h.service.GetSupplierProfile(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Supplier not found",
			})
		}
		log.Printf("Error loading supplier profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve supplier profile",
		})
	}
	return c.JSON(profile)
}

// RatingRequest represents the request body for rating a supplier.
type RatingRequest struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

// HandleRateSupplier appends the session factory's rating of a supplier.
func (h *ProfileHandler) HandleRateSupplier(c *fiber.Ctx) error {
	var req RatingRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing rating request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	rating, err := h.service.RateSupplier(middleware.SessionUserID(c), c.Params("id"), req.Score)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Rating must be between 1 and 5",
			})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Supplier not found",
			})
		}
		log.Printf("Error rating supplier: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save rating",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}

// ContactRequest represents the request body for the contact form.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// HandleContact appends a contact message. Messages are write-only from the
// public side; only the admin listing reads them back.
func (h *ProfileHandler) HandleContact(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing contact request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := h.contactRepo.Create(msg); err != nil {
		log.Printf("Error saving contact message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not send message",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Thanks, we received your message",
	})
}
