package handlers

import (
	"errors"
	"log"
	"time"

	"souq/internal/middleware"
	"souq/internal/models"
	"souq/internal/services"
	"souq/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const deliveryDateLayout = "2006-01-02"

// OrderHandler handles HTTP requests for the order/offer workflow.
type OrderHandler struct {
	service     *services.OrderService
	attachments *storage.AttachmentStore
	validate    *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, attachments *storage.AttachmentStore) *OrderHandler {
	return &OrderHandler{
		service:     service,
		attachments: attachments,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the order and offer routes. Every route requires
// a session; the role gates differ per route, so they are applied per-route
// rather than on the group.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, session fiber.Handler) {
	factory := middleware.RequireRole(models.RoleFactory)
	supplier := middleware.RequireRole(models.RoleSupplier)

	orderRoutes := router.Group("/orders", session)
	orderRoutes.Post("/", factory, h.HandleCreateOrder)
	orderRoutes.Get("/", supplier, h.HandleListOrders)
	orderRoutes.Put("/:id", factory, h.HandleEditOrder)
	orderRoutes.Delete("/:id", factory, h.HandleDeleteOrder)
	orderRoutes.Post("/:id/offers", supplier, h.HandleSubmitOffer)
	orderRoutes.Get("/:id/offers", factory, h.HandleViewOffers)

	router.Get("/stats", session, factory, h.HandleStats)
}

// OrderRequest represents the order fields accepted from a factory, either
// as JSON or as multipart form fields alongside an optional attachment.
type OrderRequest struct {
	Title        string `json:"title" form:"title" validate:"required,min=3,max=150"`
	Description  string `json:"description" form:"description" validate:"omitempty,max=2000"`
	Sector       string `json:"sector" form:"sector" validate:"required,max=64"`
	Quantity     int    `json:"quantity" form:"quantity" validate:"required,gt=0"`
	DeliveryDate string `json:"delivery_date" form:"delivery_date" validate:"required,datetime=2006-01-02"`
}

// HandleCreateOrder creates a new sourcing order for the session factory.
// An optional `attachment` file is validated against the extension
// allow-list and persisted before the order row is written, so a rejected
// upload never leaves a row behind.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req OrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create-order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}
	deliveryDate, err := time.Parse(deliveryDateLayout, req.DeliveryDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Delivery date must be a valid YYYY-MM-DD date",
		})
	}

	var attachment string
	if fh, err := c.FormFile("attachment"); err == nil && fh != nil {
		attachment, err = h.attachments.Save(fh)
		if err != nil {
			if errors.Is(err, storage.ErrUploadRejected) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "Attachment must be a pdf, png, jpg, or jpeg file",
				})
			}
			log.Printf("Error saving attachment: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not save attachment",
			})
		}
	}

	order := &models.Order{
		Title:        req.Title,
		Description:  req.Description,
		Sector:       req.Sector,
		Quantity:     req.Quantity,
		DeliveryDate: deliveryDate,
		UserID:       middleware.SessionUserID(c),
		Attachment:   attachment,
	}
	created, err := h.service.CreateOrder(order)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		// The row was never written; drop the orphaned attachment.
		if attachment != "" {
			_ = h.attachments.Remove(attachment)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleListOrders returns one page of open orders for supplier browsing.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", services.DefaultPageSize)

	orders, total, err := h.service.ListOrders(page, limit)
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}
	return c.JSON(fiber.Map{
		"orders": orders,
		"total":  total,
		"page":   page,
	})
}

// HandleEditOrder updates an order owned by the session factory.
func (h *OrderHandler) HandleEditOrder(c *fiber.Ctx) error {
	var req OrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing edit-order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}
	deliveryDate, err := time.Parse(deliveryDateLayout, req.DeliveryDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Delivery date must be a valid YYYY-MM-DD date",
		})
	}

	updated, err := h.service.EditOrder(middleware.SessionUserID(c), c.Params("id"), services.OrderUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Sector:       req.Sector,
		Quantity:     req.Quantity,
		DeliveryDate: deliveryDate,
	})
	if err != nil {
		return orderErrorResponse(c, "update", err)
	}
	return c.JSON(updated)
}

// HandleDeleteOrder deletes an order owned by the session factory, along
// with its stored attachment if it had one.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	deleted, err := h.service.DeleteOrder(middleware.SessionUserID(c), c.Params("id"))
	if err != nil {
		return orderErrorResponse(c, "delete", err)
	}
	if deleted.Attachment != "" {
		if err := h.attachments.Remove(deleted.Attachment); err != nil {
			log.Printf("Error removing attachment for order %s: %v", deleted.ID, err)
		}
	}
	return c.JSON(fiber.Map{
		"message": "Order deleted",
	})
}

// OfferRequest represents the request body for an offer submission.
type OfferRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

// HandleSubmitOffer appends the session supplier's offer against an order.
func (h *OrderHandler) HandleSubmitOffer(c *fiber.Ctx) error {
	var req OfferRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing offer request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	offer, err := h.service.SubmitOffer(middleware.SessionUserID(c), c.Params("id"), req.Body)
	if err != nil {
		return orderErrorResponse(c, "submit an offer against", err)
	}
	return c.Status(fiber.StatusCreated).JSON(offer)
}

// HandleViewOffers lists offers against an order owned by the session
// factory.
func (h *OrderHandler) HandleViewOffers(c *fiber.Ctx) error {
	offers, err := h.service.ViewOffers(middleware.SessionUserID(c), c.Params("id"))
	if err != nil {
		return orderErrorResponse(c, "view offers for", err)
	}
	if offers == nil {
		offers = []models.Offer{}
	}
	return c.JSON(offers)
}

// HandleStats returns the session factory's aggregate activity.
func (h *OrderHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(middleware.SessionUserID(c))
	if err != nil {
		log.Printf("Error computing stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute stats",
		})
	}
	return c.JSON(stats)
}

// orderErrorResponse maps order workflow errors to responses. Missing and
// not-owned orders report identically.
func orderErrorResponse(c *fiber.Ctx, action string, err error) error {
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
		})
	}
	log.Printf("Error trying to %s order: %v", action, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not " + action + " order",
	})
}
