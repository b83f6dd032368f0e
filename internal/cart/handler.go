package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/cart", h.get)
	app.Post("/api/cart", h.add)
	app.Put("/api/cart/:productId<[0-9]+>", h.setQuantity)
	app.Delete("/api/cart/:productId<[0-9]+>", h.remove)
	app.Delete("/api/cart", h.clear)
}

func (h *Handler) get(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "authentication required"))
	}

	lines, subtotal, err := h.service.Get(c.Context(), actor.ID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(lines),
		"items":    lines,
		"subtotal": subtotal,
	})
}

type addRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (h *Handler) add(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "authentication required"))
	}

	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid request body"))
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	if err := h.service.Add(actor.ID, payload.ProductID, payload.Quantity); err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Item added to cart",
	})
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) setQuantity(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "authentication required"))
	}

	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid product id"))
	}

	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid request body"))
	}

	if err := h.service.SetQuantity(actor.ID, productID, payload.Quantity); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Quantity updated",
	})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "authentication required"))
	}

	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid product id"))
	}

	if err := h.service.Remove(actor.ID, productID); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item removed from cart",
	})
}

func (h *Handler) clear(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "authentication required"))
	}

	if err := h.service.Clear(actor.ID); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart cleared",
	})
}
