package wishlist

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
	app.Get("/api/wishlist", h.list)
	app.Post("/api/wishlist", h.add)
	app.Delete("/api/wishlist/:productId<[0-9]+>", h.remove)
}

func (h *Handler) list(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "authentication required"))
	}

	products, err := h.service.List(c.Context(), actor.ID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(products),
		"items":   products,
	})
}

type addRequest struct {
	ProductID int `json:"productId"`
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

	if err := h.service.Add(actor.ID, payload.ProductID); err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Item wishlisted",
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
		"message": "Item removed from wishlist",
	})
}
