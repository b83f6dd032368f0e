package review

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

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products/:productId<[0-9]+>/reviews", h.list)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/reviews", h.create)
	app.Delete("/api/reviews/:id<[0-9]+>", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid product id"))
	}

	reviews, average, err := h.service.ListByProduct(productID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"count":         len(reviews),
		"averageRating": average,
		"reviews":       reviews,
	})
}

type createRequest struct {
	ProductID int    `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "authentication required"))
	}

	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid request body"))
	}

	created, err := h.service.Create(Review{
		ProductID: payload.ProductID,
		UserID:    actor.ID,
		Rating:    payload.Rating,
		Comment:   payload.Comment,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"review":  created,
	})
}

func (h *Handler) delete(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "authentication required"))
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid review id"))
	}

	if err := h.service.Delete(id, actor.ID, actor.IsAdmin); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Review deleted",
	})
}
