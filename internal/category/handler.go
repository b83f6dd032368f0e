package category

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
	app.Get("/api/categories", h.list)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/categories", h.create)
	app.Delete("/api/categories/:id<[0-9]+>", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	categories, err := h.service.List()
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"count":      len(categories),
		"categories": categories,
	})
}

func (h *Handler) create(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	payload := new(Category)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid request body"))
	}

	created, err := h.service.Create(*payload)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"category": created,
	})
}

func (h *Handler) delete(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid category id"))
	}
	if err := h.service.Delete(id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Category deleted",
	})
}
