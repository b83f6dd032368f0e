package order

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
	app.Post("/api/orders", h.create)
	app.Get("/api/orders/my", h.listMine)
	app.Get("/api/orders/:id<[0-9]+>", h.get)

	app.Get("/api/orders", h.listAll)
	app.Put("/api/orders/:id<[0-9]+>", h.update)
	app.Delete("/api/orders/:id<[0-9]+>", h.delete)
}

func (h *Handler) create(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "authentication required"))
	}

	payload := new(CreateRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid request body"))
	}

	created, err := h.service.Create(c.Context(), actor.ID, *payload)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"order":   created,
	})
}

func (h *Handler) listMine(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "authentication required"))
	}

	orders, err := h.service.ListByUser(actor.ID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(orders),
		"orders":  orders,
	})
}

// get serves a single order to its owner or to an admin.
func (h *Handler) get(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "authentication required"))
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid order id"))
	}

	o, err := h.service.Get(id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	if !actor.IsAdmin && o.UserID != actor.ID {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "not your order"))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"order":   o,
	})
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	orders, err := h.service.ListAll()
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(orders),
		"orders":  orders,
	})
}

func (h *Handler) update(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid order id"))
	}

	payload := new(UpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid request body"))
	}

	updated, err := h.service.Update(id, *payload)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"order":   updated,
	})
}

func (h *Handler) delete(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid order id"))
	}
	if err := h.service.Delete(id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order deleted",
	})
}
