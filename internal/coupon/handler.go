package coupon

import (
	"strconv"
	"time"

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
	// pre-checkout validation, side-effect free
	app.Post("/api/coupons/validate", h.validate)

	app.Get("/api/coupons", h.list)
	app.Post("/api/coupons", h.create)
	app.Delete("/api/coupons/:id<[0-9]+>", h.delete)
}

type validateRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

func (h *Handler) validate(c *fiber.Ctx) error {
	payload := new(validateRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid request body"))
	}

	discount, err := h.service.Validate(payload.Code, payload.Subtotal, time.Now())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"discount": discount,
	})
}

func (h *Handler) list(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	coupons, err := h.service.List()
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(coupons),
		"coupons": coupons,
	})
}

func (h *Handler) create(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	payload := new(Coupon)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid request body"))
	}

	created, err := h.service.Create(*payload)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"coupon":  created,
	})
}

func (h *Handler) delete(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid coupon id"))
	}
	if err := h.service.Delete(id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Coupon deleted",
	})
}
