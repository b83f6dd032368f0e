package payment

import (
	"github.com/gofiber/fiber/v2"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/middleware"
	"github.com/novarajewels/jewellery-backend/internal/user"
)

func verifyOutcome(err error) string {
	switch apperr.KindOf(err) {
	case apperr.Integrity:
		return "rejected"
	case apperr.Conflict:
		return "conflict"
	default:
		return "error"
	}
}

type Handler struct {
	service *Service
	keyID   string
}

func NewHandler(service *Service, keyID string) *Handler {
	return &Handler{service: service, keyID: keyID}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/payment/create-order", h.createOrder)
	app.Post("/api/payment/verify", h.verify)
	app.Post("/api/payment/failed", h.failed)
}

type createOrderRequest struct {
	OrderID int `json:"orderId"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "authentication required"))
	}

	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid request body"))
	}

	gw, err := h.service.CreateGatewayOrder(actor, payload.OrderID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"keyId":   h.keyID,
		"order":   gw,
	})
}

func (h *Handler) verify(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "authentication required"))
	}

	payload := new(VerifyRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid request body"))
	}

	verified, err := h.service.Verify(actor, *payload)
	if err != nil {
		middleware.RecordPaymentVerification(verifyOutcome(err))
		return apperr.Respond(c, err)
	}
	middleware.RecordPaymentVerification("completed")
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment verified",
		"order":   verified,
	})
}

func (h *Handler) failed(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "authentication required"))
	}

	payload := new(FailureRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid request body"))
	}

	updated, err := h.service.ReportFailure(actor, *payload)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment failure recorded",
		"order":   updated,
	})
}
