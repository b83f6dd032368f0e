package rate

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/user"
)

type Handler struct {
	service *Service
	fetcher *Fetcher
	log     *zap.SugaredLogger
}

func NewHandler(service *Service, fetcher *Fetcher, log *zap.SugaredLogger) *Handler {
	return &Handler{service: service, fetcher: fetcher, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/silver-price", h.getCurrent)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Put("/api/silver-price", h.updateManual)
	app.Post("/api/silver-price/fetch", h.fetchNow)
	app.Get("/api/silver-price/history", h.getHistory)
}

func (h *Handler) getCurrent(c *fiber.Ctx) error {
	latest, err := h.service.GetLatest(c.Context())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"pricePerGram": latest.PricePerGram,
		"currency":     latest.Currency,
		"source":       latest.Source,
		"lastUpdated":  latest.CapturedAt,
	})
}

type updateRateRequest struct {
	PricePerGram float64 `json:"pricePerGram"`
}

func (h *Handler) updateManual(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	payload := new(updateRateRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid request body"))
	}

	recorded, err := h.service.Record(c.Context(), payload.PricePerGram, SourceManual)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Silver price updated",
		"pricePerGram": recorded.PricePerGram,
		"lastUpdated":  recorded.CapturedAt,
		"source":       recorded.Source,
	})
}

// fetchNow is the admin-triggered variant of the automatic refresh. It goes
// through the exact same Record validation as the cron job.
func (h *Handler) fetchNow(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	price, err := h.fetcher.FetchPricePerGram(c.Context())
	if err != nil {
		h.log.Warnw("manual rate fetch failed", "error", err)
		return apperr.Respond(c, err)
	}

	recorded, err := h.service.Record(c.Context(), price, SourceAutomatic)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Silver price fetched from provider",
		"pricePerGram": recorded.PricePerGram,
		"lastUpdated":  recorded.CapturedAt,
		"source":       recorded.Source,
	})
}

func (h *Handler) getHistory(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	history, err := h.service.History(limit)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(history),
		"history": history,
	})
}
