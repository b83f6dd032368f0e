package carousel

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/imagestore"
	"github.com/novarajewels/jewellery-backend/internal/user"
)

type Handler struct {
	service *Service
	images  imagestore.Store
}

func NewHandler(service *Service, images imagestore.Store) *Handler {
	return &Handler{service: service, images: images}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/carousel", h.list)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/carousel/all", h.listAll)
	app.Post("/api/carousel", h.create)
	app.Put("/api/carousel/:id<[0-9]+>", h.update)
	app.Delete("/api/carousel/:id<[0-9]+>", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	slides, err := h.service.List()
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(slides),
		"slides":  slides,
	})
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	slides, err := h.service.ListAll()
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(slides),
		"slides":  slides,
	})
}

// parseSlide reads the slide from either JSON or a multipart form with an
// attached image file.
func (h *Handler) parseSlide(c *fiber.Ctx) (Slide, error) {
	var sl Slide
	if err := c.BodyParser(&sl); err == nil && sl.Title != "" {
		return sl, nil
	}

	sl = Slide{
		Title:    c.FormValue("title"),
		Subtitle: c.FormValue("subtitle"),
		ImageURL: c.FormValue("imageUrl"),
		LinkURL:  c.FormValue("linkUrl"),
		IsActive: c.FormValue("isActive", "true") != "false",
	}
	sl.SortOrder, _ = strconv.Atoi(c.FormValue("sortOrder"))

	file, err := c.FormFile("image")
	if err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return Slide{}, apperr.Wrap(apperr.External, "image upload failed", err)
		}
		defer f.Close()
		url, err := h.images.Upload(c.Context(), file.Filename, f)
		if err != nil {
			return Slide{}, apperr.Wrap(apperr.External, "image upload failed", err)
		}
		sl.ImageURL = url
	}
	return sl, nil
}

func (h *Handler) create(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	sl, err := h.parseSlide(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	created, err := h.service.Create(sl)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"slide":   created,
	})
}

func (h *Handler) update(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid slide id"))
	}

	sl, err := h.parseSlide(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	updated, err := h.service.Update(id, sl)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"slide":   updated,
	})
}

func (h *Handler) delete(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid slide id"))
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Slide deleted",
	})
}
