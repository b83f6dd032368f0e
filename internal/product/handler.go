package product

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/imagestore"
	"github.com/novarajewels/jewellery-backend/internal/user"
)

type Handler struct {
	service *Service
	images  imagestore.Store
	log     *zap.SugaredLogger
}

func NewHandler(service *Service, images imagestore.Store, log *zap.SugaredLogger) *Handler {
	return &Handler{service: service, images: images, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products", h.list)
	app.Get("/api/products/random", h.random)
	app.Get("/api/products/:id<[0-9]+>", h.get)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/products", h.create)
	app.Put("/api/products/:id<[0-9]+>", h.update)
	app.Delete("/api/products/:id<[0-9]+>", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	f := Filter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if v := c.Query("inStock"); v != "" {
		inStock := v == "true"
		f.InStock = &inStock
	}

	products, ratePerGram, err := h.service.List(c.Context(), f)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"count":       len(products),
		"silverPrice": ratePerGram,
		"products":    products,
	})
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid product id"))
	}

	p, ratePerGram, err := h.service.Get(c.Context(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"silverPrice": ratePerGram,
		"product":     p,
	})
}

func (h *Handler) random(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	products, err := h.service.Random(c.Context(), limit)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(products),
		"products": products,
	})
}

// parsePayload reads the product fields from either a JSON body or a
// multipart form (the admin panel uploads images alongside the fields).
func parsePayload(c *fiber.Ctx) (Product, error) {
	var p Product
	if err := c.BodyParser(&p); err == nil && p.Name != "" {
		return p, nil
	}

	p = Product{
		Name:        c.FormValue("itemName"),
		Code:        c.FormValue("itemCode"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
	}
	p.BasePrice, _ = strconv.ParseFloat(c.FormValue("basePrice"), 64)
	p.MakingChargeRate, _ = strconv.ParseFloat(c.FormValue("makingChargeRate"), 64)
	p.InStock = c.FormValue("inStock", "true") != "false"
	p.DeliveryType = c.FormValue("deliveryType", "ready-to-ship")
	if raw := c.FormValue("weight"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.Weight); err != nil {
			return Product{}, apperr.New(apperr.Validation, "invalid weight payload")
		}
	}
	return p, nil
}

// uploadImages stores every attached file; on any failure the already
// stored files are removed so a rejected create leaves nothing behind.
func (h *Handler) uploadImages(c *fiber.Ctx) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}
	files := form.File["images"]
	if len(files) > MaxImages {
		return nil, apperr.New(apperr.Validation, "maximum 5 images allowed per product")
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		f, err := file.Open()
		if err != nil {
			h.cleanupImages(c, urls)
			return nil, apperr.Wrap(apperr.External, "image upload failed", err)
		}
		url, err := h.images.Upload(c.Context(), file.Filename, f)
		f.Close()
		if err != nil {
			h.cleanupImages(c, urls)
			return nil, apperr.Wrap(apperr.External, "image upload failed", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (h *Handler) cleanupImages(c *fiber.Ctx, urls []string) {
	for _, url := range urls {
		if err := h.images.Delete(c.Context(), url); err != nil {
			h.log.Warnw("image cleanup failed", "url", url, "error", err)
		}
	}
}

func (h *Handler) create(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	p, err := parsePayload(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	uploaded, err := h.uploadImages(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	if len(uploaded) > 0 {
		p.Images = uploaded
	}

	created, err := h.service.Create(c.Context(), p)
	if err != nil {
		// a rejected create must not leave orphan uploads behind
		h.cleanupImages(c, uploaded)
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"product": created,
	})
}

func (h *Handler) update(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid product id"))
	}

	p, err := parsePayload(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	uploaded, err := h.uploadImages(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	if len(uploaded) > 0 {
		p.Images = uploaded
	} else if len(p.Images) == 0 {
		if existing, err := h.service.GetByID(id); err == nil {
			p.Images = existing.Images
		}
	}

	updated, err := h.service.Update(c.Context(), id, p)
	if err != nil {
		h.cleanupImages(c, uploaded)
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"product": updated,
	})
}

func (h *Handler) delete(c *fiber.Ctx) error {
	actor, err := user.ActorFromCtx(c)
	if err != nil || !actor.IsAdmin {
		return apperr.Respond(c, apperr.New(apperr.Forbidden, "admin access required"))
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid product id"))
	}

	deleted, err := h.service.Delete(id)
	if err != nil {
		return apperr.Respond(c, err)
	}

	// image removal is best-effort during delete; log and continue
	h.cleanupImages(c, deleted.Images)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted",
	})
}
