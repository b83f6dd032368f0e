package user

import (
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
)

type Handler struct {
	service *Service
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/auth/register", h.register)
	app.Post("/api/auth/login", h.login)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/auth/profile", h.getProfile)
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid request body"))
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		return apperr.Respond(c, apperr.New(apperr.Validation, "name, email and password are required"))
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Register(User{
		Name:      payload.Name,
		Email:     payload.Email,
		Password:  payload.Password,
		Phone:     payload.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    sanitizeUser(created),
	})
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "invalid request body"))
	}

	u, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "invalid email or password",
		})
	}

	claims := jwt.MapClaims{
		"user_id":       u.ID,
		"email":         u.Email,
		"is_admin":      u.IsAdmin,
		"is_privileged": u.IsPrivileged,
		"exp":           time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    sanitizeUser(u),
		"token":   signed,
	})
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	actor, err := ActorFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	u, err := h.service.GetByID(actor.ID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": sanitizeUser(u)})
}

// Actor is the authenticated caller as seen by downstream handlers. Only the
// ID and the two boolean gates are ever consumed outside this package.
type Actor struct {
	ID           int
	IsAdmin      bool
	IsPrivileged bool
}

// ActorFromCtx extracts the caller from the JWT placed in ctx locals by the
// jwt middleware.
func ActorFromCtx(c *fiber.Ctx) (Actor, error) {
	u := c.Locals("user")
	if u == nil {
		return Actor{}, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return Actor{}, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, fiber.ErrUnauthorized
	}

	actor := Actor{}
	switch v := claims["user_id"].(type) {
	case float64:
		actor.ID = int(v)
	case int:
		actor.ID = v
	case int64:
		actor.ID = int(v)
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return Actor{}, fiber.ErrUnauthorized
		}
		actor.ID = id
	default:
		return Actor{}, fiber.ErrUnauthorized
	}

	if v, ok := claims["is_admin"].(bool); ok {
		actor.IsAdmin = v
	}
	if v, ok := claims["is_privileged"].(bool); ok {
		actor.IsPrivileged = v
	}
	return actor, nil
}
