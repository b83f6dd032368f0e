package user

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	h := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := fiber.New()
	h.RegisterPublicRoutes(app)

	req := httptest.NewRequest("POST", "/api/auth/register",
		strings.NewReader(`{"name":"Asha","email":"asha@example.com","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if strings.Contains(string(body), "secret123") {
		t.Fatalf("password leaked in register response: %s", string(body))
	}

	// duplicate email is a conflict
	req2 := httptest.NewRequest("POST", "/api/auth/register",
		strings.NewReader(`{"name":"Asha","email":"asha@example.com","password":"secret123"}`))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", res2.StatusCode)
	}

	req3 := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"asha@example.com","password":"secret123"}`))
	req3.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for login, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), "token") {
		t.Fatalf("expected token in login response: %s", string(b3))
	}

	req4 := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"asha@example.com","password":"wrong"}`))
	req4.Header.Set("Content-Type", "application/json")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", res4.StatusCode)
	}
}

func TestRegister_NeverGrantsAdmin(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	s := NewService(repo)

	created, err := s.Register(User{Name: "Eve", Email: "eve@example.com", Password: "pw", IsAdmin: true, IsPrivileged: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.IsAdmin || created.IsPrivileged {
		t.Fatalf("registration must not grant admin or privilege flags: %+v", created)
	}
}
