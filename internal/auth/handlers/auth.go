package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"dxf-checker/internal/auth/models"
	"dxf-checker/internal/auth/repository"
	"dxf-checker/internal/auth/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Auth Handler
// ============================================================

type AuthHandler struct {
	repo     *repository.Repository
	sessions *service.SessionManager
}

func NewAuthHandler(repo *repository.Repository, sessions *service.SessionManager) *AuthHandler {
	return &AuthHandler{
		repo:     repo,
		sessions: sessions,
	}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	CreatedAt string `json:"created_at"`
}

// Login выдает простой токен по паре login/password.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	log.Printf("[AUTH] Login request")

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	var req loginRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	if req.Login == "" || req.Password == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "login and password required"})
	}

	user, err := h.repo.GetByCredentials(context.Background(), req.Login, req.Password)
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	token := h.sessions.Issue(user.ID)

	return c.JSON(loginResponse{
		Token: token,
		User:  mapUser(user),
	})
}

// GetUser возвращает данные пользователя.
func (h *AuthHandler) GetUser(c fiber.Ctx) error {
	userID, ok := h.authorize(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	targetID := c.Params("id")
	if targetID == "" || targetID != userID {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	}

	user, err := h.repo.GetByID(context.Background(), targetID)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}

	return c.JSON(mapUser(user))
}

// Logout снимает токен сессии.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	h.sessions.Revoke(strings.TrimPrefix(auth, "Bearer "))
	return c.JSON(fiber.Map{"status": "ok"})
}

// ============================================================
// Helpers
// ============================================================

func (h *AuthHandler) authorize(c fiber.Ctx) (string, bool) {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	userID, ok := h.sessions.Resolve(token)
	return userID, ok
}

func mapUser(u *models.User) userPayload {
	return userPayload{
		ID:        u.ID,
		Login:     u.Login,
		CreatedAt: u.CreatedAt,
	}
}
