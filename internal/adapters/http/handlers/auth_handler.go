package handlers

import (
	"errors"
	"strings"
	"time"

	"montsion-scolarite/internal/adapters/http/middleware"
	"montsion-scolarite/internal/config"
	"montsion-scolarite/internal/core/domain"
	"montsion-scolarite/internal/core/services"
	"montsion-scolarite/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateProfileRequest represents account-creation request body
type CreateProfileRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login handles user login
// @Summary Login user
// @Description Authenticate a user and open a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Response
// @Router /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Corps de requête invalide")
	}
	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "Nom d'utilisateur et mot de passe requis")
	}

	input := &services.LoginInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Identifiants incorrects")
		case errors.Is(err, domain.ErrStorage):
			return response.InternalServerError(c, "Échec de lecture des comptes")
		default:
			return response.InternalServerError(c, "Échec de la connexion")
		}
	}

	h.setSessionCookie(c, result.SessionToken)

	return c.JSON(fiber.Map{
		"success": true,
		"user":    result.Identity,
	})
}

// Logout clears the session cookie
// @Summary Logout user
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)
	return response.Success(c, "Déconnexion réussie", nil)
}

// CreateProfile handles account creation
// @Summary Create a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body CreateProfileRequest true "Account data"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/create-profile [post]
func (h *AuthHandler) CreateProfile(c *fiber.Ctx) error {
	var req CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Corps de requête invalide")
	}
	if req.Username == "" {
		return response.BadRequest(c, "Nom d'utilisateur requis")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Mot de passe requis")
	}

	input := &services.CreateProfileInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
		Role:     req.Role,
	}

	if err := h.authService.CreateProfile(c.Context(), input); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, "Utilisateur existe déjà")
		case errors.Is(err, domain.ErrStorage):
			return response.InternalServerError(c, "Échec d'écriture des comptes")
		default:
			return response.InternalServerError(c, "Échec de création du profil")
		}
	}

	return response.Success(c, "Profil créé avec succès", nil)
}

// Me returns the current authenticated identity
// @Summary Get current user
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Response
// @Router /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	if identity.IsZero() {
		return response.Unauthorized(c, "Non autorisé")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    identity,
	})
}

// setSessionCookie sets the session-token cookie
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   h.cfg.Session.TokenMins * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearSessionCookie clears the session-token cookie
func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
