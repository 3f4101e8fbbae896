package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pasta_admin/internal/middleware"
	"pasta_admin/internal/models"
	"pasta_admin/internal/services"
)

type AuthHandler struct {
	authService  services.AuthService
	cookieSecure bool
	cookieMaxAge int
}

// NewAuthHandler keeps the session cookie's max-age in lockstep with the
// server-side session TTL so the browser drops the cookie when the
// session itself would have expired.
func NewAuthHandler(authService services.AuthService, cookieSecure bool, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieSecure: cookieSecure,
		cookieMaxAge: int(sessionTTL.Seconds()),
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, sessionID, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// All three failure reasons collapse into one message so the
		// response does not reveal whether the username exists.
		if errors.Is(err, services.ErrUserNotFound) ||
			errors.Is(err, services.ErrBadCredentials) ||
			errors.Is(err, services.ErrInactiveAccount) {
			log.Printf("login rejected for %q: %v", req.Username, err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, sessionID, h.cookieMaxAge, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(middleware.SessionCookie); err == nil {
		if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
			log.Printf("logout: destroy session failed: %v", err)
		}
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Register provisions a dashboard account. Super admin only; the new
// user is not logged in by this call.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string      `json:"username" binding:"required"`
		Password string      `json:"password" binding:"required"`
		Name     string      `json:"name"`
		Role     models.Role `json:"role"`
		Active   *bool       `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
		Active:   req.Active,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}
