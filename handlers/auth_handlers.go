package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"portfolio/api/auth"
	"portfolio/api/models"
)

type AuthHandlers struct {
	Auth *auth.Authenticator
	log  *zerolog.Logger
}

func NewAuthHandlers(authenticator *auth.Authenticator, log *zerolog.Logger) *AuthHandlers {
	return &AuthHandlers{Auth: authenticator, log: log}
}

// setCookie applies the attributes shared by every admin cookie: HTTP-only,
// SameSite=Strict, path "/". Clearing reuses the same path so the browser
// actually drops the cookie.
func setCookie(c *gin.Context, ck auth.Cookie) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(ck.Name, ck.Value, ck.MaxAge, "/", "", false, true)
}

// Login validates the admin credentials and sets the session cookies. The
// 401 body never says which field was wrong.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Auth.Authenticate(req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrNotConfigured) {
			h.log.Error().Msg("admin login attempted but credentials are not configured")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
			return
		}
		h.log.Warn().Str("username", req.Username).Msg("failed admin login")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	for _, ck := range h.Auth.IssueCookies(time.Now()) {
		setCookie(c, ck)
	}

	h.log.Info().Msg("admin logged in")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout clears every admin cookie. Serves both POST /api/admin/logout and
// DELETE /api/admin/auth.
func (h *AuthHandlers) Logout(c *gin.Context) {
	for _, ck := range h.Auth.ClearCookies() {
		setCookie(c, ck)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Status reports whether the caller holds a valid admin credential. The
// timestamped cookie carries its own expiry, so it is preferred for the
// expiresIn/expiresAt fields; the shared-secret cookie yields a bare
// authenticated flag.
func (h *AuthHandlers) Status(c *gin.Context) {
	now := time.Now()

	if value, err := c.Cookie(auth.CookiePageAuth); err == nil {
		if sess, err := h.Auth.Page.Validate(value, now); err == nil {
			expiresIn := int64(sess.ExpiresAt.Sub(now) / time.Second)
			c.JSON(http.StatusOK, models.StatusResponse{
				Authenticated: true,
				ExpiresIn:     &expiresIn,
				ExpiresAt:     sess.ExpiresAt.UTC().Format(time.RFC3339),
			})
			return
		}
	}

	value, err := c.Cookie(auth.CookieAPISession)
	if err != nil || value == "" {
		value, _ = c.Cookie(auth.CookieAPISessionFallback)
	}
	if _, err := h.Auth.Secret.Validate(value, now); err == nil {
		c.JSON(http.StatusOK, models.StatusResponse{Authenticated: true})
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Authenticated: false})
}
