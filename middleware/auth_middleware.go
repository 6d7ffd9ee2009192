package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/api/auth"
)

// NotFoundRedirect is where the page guard sends unauthenticated callers.
// Redirecting instead of returning 401 keeps the admin surface from being
// discoverable by probing.
const NotFoundRedirect = "/not-found"

// APIAuthRequired gates the admin JSON routes on the shared-secret cookie,
// accepting the fallback cookie name for sessions set by older deployments.
// Every failure mode maps to the same 401 body.
func APIAuthRequired(strategy auth.TokenStrategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(auth.CookieAPISession)
		if err != nil || value == "" {
			value, _ = c.Cookie(auth.CookieAPISessionFallback)
		}

		if _, err := strategy.Validate(value, time.Now()); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// PageAuthRequired gates admin page navigation on the timestamped cookie.
func PageAuthRequired(strategy auth.TokenStrategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(auth.CookiePageAuth)
		if err != nil {
			c.Redirect(http.StatusFound, NotFoundRedirect)
			c.Abort()
			return
		}

		if _, err := strategy.Validate(value, time.Now()); err != nil {
			c.Redirect(http.StatusFound, NotFoundRedirect)
			c.Abort()
			return
		}
		c.Next()
	}
}
