package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"portfolio/api/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAPIGuardedRouter(secret string) *gin.Engine {
	r := gin.New()
	strategy := auth.NewSecretStrategy(secret, 24*time.Hour)
	r.GET("/api/admin/projects", APIAuthRequired(strategy), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func TestAPIAuthRequired(t *testing.T) {
	r := newAPIGuardedRouter("the-secret")

	t.Run("no cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/admin/projects", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	})

	t.Run("wrong cookie value", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/admin/projects", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieAPISession, Value: "nope"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("matching cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/admin/projects", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieAPISession, Value: "the-secret"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("fallback cookie name accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/admin/projects", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieAPISessionFallback, Value: "the-secret"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unconfigured secret rejects everything", func(t *testing.T) {
		unconfigured := newAPIGuardedRouter("")
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/admin/projects", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieAPISession, Value: ""})
		unconfigured.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func newPageGuardedRouter() *gin.Engine {
	r := gin.New()
	strategy := auth.NewTimestampStrategy(24 * time.Hour)
	r.GET("/admin", PageAuthRequired(strategy), func(c *gin.Context) {
		c.String(http.StatusOK, "admin")
	})
	return r
}

func TestPageAuthRequired_RedirectsInvalid(t *testing.T) {
	r := newPageGuardedRouter()

	invalid := []struct {
		name  string
		value string
	}{
		{"missing cookie", ""},
		{"malformed", "garbage"},
		{"wrong marker", fmt.Sprintf("logged-in.%d", time.Now().UnixMilli())},
		{"expired", fmt.Sprintf("authenticated.%d", time.Now().Add(-25*time.Hour).UnixMilli())},
	}

	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/admin", nil)
			if tc.value != "" {
				req.AddCookie(&http.Cookie{Name: auth.CookiePageAuth, Value: tc.value})
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, NotFoundRedirect, w.Header().Get("Location"))
		})
	}
}

func TestPageAuthRequired_AllowsFreshToken(t *testing.T) {
	r := newPageGuardedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	token := fmt.Sprintf("authenticated.%d", time.Now().Add(-time.Hour).UnixMilli())
	req.AddCookie(&http.Cookie{Name: auth.CookiePageAuth, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
