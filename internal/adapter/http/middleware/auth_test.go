package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clientdesk/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims IdentityClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func testRouter(am *AuthMiddleware) (*gin.Engine, *usecase.Identity) {
	var captured usecase.Identity
	r := gin.New()
	r.GET("/protected", am.Authenticate(), func(c *gin.Context) {
		ident, _ := IdentityFromContext(c)
		captured = ident
		c.Status(http.StatusOK)
	})
	r.GET("/admin", am.Authenticate(), am.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, &captured
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(testSecret)

	t.Run("missing header", func(t *testing.T) {
		r, _ := testRouter(am)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		r, _ := testRouter(am)
		token := signToken(t, IdentityClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		}, "other-secret")
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		r, _ := testRouter(am)
		token := signToken(t, IdentityClaims{Email: "user@example.com"}, testSecret)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		r, _ := testRouter(am)
		token := signToken(t, IdentityClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}, testSecret)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("valid token resolves identity", func(t *testing.T) {
		r, captured := testRouter(am)
		token := signToken(t, IdentityClaims{
			Email:   "user@example.com",
			Name:    "User One",
			IsAdmin: false,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}, testSecret)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if captured.UserID != "user-1" || captured.Email != "user@example.com" || captured.IsAdmin {
			t.Fatalf("unexpected identity: %+v", captured)
		}
	})
}

func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(testSecret)

	t.Run("non-admin denied", func(t *testing.T) {
		r, _ := testRouter(am)
		token := signToken(t, IdentityClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		}, testSecret)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("admin allowed", func(t *testing.T) {
		r, _ := testRouter(am)
		token := signToken(t, IdentityClaims{
			IsAdmin:          true,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "admin-1"},
		}, testSecret)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
