package middleware

import (
	"net/http"
	"strings"

	"clientdesk/internal/usecase"
	"clientdesk/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const identityKey = "identity"

var (
	errMissingToken = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing or invalid bearer token", http.StatusUnauthorized)
	errAdminOnly    = pkg.NewDomainErrorSimple("FORBIDDEN", "Admin role required", http.StatusForbidden)
)

// IdentityClaims is the JWT payload issued by the identity provider.
type IdentityClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// AuthMiddleware resolves the caller identity from a bearer token.
//
// RequireAdmin is the single role policy shared by every admin-only
// route; handlers never re-check the role themselves.

type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

// Authenticate validates the bearer token and stores the resolved
// identity in the request context.
func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if !strings.HasPrefix(raw, "Bearer ") {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}

		claims := &IdentityClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(raw, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return am.secret, nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}

		c.Set(identityKey, usecase.Identity{
			UserID:  claims.Subject,
			Email:   claims.Email,
			Name:    claims.Name,
			IsAdmin: claims.IsAdmin,
		})
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the resolved identity is an admin.
// Must run after Authenticate.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFromContext(c)
		if !ok || !ident.IsAdmin {
			c.AbortWithStatusJSON(errAdminOnly.HTTPStatus, errAdminOnly.ToHTTPError())
			return
		}
		c.Next()
	}
}

// IdentityFromContext returns the identity stored by Authenticate.
func IdentityFromContext(c *gin.Context) (usecase.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return usecase.Identity{}, false
	}
	ident, ok := v.(usecase.Identity)
	return ident, ok
}
