package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/barberbook/booking-api/internal/identity"
)

const ContextPrincipal = "principal"

// AuthMiddleware verifies the bearer token against the identity provider on
// every request and stores the resulting principal in the gin context.
func AuthMiddleware(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_authorization_header"})
			return
		}

		principal, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token"})
			return
		}

		c.Set(ContextPrincipal, principal)
		c.Next()
	}
}

// RequireRole gates a route on a role from the verified token's role set.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := MustPrincipal(c)
		if principal == nil || !principal.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error_code": "insufficient_role"})
			return
		}
		c.Next()
	}
}

// MustPrincipal returns the principal set by AuthMiddleware, nil outside it.
func MustPrincipal(c *gin.Context) *identity.Principal {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil
	}
	principal, _ := v.(*identity.Principal)
	return principal
}
