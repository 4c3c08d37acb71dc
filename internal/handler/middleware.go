package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/naijatruths892-ship-it/Naija-truths/pkg/auth"
)

const claimsContextKey = "auth_claims"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func claimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// RequireUser rejects requests without a valid session token.
func RequireUser(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireAdmin additionally demands the admin custom claim. A valid
// session without it gets 403, not 401: the account exists, the
// access policy is what denies it.
func RequireAdmin(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}
		if !claims.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}
