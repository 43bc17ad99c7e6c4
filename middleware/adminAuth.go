package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextAdminUID = "adminUID"
	ContextIsAdmin  = "isAdmin"
)

// TokenVerifier checks Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// adminToken reads the bearer token, or access_token for websocket upgrades that cannot set headers.
func adminToken(c *gin.Context) string {
	if t := bearerToken(c); t != "" {
		return t
	}
	return c.Query("access_token")
}

// verifyAdmin reports whether the request carries a valid admin token. With auth disabled every
// request is an admin.
func verifyAdmin(c *gin.Context, verifier TokenVerifier, enabled bool) bool {
	if !enabled {
		c.Set(ContextIsAdmin, true)
		return true
	}
	token := adminToken(c)
	if token == "" || verifier == nil {
		return false
	}
	decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
	if err != nil {
		zap.L().Debug("Admin token rejected", zap.Error(err))
		return false
	}
	c.Set(ContextAdminUID, decoded.UID)
	c.Set(ContextIsAdmin, true)
	return true
}

// FirebaseAdminAuth requires a Firebase ID token on admin routes when enabled.
func FirebaseAdminAuth(verifier TokenVerifier, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !verifyAdmin(c, verifier, enabled) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized admin access"})
			return
		}
		c.Next()
	}
}

// OptionalAdmin marks admin requests without rejecting anyone else.
func OptionalAdmin(verifier TokenVerifier, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enabled && adminToken(c) == "" {
			c.Next()
			return
		}
		verifyAdmin(c, verifier, enabled)
		c.Next()
	}
}
