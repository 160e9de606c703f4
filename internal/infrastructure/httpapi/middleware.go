package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"intelhub/internal/domain"
	"intelhub/internal/ports"
)

const sessionKey = "session"

// TokenParser verifies a bearer token and returns the account email.
type TokenParser interface {
	Parse(raw string) (string, error)
}

// authMiddleware resolves the bearer token into an explicit Session object
// on the request context. Handlers read the session; nothing is ambient.
func authMiddleware(tokens TokenParser, users ports.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		email, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := users.Get(c.Request.Context(), email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown account"})
			return
		}

		c.Set(sessionKey, domain.Session{Email: user.Email, Interests: user.Interests})
		c.Next()
	}
}

func session(c *gin.Context) domain.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(domain.Session); ok {
			return s
		}
	}
	return domain.Session{}
}
