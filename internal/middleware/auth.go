package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/reddit-api/internal/apperror"
	"github.com/emilythestrangee/reddit-api/internal/auth"
)

const userIDKey = "user_id"

// RequireAuth validates the Bearer access token and stores the subject
// user id in the context for handlers to pick up.
func RequireAuth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			c.Error(apperror.ErrAuthenticationFailed)
			c.Abort()
			return
		}

		userID, err := issuer.Verify(token)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id set by RequireAuth.
func CurrentUserID(c *gin.Context) int {
	return c.GetInt(userIDKey)
}
