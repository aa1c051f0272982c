package middleware

import (
	"github.com/gin-gonic/gin"

	"aarogya-ai/internal/app"
	"aarogya-ai/internal/model"
	"aarogya-ai/internal/transport/http/response"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "session_token"

	ContextUserKey = "current_user"
)

// AuthSession authenticates the request from its session cookie and stores
// the resolved user on the context.
func AuthSession(authService *app.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			response.Error(c, 401, response.CodeUnauthorized, "not authenticated")
			c.Abort()
			return
		}

		user, authErr := authService.Authenticate(token)
		if authErr != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or expired session")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed by AuthSession.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	userAny, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := userAny.(*model.User)
	return user, ok
}
