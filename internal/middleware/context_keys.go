package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the acting user's ID in the Gin context.
const userIDKey = contextKey("userID")

// ActorHeader names the header carrying the acting user's ID. It is recorded
// in audit fields only; requests are not authenticated.
const ActorHeader = "X-User-ID"

// AnonymousActor is recorded when no actor header is sent.
const AnonymousActor = "anonymous"

// ActorMiddleware stores the acting user's ID in the Gin context.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(ActorHeader))
		if actor == "" {
			actor = AnonymousActor
		}
		c.Set(string(userIDKey), actor)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
