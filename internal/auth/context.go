package auth

import "github.com/gin-gonic/gin"

const userIDKey = "userID"

// SetUserID stores the authenticated user on the request context.
func SetUserID(c *gin.Context, userID string) {
	c.Set(userIDKey, userID)
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
