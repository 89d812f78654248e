package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Identity is resolved by the auth layer in front of this service; it
// passes the caller through as headers. These middlewares only read them.
const (
	headerUserID = "X-User-ID"
	headerAdmin  = "X-Admin"

	ctxUserID = "user_id"
)

// RequireUser rejects requests without an authenticated user id.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.GetHeader(headerUserID), 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(ctxUserID, id)
		c.Next()
	}
}

// RequireAdmin rejects requests that are not flagged as operator calls.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(headerAdmin) != "true" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}
