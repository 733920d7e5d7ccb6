package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserID    = "userId"
	requestIDKey = "X-Request-ID"
)

// requestIDMiddleware tags each request with a correlation ID, honoring one
// supplied by the caller.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDKey)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Writer.Header().Set(requestIDKey, id)
	c.Next()
}

// userIdMiddleware requires a valid bearer token and stores the user ID in
// the Gin context.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing or malformed Authorization header",
		})
		return
	}

	userId, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(ctxUserID, userId)
	c.Next()
}

// optionalAuthMiddleware sets the user ID when a valid bearer token is
// present and lets the request through as a guest otherwise. Routes that
// serve both guests and signed-in users (campaign detail, donating) use it.
func (h *Handler) optionalAuthMiddleware(c *gin.Context) {
	if token, ok := bearerToken(c); ok {
		if userId, err := h.services.ParseToken(token); err == nil {
			c.Set(ctxUserID, userId)
		}
	}
	c.Next()
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// viewerID returns the authenticated user's ID, or nil for guests.
func viewerID(c *gin.Context) *int64 {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return nil
	}
	id, ok := v.(int64)
	if !ok {
		return nil
	}
	return &id
}
