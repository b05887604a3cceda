package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Keys used to store the authenticated caller in the request context.
const (
	userIDKey     = contextKey("userID")
	pharmacyIDKey = contextKey("pharmacyID")
	roleKey       = contextKey("role")
)

func stringFromContext(c *gin.Context, key contextKey) (string, bool) {
	if c.Request == nil {
		return "", false
	}
	val, ok := c.Request.Context().Value(key).(string)
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, userIDKey)
}

// GetPharmacyIDFromContext retrieves the pharmacy the caller acts for.
func GetPharmacyIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, pharmacyIDKey)
}

// GetRoleFromContext retrieves the caller's role.
func GetRoleFromContext(c *gin.Context) (Role, bool) {
	role, ok := stringFromContext(c, roleKey)
	return Role(role), ok
}

// withCaller stores the authenticated caller in ctx.
func withCaller(ctx context.Context, userID, pharmacyID string, role Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, pharmacyIDKey, pharmacyID)
	return context.WithValue(ctx, roleKey, string(role))
}
