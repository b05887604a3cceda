package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Role is the caller's privilege level within their pharmacy.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleCashier  Role = "CASHIER"
	RoleReadOnly Role = "READONLY"
)

var roleRank = map[Role]int{
	RoleReadOnly: 1,
	RoleCashier:  2,
	RoleManager:  3,
	RoleAdmin:    4,
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants every privilege of min.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min] && r.IsValid()
}

// RequireRole aborts with 403 unless the authenticated caller holds min or higher.
// Must run after AuthMiddleware.
func RequireRole(min Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRoleFromContext(c)
		if !ok || !role.AtLeast(min) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Insufficient role",
				slog.String("role", string(role)),
				slog.String("required", string(min)),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role for this operation"})
			return
		}
		c.Next()
	}
}
