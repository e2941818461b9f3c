package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Capability names an action that only some users may perform
type Capability string

// CapabilityManageUsers covers listing, creating, editing and deleting users
const CapabilityManageUsers Capability = "manage_users"

// Authorizer decides capabilities from a configured set of admin usernames
type Authorizer struct {
	admins map[string]struct{}
}

// NewAuthorizer grants every capability to the given usernames
func NewAuthorizer(adminUsers []string) *Authorizer {
	admins := make(map[string]struct{}, len(adminUsers))
	for _, name := range adminUsers {
		if name = strings.TrimSpace(name); name != "" {
			admins[name] = struct{}{}
		}
	}
	return &Authorizer{admins: admins}
}

// Can reports whether username holds capability
func (a *Authorizer) Can(username string, capability Capability) bool {
	if a == nil {
		return false
	}
	switch capability {
	case CapabilityManageUsers:
		_, ok := a.admins[username]
		return ok
	}
	return false
}

// RequireCapability aborts with 403 unless the authenticated user holds
// capability. It must run after RequireAuth.
func RequireCapability(authz *Authorizer, capability Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := CurrentUsername(c)
		if username == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !authz.Can(username, capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
			return
		}
		c.Next()
	}
}
