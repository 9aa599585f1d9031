package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

const principalKey = "auth_principal"

// Principal is the authenticated caller, built once per request from token
// claims and threaded explicitly into authorization decisions.
type Principal struct {
	UserID   int64
	Email    string
	Role     domain.RoleName
	ClientID *int64
}

// StorePrincipal attaches the principal to the request.
func StorePrincipal(c *fiber.Ctx, principal *Principal) {
	c.Locals(principalKey, principal)
}

// PrincipalFromContext retrieves the authenticated entity, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
