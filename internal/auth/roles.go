package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/pkg/util/errorutil"
)

// Role is the coarse permission level carried in a token.
type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleStaff
}

// RequireStaff ensures the caller is support staff.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return errorutil.NewUnauthorized("authentication required")
		}
		if principal.Role != RoleStaff {
			return errorutil.NewForbidden("staff role required")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures caller is authenticated (user or staff).
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return errorutil.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
