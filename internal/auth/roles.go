package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/lumis/servicedesk/internal/domain"
)

// RequireStaff rejects dealer accounts; internal staff only.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if principal.User.IsDealer() {
			return fiber.NewError(http.StatusForbidden, "internal staff required")
		}
		return c.Next()
	}
}

// RequireDepartment ensures the caller belongs to one of the departments.
func RequireDepartment(allowed ...domain.Department) fiber.Handler {
	allowedSet := make(map[domain.Department]struct{}, len(allowed))
	for _, dept := range allowed {
		allowedSet[dept] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.Department]; !exists {
			return fiber.NewError(http.StatusForbidden, "insufficient department")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures the caller is authenticated.
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
