package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/domain/role"
	"github.com/jhoicas/restaurante-api/pkg/hostutil"
)

// Cookies de la sesión de personal.
const (
	StaffCookie      = "staff_role"
	ActiveRoleCookie = "active_role"
)

// LocalResolution clave en c.Locals con el auth.Resolution de la petición.
const LocalResolution = "role_resolution"

// requestHost host destino: primer X-Forwarded-Host o Host.
func requestHost(c *fiber.Ctx) string {
	if h := hostutil.FirstValue(c.Get(fiber.HeaderXForwardedHost)); h != "" {
		return h
	}
	return string(c.Request().Host())
}

// SessionMiddleware resuelve los roles de la petición. Una cookie de personal
// alterada o vencida se trata como ausente.
func SessionMiddleware(codec ports.RoleCookieCodec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var staff role.Role
		if v := c.Cookies(StaffCookie); v != "" {
			if r, err := codec.Decode(v); err == nil {
				staff = r
			}
		}
		c.Locals(LocalResolution, auth.Resolve(requestHost(c), staff, c.Cookies(ActiveRoleCookie)))
		return c.Next()
	}
}

// GetResolution devuelve la resolución de roles (solo cliente si no pasó por SessionMiddleware).
func GetResolution(c *fiber.Ctx) auth.Resolution {
	if res, ok := c.Locals(LocalResolution).(auth.Resolution); ok {
		return res
	}
	return auth.Resolve("", 0, "")
}

// RequireRoles autoriza la ruta para allowList. Sin sesión de personal en una
// ruta solo de personal responde 401; con sesión insuficiente 403.
func RequireRoles(allowList ...role.Role) fiber.Handler {
	staffOnly := !role.Set(allowList).Contains(role.Customer)
	return func(c *fiber.Ctx) error {
		res := GetResolution(c)
		if res.Permits(allowList...) {
			return c.Next()
		}
		if staffOnly && !res.HasStaffRole() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "se requiere sesión de personal"})
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol actual no tiene acceso a esta acción"})
	}
}
