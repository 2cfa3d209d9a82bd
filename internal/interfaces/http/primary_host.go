package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/pkg/hostutil"
)

// PrimaryHostRedirect envía (308) las peticiones de subdominios de personal al
// host principal conservando ruta y query. Es navegación, no autorización.
func PrimaryHostRedirect(primaryHost string) fiber.Handler {
	primary := strings.ToLower(strings.TrimSpace(primaryHost))
	return func(c *fiber.Ctx) error {
		if primary == "" {
			return c.Next()
		}
		host := strings.ToLower(string(c.Request().Host()))
		if host == "" || host == primary {
			return c.Next()
		}
		if _, staff := hostutil.HasStaffPrefix(host); !staff {
			return c.Next()
		}
		return c.Redirect(c.Protocol()+"://"+primary+c.OriginalURL(), fiber.StatusPermanentRedirect)
	}
}
