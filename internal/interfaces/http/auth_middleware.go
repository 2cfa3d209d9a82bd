package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
)

// CustomerCookie cookie con el token de sesión del cliente.
const CustomerCookie = "customer_session"

// Locals keys de la sesión de cliente.
const (
	LocalCustomerID   = "customer_id"
	LocalCustomerName = "customer_name"
)

// CustomerAuth exige una sesión de cliente válida: Bearer Token o cookie.
func CustomerAuth(sessions ports.SessionIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := customerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "se requiere sesión de cliente"})
		}
		sess, err := sessions.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalCustomerID, sess.CustomerID)
		c.Locals(LocalCustomerName, sess.Name)
		return c.Next()
	}
}

func customerToken(c *fiber.Ctx) (string, bool) {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		t := strings.TrimSpace(parts[1])
		return t, t != ""
	}
	t := c.Cookies(CustomerCookie)
	return t, t != ""
}

// GetCustomerID devuelve el id del cliente (después de CustomerAuth).
func GetCustomerID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalCustomerID).(string)
	return s
}
