package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/pkg/hostutil"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// EvaluateOrigin decide si una petición mutante viene del mismo sitio.
//
// El host destino es el primer X-Forwarded-Host o, si falta, Host. Se mira
// Origin y, si no está, Referer; coincide el mismo host o el mismo dominio
// base (últimas dos etiquetas). Sin ninguna de las dos cabeceras se acepta.
func EvaluateOrigin(host, forwardedHost, origin, referer string) error {
	target := hostutil.FirstValue(forwardedHost)
	if target == "" {
		target = host
	}

	if origin != "" {
		h, ok := urlHost(origin)
		if !ok {
			return &domain.OriginError{Reason: domain.OriginMissing}
		}
		if !sameSite(h, target) {
			return &domain.OriginError{Reason: domain.OriginCrossOrigin}
		}
		return nil
	}

	if referer != "" {
		h, ok := urlHost(referer)
		if !ok {
			return &domain.OriginError{Reason: domain.OriginInvalidReferrer}
		}
		if !sameSite(h, target) {
			return &domain.OriginError{Reason: domain.OriginCrossSite}
		}
		return nil
	}

	return nil
}

// urlHost extrae el host de una URL absoluta http(s). "null" no tiene host.
func urlHost(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return u.Host, true
}

func sameSite(a, target string) bool {
	ha, ht := hostutil.Hostname(a), hostutil.Hostname(target)
	if ha == "" || ht == "" {
		return false
	}
	return ha == ht || hostutil.BaseDomain(ha) == hostutil.BaseDomain(ht)
}

// OriginGuard rechaza con 403 las peticiones mutantes de otro sitio.
func OriginGuard(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		err := EvaluateOrigin(
			string(c.Request().Host()),
			c.Get(fiber.HeaderXForwardedHost),
			c.Get(fiber.HeaderOrigin),
			c.Get(fiber.HeaderReferer),
		)
		if err != nil {
			log.Warn().Err(err).
				Str("path", c.Path()).
				Str("origin", c.Get(fiber.HeaderOrigin)).
				Str("referer", c.Get(fiber.HeaderReferer)).
				Msg("petición rechazada por origen")
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ORIGIN_REJECTED", Message: err.Error()})
		}
		return c.Next()
	}
}
