package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/role"
	"github.com/jhoicas/restaurante-api/pkg/hostutil"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// preferenceMaxAge vigencia de la cookie active_role (solo preferencia de UI).
const preferenceMaxAge = 365 * 24 * time.Hour

// AuthHandler login de personal y sesión de roles.
type AuthHandler struct {
	uc            *auth.StaffUseCase
	codec         ports.RoleCookieCodec
	maxAge        time.Duration
	secureCookies bool
	log           *logger.Logger
}

// NewAuthHandler construye el handler de auth de personal.
func NewAuthHandler(uc *auth.StaffUseCase, codec ports.RoleCookieCodec, maxAge time.Duration, secureCookies bool, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, codec: codec, maxAge: maxAge, secureCookies: secureCookies, log: log}
}

// Login godoc
// @Summary      Login de personal (gerencia o cocina)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StaffLoginRequest  true  "role, passcode"
// @Success      200   {object}  dto.StaffLoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.StaffLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	clientKey := hostutil.ClientAddress(c.Get(fiber.HeaderXForwardedFor), c.Get("X-Real-IP"))
	res, err := h.uc.Login(c.UserContext(), clientKey, in.Role, in.Passcode)
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			h.log.Warn().Str("client", clientKey).Msg("login de personal bloqueado por intentos")
		}
		return writeError(c, h.log, err)
	}
	value, err := h.codec.Encode(res.Role)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     StaffCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(h.maxAge.Seconds()),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.StaffLoginResponse{Role: res.Role.String(), AllowedRoles: res.Allowed.Strings()})
}

// Logout godoc
// @Summary      Cerrar sesión de personal
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.ActionState
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearCookie(c, StaffCookie)
	h.clearCookie(c, ActiveRoleCookie)
	return c.JSON(dto.ActionOK())
}

// Session godoc
// @Summary      Roles de la sesión actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(sessionResponse(GetResolution(c)))
}

// SelectRole godoc
// @Summary      Elegir rol activo
// @Description  Guarda la preferencia; solo se aceptan roles del espacio de trabajo visible. No concede permisos.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectRoleRequest  true  "role"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/session/role [post]
func (h *AuthHandler) SelectRole(c *fiber.Ctx) error {
	var in dto.SelectRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	r, err := role.Parse(in.Role)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rol inválido"})
	}
	res := GetResolution(c)
	if !res.Allowed.Contains(r) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol no disponible para esta sesión"})
	}
	c.Cookie(&fiber.Cookie{
		Name:     ActiveRoleCookie,
		Value:    r.String(),
		Path:     "/",
		MaxAge:   int(preferenceMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	res = auth.Resolve(requestHost(c), res.StaffRole, r.String())
	return c.JSON(sessionResponse(res))
}

func (h *AuthHandler) clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func sessionResponse(res auth.Resolution) dto.SessionResponse {
	out := dto.SessionResponse{
		AllowedRoles: res.Allowed.Strings(),
		ActiveRole:   res.Active.String(),
	}
	if res.HasStaffRole() {
		s := res.StaffRole.String()
		out.Role = &s
	}
	return out
}
