package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/customer"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// CustomerHandler registro, sesión y perfil de clientes.
type CustomerHandler struct {
	uc            *customer.UseCase
	sessionTTL    time.Duration
	secureCookies bool
	log           *logger.Logger
}

// NewCustomerHandler construye el handler de clientes.
func NewCustomerHandler(uc *customer.UseCase, sessionTTL time.Duration, secureCookies bool, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, sessionTTL: sessionTTL, secureCookies: secureCookies, log: log}
}

// Register godoc
// @Summary      Registrar cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterCustomerRequest  true  "name, email, password"
// @Success      201   {object}  dto.ProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers/register [post]
func (h *CustomerHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	profile, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProfileResponse{Profile: profile})
}

// Login godoc
// @Summary      Login de cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerLoginRequest  true  "email, password"
// @Success      200   {object}  dto.CustomerLoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/customers/login [post]
func (h *CustomerHandler) Login(c *fiber.Ctx) error {
	var in dto.CustomerLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Authenticate(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     CustomerCookie,
		Value:    out.Token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión de cliente
// @Tags         customers
// @Produce      json
// @Success      200  {object}  dto.ActionState
// @Router       /api/customers/logout [post]
func (h *CustomerHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     CustomerCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.ActionOK())
}

// Profile godoc
// @Summary      Perfil del cliente autenticado
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/profile [get]
func (h *CustomerHandler) Profile(c *fiber.Ctx) error {
	profile, err := h.uc.Profile(c.UserContext(), GetCustomerID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ProfileResponse{Profile: profile})
}

// UpdateProfile godoc
// @Summary      Actualizar perfil del cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "name, phone, favoriteDish"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/customers/profile [put]
func (h *CustomerHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	profile, err := h.uc.UpdateProfile(c.UserContext(), GetCustomerID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ProfileResponse{Profile: profile})
}
