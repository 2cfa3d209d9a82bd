package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	apphttp "github.com/jhoicas/restaurante-api/internal/interfaces/http"
)

func TestStaffLogin_GerenciaRecibeCookieFirmada(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/login", map[string]string{"role": "manager", "passcode": testManagerPasscode})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	c := findCookie(resp, apphttp.StaffCookie)
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 8*60*60, c.MaxAge)
	assert.NotEqual(t, "manager", c.Value, "el valor va firmado")

	body := decode[dto.StaffLoginResponse](t, resp)
	assert.Equal(t, "manager", body.Role)
	assert.Equal(t, []string{"customer", "manager", "kitchen"}, body.AllowedRoles)
}

func TestStaffLogin_Errores(t *testing.T) {
	env := newTestEnv(t)
	cases := []struct {
		name string
		body map[string]string
		want int
	}{
		{"rol de cliente", map[string]string{"role": "customer", "passcode": "x"}, fiber.StatusBadRequest},
		{"rol desconocido", map[string]string{"role": "admin", "passcode": "x"}, fiber.StatusBadRequest},
		{"passcode vacío", map[string]string{"role": "kitchen", "passcode": ""}, fiber.StatusBadRequest},
		{"passcode incorrecto", map[string]string{"role": "kitchen", "passcode": "nope"}, fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/login", tc.body)
			assert.Equal(t, tc.want, resp.StatusCode)
			assert.Nil(t, findCookie(resp, apphttp.StaffCookie))
		})
	}
}

func TestStaffLogin_BloqueoTrasCincoFallos(t *testing.T) {
	env := newTestEnv(t)
	ip := withHeader("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	for i := 0; i < 5; i++ {
		resp := env.do(t, http.MethodPost, "/api/login", map[string]string{"role": "manager", "passcode": "mal"}, ip)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "intento %d", i+1)
	}
	// El sexto intento se bloquea aunque el passcode sea correcto.
	resp := env.do(t, http.MethodPost, "/api/login", map[string]string{"role": "manager", "passcode": testManagerPasscode}, ip)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMITED", decode[dto.ErrorResponse](t, resp).Code)

	// Otro cliente no comparte el contador.
	resp = env.do(t, http.MethodPost, "/api/login", map[string]string{"role": "manager", "passcode": testManagerPasscode},
		withHeader("X-Forwarded-For", "198.51.100.1"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSession_SinCookieSoloCliente(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/session", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode[dto.SessionResponse](t, resp)
	assert.Nil(t, body.Role)
	assert.Equal(t, []string{"customer"}, body.AllowedRoles)
	assert.Equal(t, "customer", body.ActiveRole)
}

func TestSession_HostCocinaSinCookie(t *testing.T) {
	env := newTestEnv(t)
	host := withHost("kitchen.example.com")

	resp := env.do(t, http.MethodGet, "/api/session", nil, host)
	body := decode[dto.SessionResponse](t, resp)
	assert.Nil(t, body.Role)
	assert.Equal(t, []string{"customer", "kitchen"}, body.AllowedRoles)
	assert.Equal(t, "kitchen", body.ActiveRole)

	// El host propone cocina pero no concede acceso.
	resp = env.do(t, http.MethodGet, "/api/tickets", nil, host)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSession_CookieAlteradaSeIgnora(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/session", nil,
		withCookies(&http.Cookie{Name: apphttp.StaffCookie, Value: "manager"}))
	body := decode[dto.SessionResponse](t, resp)
	assert.Nil(t, body.Role)
	assert.Equal(t, []string{"customer"}, body.AllowedRoles)
}

func TestSelectRole_GerenciaComoCocina(t *testing.T) {
	env := newTestEnv(t)
	staff := env.loginStaff(t, "manager", testManagerPasscode)

	resp := env.do(t, http.MethodPost, "/api/session/role", map[string]string{"role": "kitchen"}, withCookies(staff))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	pref := findCookie(resp, apphttp.ActiveRoleCookie)
	require.NotNil(t, pref)
	assert.Equal(t, "kitchen", decode[dto.SessionResponse](t, resp).ActiveRole)

	// Con rol activo cocina, gerencia mantiene sus acciones.
	resp = env.do(t, http.MethodPost, "/api/menu",
		map[string]any{"name": "Sopa", "price": "12.50"}, withCookies(staff, pref))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestSelectRole_CocinaNoPuedeElegirGerencia(t *testing.T) {
	env := newTestEnv(t)
	staff := env.loginStaff(t, "kitchen", testKitchenPasscode)
	resp := env.do(t, http.MethodPost, "/api/session/role", map[string]string{"role": "manager"}, withCookies(staff))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/session/role", map[string]string{"role": "chef"}, withCookies(staff))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogout_BorraCookieDePersonal(t *testing.T) {
	env := newTestEnv(t)
	staff := env.loginStaff(t, "kitchen", testKitchenPasscode)
	resp := env.do(t, http.MethodPost, "/api/logout", nil, withCookies(staff))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	c := findCookie(resp, apphttp.StaffCookie)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
}

func TestRequireRoles_CocinaNoGestionaMenu(t *testing.T) {
	env := newTestEnv(t)
	staff := env.loginStaff(t, "kitchen", testKitchenPasscode)
	resp := env.do(t, http.MethodPost, "/api/menu", map[string]any{"name": "Sopa", "price": "12.50"}, withCookies(staff))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/menu", map[string]any{"name": "Sopa", "price": "12.50"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPrimaryHostRedirect(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.PrimaryHostRedirect("example.com"))
	app.Get("/api/menu", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	env := &testEnv{app: app}

	resp := env.do(t, http.MethodGet, "/api/menu?x=1", nil, withHost("kitchen.example.com"))
	assert.Equal(t, fiber.StatusPermanentRedirect, resp.StatusCode)
	assert.Equal(t, "http://example.com/api/menu?x=1", resp.Header.Get("Location"))

	resp = env.do(t, http.MethodGet, "/api/menu", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
