package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/customer"
	"github.com/jhoicas/restaurante-api/internal/application/menu"
	"github.com/jhoicas/restaurante-api/internal/application/order"
	appticket "github.com/jhoicas/restaurante-api/internal/application/ticket"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/memory"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/pdf"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/security"
	apphttp "github.com/jhoicas/restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

const (
	testManagerPasscode = "gerente-1234"
	testKitchenPasscode = "cocina-1234"
	testHost            = "example.com"
)

type testEnv struct {
	app   *fiber.App
	store *memory.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()

	limiter := auth.NewLoginLimiter(ratelimit.NewMemoryStore(), auth.DefaultLoginWindow, auth.DefaultLoginMaxAttempts)
	staffUC := auth.NewStaffUseCase(auth.StaffPasscodes{Manager: testManagerPasscode, Kitchen: testKitchenPasscode}, limiter)
	sessions := &security.JWTSessions{Secret: "test-session-secret", Issuer: "restaurante-test", ExpMinutes: 60}
	customerUC := customer.NewUseCase(store.Customers(), security.BcryptHasher{Cost: 4}, sessions)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:    "restaurante-test",
		StaffUC:    staffUC,
		CustomerUC: customerUC,
		MenuUC:     menu.NewUseCase(store.Menu()),
		OrderUC:    order.NewUseCase(store, nil, log),
		TicketUC:   appticket.NewUseCase(store.Tickets(), nil, pdf.NewSlipGenerator(time.UTC), log),
		RoleCodec:  security.NewRoleCookieCodec("test-cookie-secret-0123456789abc", security.StaffSessionMaxAge),
		Sessions:   sessions,
		StaffTTL:   security.StaffSessionMaxAge,
		SessionTTL: time.Hour,
		Logger:     log,
	})
	return &testEnv{app: app, store: store}
}

func (e *testEnv) seedItem(t *testing.T, id, name string, price *decimal.Decimal) {
	t.Helper()
	require.NoError(t, e.store.Menu().Create(context.Background(), &entity.MenuItem{
		ID:        id,
		Name:      name,
		Price:     price,
		CreatedAt: time.Now().UTC(),
	}))
}

type reqOpt func(*http.Request)

func withHost(host string) reqOpt {
	return func(r *http.Request) { r.Host = host }
}

func withHeader(k, v string) reqOpt {
	return func(r *http.Request) { r.Header.Set(k, v) }
}

func withCookies(cookies ...*http.Cookie) reqOpt {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, opts ...reqOpt) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Host = testHost
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, o := range opts {
		o(req)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// loginStaff devuelve la cookie firmada de personal.
func (e *testEnv) loginStaff(t *testing.T, role, passcode string) *http.Cookie {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/login", map[string]string{"role": role, "passcode": passcode})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	c := findCookie(resp, apphttp.StaffCookie)
	require.NotNil(t, c)
	return c
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
