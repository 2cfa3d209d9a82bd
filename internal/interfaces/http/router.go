package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/customer"
	"github.com/jhoicas/restaurante-api/internal/application/menu"
	"github.com/jhoicas/restaurante-api/internal/application/order"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	appticket "github.com/jhoicas/restaurante-api/internal/application/ticket"
	"github.com/jhoicas/restaurante-api/internal/domain/role"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName       string
	StaffUC       *auth.StaffUseCase
	CustomerUC    *customer.UseCase
	MenuUC        *menu.UseCase
	OrderUC       *order.UseCase
	TicketUC      *appticket.UseCase
	RoleCodec     ports.RoleCookieCodec
	Sessions      ports.SessionIssuer
	StaffTTL      time.Duration
	SessionTTL    time.Duration
	SecureCookies bool
	PrimaryHost   string
	Logger        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api", PrimaryHostRedirect(deps.PrimaryHost), SessionMiddleware(deps.RoleCodec))
	guard := OriginGuard(log)
	staff := RequireRoles(role.Kitchen, role.Manager)
	manager := RequireRoles(role.Manager)

	// Sesión de personal
	authHandler := NewAuthHandler(deps.StaffUC, deps.RoleCodec, deps.StaffTTL, deps.SecureCookies, log)
	api.Post("/login", guard, authHandler.Login)
	api.Post("/logout", guard, authHandler.Logout)
	api.Get("/session", authHandler.Session)
	api.Post("/session/role", guard, authHandler.SelectRole)

	// Clientes
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.SessionTTL, deps.SecureCookies, log)
	requireCustomer := CustomerAuth(deps.Sessions)
	customers.Post("/register", guard, customerHandler.Register)
	customers.Post("/login", guard, customerHandler.Login)
	customers.Post("/logout", guard, customerHandler.Logout)
	customers.Get("/profile", requireCustomer, customerHandler.Profile)
	customers.Put("/profile", guard, requireCustomer, customerHandler.UpdateProfile)

	// Menú (lectura pública, escritura solo gerencia)
	menuGroup := api.Group("/menu")
	menuHandler := NewMenuHandler(deps.MenuUC, log)
	menuGroup.Get("/", menuHandler.List)
	menuGroup.Post("/", guard, manager, menuHandler.Create)
	menuGroup.Put("/:id", guard, manager, menuHandler.Update)

	// Pedidos
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.TicketUC, log)
	orders.Post("/", guard, RequireRoles(role.Customer), orderHandler.Create)
	orders.Get("/:orderId/slips.pdf", staff, orderHandler.Slips)
	orders.Get("/:orderId", orderHandler.Status)

	// Cocina
	tickets := api.Group("/tickets")
	ticketHandler := NewTicketHandler(deps.TicketUC, log)
	tickets.Get("/", staff, ticketHandler.Queue)
	tickets.Post("/:id/status", guard, staff, ticketHandler.UpdateStatus)
}
