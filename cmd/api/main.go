package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/customer"
	"github.com/jhoicas/restaurante-api/internal/application/menu"
	"github.com/jhoicas/restaurante-api/internal/application/order"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	appticket "github.com/jhoicas/restaurante-api/internal/application/ticket"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/memory"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/restaurante-api/internal/infrastructure/pdf"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/postgres"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/security"
	httpRouter "github.com/jhoicas/restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/restaurante-api/pkg/config"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// storage repositorios y runner transaccional según STORAGE_DRIVER.
type storage struct {
	menu      repository.MenuItemRepository
	tickets   repository.TicketRepository
	customers repository.CustomerRepository
	txRunner  order.TxRunner
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{
			menu:      store.Menu(),
			tickets:   store.Tickets(),
			customers: store.Customers(),
			txRunner:  store,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.RunMigrations {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &storage{
		menu:      postgres.NewMenuItemRepository(pool),
		tickets:   postgres.NewTicketRepository(pool),
		customers: postgres.NewCustomerRepository(pool),
		txRunner:  postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Eventos: AMQP opcional, sin URL se descartan.
	var publisher ports.EventPublisher = ports.NopPublisher{}
	if cfg.AMQP.URL != "" {
		amqpPub, err := messaging.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer amqpPub.Close()
		publisher = amqpPub
	}

	attempts := ratelimit.NewMemoryStore()
	go attempts.RunSweeper(ctx, cfg.RateLimit.Window, log)
	limiter := auth.NewLoginLimiter(attempts, cfg.RateLimit.Window, cfg.RateLimit.MaxAttempts)
	if cfg.Staff.ManagerPasscode == "" || cfg.Staff.KitchenPasscode == "" {
		log.Warn().Msg("passcodes de personal incompletos: el login de ese rol responderá 500")
	}
	staffUC := auth.NewStaffUseCase(auth.StaffPasscodes{
		Manager: cfg.Staff.ManagerPasscode,
		Kitchen: cfg.Staff.KitchenPasscode,
	}, limiter)

	sessions := &security.JWTSessions{
		Secret:     cfg.Session.Secret,
		Issuer:     cfg.Session.Issuer,
		ExpMinutes: cfg.Session.Expiration,
	}
	customerUC := customer.NewUseCase(store.customers, security.BcryptHasher{Cost: security.PasswordCost}, sessions)
	menuUC := menu.NewUseCase(store.menu)
	orderUC := order.NewUseCase(store.txRunner, publisher, log)

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}
	ticketUC := appticket.NewUseCase(store.tickets, publisher, infrapdf.NewSlipGenerator(loc), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Restaurante API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:       cfg.App.Name,
		StaffUC:       staffUC,
		CustomerUC:    customerUC,
		MenuUC:        menuUC,
		OrderUC:       orderUC,
		TicketUC:      ticketUC,
		RoleCodec:     security.NewRoleCookieCodec(cfg.Staff.CookieSecret, security.StaffSessionMaxAge),
		Sessions:      sessions,
		StaffTTL:      security.StaffSessionMaxAge,
		SessionTTL:    time.Duration(cfg.Session.Expiration) * time.Minute,
		SecureCookies: cfg.App.IsProduction(),
		PrimaryHost:   cfg.Staff.PrimaryHost,
		Logger:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
