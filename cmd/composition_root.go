package cmd

import (
	"log/slog"
	"os"
	"time"

	"tableorder/internal/adapters/out/memory"
	"tableorder/internal/adapters/out/orderservice"
	"tableorder/internal/adapters/out/postgres"
	"tableorder/internal/core/application/usecases/commands"
	"tableorder/internal/core/application/usecases/queries"
	"tableorder/internal/core/domain/model/session"
	"tableorder/internal/core/domain/services"

	"gorm.io/gorm"
)

const defaultSessionTTL = 30 * time.Minute

type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	sessions     *memory.SessionStore
	orderService *orderservice.Client
	tokenDecoder session.TokenDecoder
	sessionTTL   time.Duration
	logger       *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		sessions:     memory.NewSessionStore(),
		orderService: orderservice.NewClient(configs.OrderServiceURL),
		tokenDecoder: session.NewTokenDecoder(configs.JWTSecret),
		sessionTTL:   sessionTTLFromConfig(configs, logger),
		logger:       logger,
	}
}

func (c *CompositionRoot) SessionStore() *memory.SessionStore {
	return c.sessions
}

func (c *CompositionRoot) TokenDecoder() session.TokenDecoder {
	return c.tokenDecoder
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateRouteGuard() *services.RouteGuard {
	return services.NewRouteGuard()
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(c.sessions, c.orderService, f)
}

func (c *CompositionRoot) CreateRecordDeliveryCommandHandler() commands.RecordDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateAppendOrderVersionCommandHandler() commands.AppendOrderVersionCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAppendOrderVersionCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCleanUpSessionsCommandHandler() commands.CleanUpSessionsCommandHandler {
	return commands.NewCleanUpSessionsCommandHandler(c.sessions, c.sessionTTL)
}

func (c *CompositionRoot) CreateGetDeliveryStateQueryHandler() queries.GetDeliveryStateQueryHandler {
	return queries.NewGetDeliveryStateQueryHandler(c.gormDB)
}

// sessionTTLFromConfig parses SESSION_TTL as a Go duration. An unset value
// means the default; an unparsable value falls back to the default with a
// warning so a typo in the env file does not pass silently.
func sessionTTLFromConfig(configs Config, logger *slog.Logger) time.Duration {
	if configs.SessionTTL == "" {
		return defaultSessionTTL
	}

	parsed, err := time.ParseDuration(configs.SessionTTL)
	if err != nil {
		logger.Warn("invalid SESSION_TTL, using default",
			"value", configs.SessionTTL,
			"default", defaultSessionTTL.String(),
			"error", err)
		return defaultSessionTTL
	}
	return parsed
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}
