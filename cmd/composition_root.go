package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpin "farmadelivery/internal/adapters/in/http"
	"farmadelivery/internal/adapters/out/kafka"
	"farmadelivery/internal/adapters/out/nominatim"
	"farmadelivery/internal/adapters/out/postgres"
	"farmadelivery/internal/adapters/out/redis"
	"farmadelivery/internal/core/application/notify"
	"farmadelivery/internal/core/application/usecases/commands"
	"farmadelivery/internal/core/application/usecases/queries"
	"farmadelivery/internal/core/domain/services"
	"farmadelivery/internal/core/ports"
	"farmadelivery/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// catalogCache is both the read side cache and the write side invalidator.
type catalogCache interface {
	queries.CatalogCache
	commands.CatalogInvalidator
}

type noopCatalogCache struct {
	queries.NoopCatalogCache
	commands.NoopCatalogInvalidator
}

// CompositionRoot wires the adapters to the use cases. It owns the long-lived
// collaborators (pool, dispatcher, cache and geocoder) and hands out handlers
// built around them.
//
// Example:
//
//	root, err := cmd.NewCompositionRoot(ctx, config, gormDB, logger)
//	if err != nil {
//	    return err
//	}
//	defer root.Close()
//
//	router, err := root.CreateRouter(ctx)
type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	clock      ports.Clock
	matcher    services.ProximityMatcher
	pricing    services.PricingEngine
	geocoder   ports.Geocoder
	dispatcher *notify.Dispatcher
	cache      catalogCache

	closers []func() error
}

// NewCompositionRoot connects the optional collaborators named in config:
// Kafka for notifications, Redis for the catalog cache and a Nominatim
// geocoder. Each one left unconfigured falls back to a local stand-in.
func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	matcher, err := services.NewProximityMatcher(config.ProximityRadiusKm)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		config:     config,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      ports.SystemClock{},
		matcher:    matcher,
		pricing:    services.NewPricingEngine(),
		cache:      noopCatalogCache{},
	}

	var notifier ports.Notifier = kafka.NewLogNotifier(logger)
	if config.KafkaHost != "" {
		producer, err := kafka.NewSyncProducer(config.KafkaHost)
		if err != nil {
			return nil, err
		}
		publisher, err := kafka.NewOrderStatusPublisher(producer, config.KafkaOrderChangedTopic)
		if err != nil {
			_ = producer.Close()
			return nil, err
		}
		c.closers = append(c.closers, publisher.Close)
		notifier = publisher
	}
	c.dispatcher = notify.NewDispatcher(notifier, logger, config.NotificationBufferSize)
	c.dispatcher.Start()
	c.closers = append(c.closers, c.dispatcher.Close)

	if config.RedisAddr != "" {
		client, err := redis.NewClient(ctx, config.RedisAddr, config.RedisPassword, config.RedisDB)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.closers = append(c.closers, client.Close)
		c.cache = redis.NewCatalogCache(client, config.CatalogCacheTTL, logger)
	}

	if config.GeocoderURL != "" {
		geocoder, err := nominatim.NewGeocoder(
			config.GeocoderURL, config.GeocoderUserAgent, config.GeocoderCountryCodes, nil,
		)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.geocoder = geocoder
	}

	return c, nil
}

// Close releases the connections opened by NewCompositionRoot.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoW() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

// CreateCommandHandlers builds one handler per write use case.
func (c *CompositionRoot) CreateCommandHandlers() httpin.CommandHandlers {
	return httpin.CommandHandlers{
		CreateInsurancePlan:   commands.NewCreateInsurancePlanCommandHandler(c.uow()),
		CreatePharmacy:        commands.NewCreatePharmacyCommandHandler(c.uow(), c.geocoder),
		AddProduct:            commands.NewAddProductCommandHandler(c.uow(), c.cache),
		UpdateProductStock:    commands.NewUpdateProductStockCommandHandler(c.uow(), c.cache),
		SaveInsuranceDiscount: commands.NewSaveInsuranceDiscountCommandHandler(c.uow(), c.cache),
		CreateCustomer:        commands.NewCreateCustomerCommandHandler(c.uow(), c.geocoder),
		Checkout: commands.NewCheckoutCommandHandler(
			c.uow(), c.pricing, c.geocoder, c.dispatcher, c.cache, c.clock,
		),
		PrepareOrder:          commands.NewPrepareOrderCommandHandler(c.uow(), c.dispatcher, c.clock),
		MarkOrderReady:        commands.NewMarkOrderReadyCommandHandler(c.uow(), c.dispatcher, c.clock),
		CancelOrder:           commands.NewCancelOrderCommandHandler(c.uow(), c.dispatcher, c.cache, c.clock),
		CreateCourier:         commands.NewCreateCourierCommandHandler(c.courierUoW()),
		UpdateCourierLocation: commands.NewUpdateCourierLocationCommandHandler(c.courierUoW(), c.clock),
		AcceptOrder:           commands.NewAcceptOrderCommandHandler(c.uow(), c.matcher, c.dispatcher, c.clock),
		RejectOrder:           commands.NewRejectOrderCommandHandler(c.uow(), c.clock),
		DeliverOrder:          commands.NewDeliverOrderCommandHandler(c.uow(), c.dispatcher, c.clock),
	}
}

// CreateQueryHandlers builds one handler per read use case.
func (c *CompositionRoot) CreateQueryHandlers() httpin.QueryHandlers {
	return httpin.QueryHandlers{
		PharmacyCatalog:     queries.NewGetPharmacyCatalogQueryHandler(c.gormDB, c.cache),
		PriceQuote:          queries.NewGetPriceQuoteQueryHandler(c.gormDB, c.pricing),
		NearbyPharmacies:    queries.NewGetNearbyPharmaciesQueryHandler(c.gormDB, c.matcher),
		Order:               queries.NewGetOrderQueryHandler(c.uowFactory),
		PharmacyOrders:      queries.NewGetPharmacyOrdersQueryHandler(c.gormDB),
		Couriers:            queries.NewGetCouriersQueryHandler(c.gormDB, c.clock),
		AvailableOrders:     queries.NewGetAvailableOrdersQueryHandler(c.gormDB, c.matcher),
		CourierActiveOrders: queries.NewGetCourierActiveOrdersQueryHandler(c.gormDB),
	}
}

// CreateRouter builds the echo router serving the HTTP API.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	server := httpin.NewServer(c.CreateCommandHandlers(), c.CreateQueryHandlers())
	return httpin.NewRouter(ctx, server, httpin.RouterConfig{
		TokenSecret: []byte(c.config.JWTSecret),
		Logger:      c.logger,
	})
}

// CreateJobManager builds the scheduler that retries undelivered notifications.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.dispatcher, c.config.RedeliverySchedule, c.logger)
}

// Dispatcher exposes the notification dispatcher for shutdown draining.
func (c *CompositionRoot) Dispatcher() *notify.Dispatcher {
	return c.dispatcher
}

// FuncCourierUoWFactory adapts a function to commands.CourierUoWFactory.
type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

// FuncUoWFactory adapts a function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
