package bootstrap

import (
	"context"
	"log"

	"licensewatch-admin/internal/config"
	"licensewatch-admin/internal/controller"
	"licensewatch-admin/internal/pkg/logger"
	"licensewatch-admin/internal/repository/unitofwork"
	"licensewatch-admin/internal/service"
	adminEvents "licensewatch-admin/pkg/admin/events"
	"licensewatch-admin/pkg/admin/feature"
	"licensewatch-admin/pkg/admin/server"
	"licensewatch-admin/pkg/admin/validation"
	"licensewatch-admin/pkg/events"
	"licensewatch-admin/pkg/metrics"
	pktNats "licensewatch-admin/pkg/nats"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

const (
	BusMemory = "memory"
	BusNats   = "nats"
	BusNone   = "none"
)

type Container struct {
	// Controllers
	AdminController controller.IAdminController

	// Infrastructure (exposed for health and metrics endpoints)
	DB       *gorm.DB
	Registry *prometheus.Registry
	Logger   logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{DB: db}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c.Logger = sysLogger
	c.closers = append(c.closers, func() { _ = sysLogger.Sync() })

	// 2. Event Bus
	publisher := c.newEventPublisher(cfg.Events, sysLogger)

	// 3. Metrics
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(c.Registry)

	// 4. Admin Domain Components
	validator := validation.New()
	featureManager := feature.NewManager(cfg.Catalog.RowsPerPage, validator, publisher, collector, sysLogger)
	serverManager := server.NewManager(validator, publisher, collector, sysLogger)

	adminService := service.NewAdminService(uowFactory, sysLogger, featureManager, serverManager)

	// 5. Controllers
	c.AdminController = controller.NewAdminController(adminService)

	return c
}

// newEventPublisher picks the audit sink. A NATS outage degrades to no
// publishing rather than failing startup.
func (c *Container) newEventPublisher(cfg config.EventsConfig, sysLogger logger.ILogger) *adminEvents.AuditPublisher {
	switch cfg.Bus {
	case BusNats:
		natsPub, err := pktNats.NewPublisher(cfg.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			return adminEvents.NewNatsPublisher(nil, sysLogger)
		}
		c.closers = append(c.closers, natsPub.Close)
		return adminEvents.NewNatsPublisher(natsPub, sysLogger)
	case BusNone:
		return adminEvents.NewAuditPublisher(nil, sysLogger)
	default:
		bus := events.NewChannelBus(events.NewLoggerAdapter(sysLogger))
		c.closers = append(c.closers, func() { _ = bus.Close() })

		consumer := service.NewAuditConsumerService(bus, adminEvents.EventTypes, sysLogger)
		ctx, cancel := context.WithCancel(context.Background())
		if err := consumer.Consume(ctx); err != nil {
			log.Printf("[WARN] Failed to start audit consumer: %v", err)
		}
		// Closers run in reverse, so readers stop before the bus closes.
		c.closers = append(c.closers, func() {
			cancel()
			consumer.Wait()
		})
		return adminEvents.NewAuditPublisher(bus, sysLogger)
	}
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
