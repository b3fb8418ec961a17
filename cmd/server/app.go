package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/shop-api/internal/config"
	"github.com/phrazzld/shop-api/internal/events"
	"github.com/phrazzld/shop-api/internal/platform/metrics"
	"github.com/phrazzld/shop-api/internal/platform/mongodb"
	"github.com/phrazzld/shop-api/internal/platform/postgres"
	"github.com/phrazzld/shop-api/internal/service"
	"github.com/phrazzld/shop-api/internal/store"
)

const closeTimeout = 5 * time.Second

// healthCheck is a named dependency probe reported by GET /health.
type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger  *slog.Logger
	metrics *metrics.Metrics

	// Store adapters; the application owns their lifecycle.
	relational *postgres.Adapter
	document   *mongodb.Adapter

	// Service interfaces
	productService service.ProductService
	orderService   service.OrderService
	taskService    service.TaskService
	todoService    service.TodoService

	// Event system
	eventEmitter events.EventEmitter

	healthChecks []healthCheck
}

// newApplication initializes both stores and wires stores, services and the
// event system. A store that fails to initialize aborts startup; any store
// already opened is closed again.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	app.relational = postgres.NewAdapter(cfg.Database, logger)
	if err := app.relational.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize relational store: %w", err)
	}

	app.document = mongodb.NewAdapter(cfg.Mongo, logger)
	if err := app.document.Initialize(ctx); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}

	db, err := app.relational.DB()
	if err != nil {
		app.cleanup()
		return nil, err
	}
	mdb, err := app.document.Database()
	if err != nil {
		app.cleanup()
		return nil, err
	}

	stores := appStores{
		products: mongodb.NewMongoProductStore(mdb.Collection(mongodb.ProductsCollection), logger),
		orders:   postgres.NewPostgresOrderStore(db, logger),
		tasks:    postgres.NewPostgresTaskStore(db, logger),
		todos:    postgres.NewPostgresTodoStore(db, logger),
	}
	if err := app.wireServices(stores); err != nil {
		app.cleanup()
		return nil, err
	}

	app.healthChecks = []healthCheck{
		{name: "postgres", check: app.relational.Ping},
		{name: "mongodb", check: app.document.Ping},
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// appStores groups the store implementations handed to the services.
type appStores struct {
	products store.ProductStore
	orders   store.OrderStore
	tasks    store.TaskStore
	todos    store.TodoStore
}

// wireServices builds the event emitter and the services on top of stores.
func (app *application) wireServices(stores appStores) error {
	emitter := events.NewInMemoryEventEmitter(app.logger)
	emitter.RegisterHandler(events.NewLoggingHandler(app.logger))
	emitter.RegisterHandler(app.metrics)
	app.eventEmitter = emitter

	var err error
	app.productService, err = service.NewProductService(stores.products, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create product service: %w", err)
	}

	app.orderService, err = service.NewOrderService(stores.orders, stores.products, app.eventEmitter, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create order service: %w", err)
	}

	app.taskService, err = service.NewTaskService(stores.tasks, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create task service: %w", err)
	}

	app.todoService, err = service.NewTodoService(stores.todos, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create todo service: %w", err)
	}
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup closes both stores. It is safe to call with either adapter unset.
func (app *application) cleanup() {
	if app.document != nil {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		if err := app.document.Close(ctx); err != nil {
			app.logger.Error("Error closing document store", "error", err)
		}
		cancel()
	}

	if app.relational != nil {
		if err := app.relational.Close(); err != nil {
			app.logger.Error("Error closing relational store", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
