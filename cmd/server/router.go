package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/shop-api/internal/api"
	apiMiddleware "github.com/phrazzld/shop-api/internal/api/middleware"
	"github.com/phrazzld/shop-api/internal/api/shared"
	"github.com/phrazzld/shop-api/internal/redact"
)

const healthCheckTimeout = 2 * time.Second

// banner is served at GET /.
type banner struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

var endpoints = []string{
	"GET /health",
	"GET|POST /api/products",
	"GET|PUT|DELETE /api/products/{id}",
	"GET|POST /api/orders",
	"GET|PUT|DELETE /api/orders/{id}",
	"GET|POST /api/tasks",
	"GET|PUT|DELETE /api/tasks/{id}",
	"GET|POST /todos",
	"GET|PUT|DELETE /todos/{id}",
}

// healthReport is the payload of GET /health.
type healthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if app.config.Metrics.Enabled {
		r.Use(app.metrics.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	productHandler := api.NewProductHandler(app.productService, app.logger)
	orderHandler := api.NewOrderHandler(app.orderService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	todoHandler := api.NewTodoHandler(app.todoService, app.logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithData(w, r, http.StatusOK, banner{
			Message:   "Welcome to the Shop API",
			Version:   version,
			Endpoints: endpoints,
		})
	})

	r.Get("/health", app.handleHealth)

	if app.config.Metrics.Enabled {
		r.Method(http.MethodGet, app.config.Metrics.Path, app.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Post("/", productHandler.CreateProduct)
			r.Get("/{id}", productHandler.GetProduct)
			r.Put("/{id}", productHandler.UpdateProduct)
			r.Delete("/{id}", productHandler.DeleteProduct)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.ListOrders)
			r.Post("/", orderHandler.CreateOrder)
			r.Get("/{id}", orderHandler.GetOrder)
			r.Put("/{id}", orderHandler.UpdateOrder)
			r.Delete("/{id}", orderHandler.DeleteOrder)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)
			r.Get("/{id}", taskHandler.GetTask)
			r.Put("/{id}", taskHandler.UpdateTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
		})
	})

	r.Route("/todos", func(r chi.Router) {
		r.Get("/", todoHandler.ListTodos)
		r.Post("/", todoHandler.CreateTodo)
		r.Get("/{id}", todoHandler.GetTodo)
		r.Put("/{id}", todoHandler.UpdateTodo)
		r.Delete("/{id}", todoHandler.DeleteTodo)
	})

	return r
}

// handleHealth pings every store. Any failing ping makes the whole report
// 503.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	report := healthReport{Status: "ok", Checks: make(map[string]string, len(app.healthChecks))}
	status := http.StatusOK
	for _, hc := range app.healthChecks {
		if err := hc.check(ctx); err != nil {
			report.Checks[hc.name] = redact.Error(err)
			report.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		report.Checks[hc.name] = "ok"
	}

	shared.RespondWithJSON(w, r, status, shared.SuccessResponse{
		Success: status == http.StatusOK,
		Data:    report,
	})
}
