package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/orders/internal/httpx/middlewares"
	"github.com/nikolayk812/orders/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type RouterOptions struct {
	Logger         *slog.Logger
	Metrics        *metrics.HTTPMetrics // optional
	Gatherer       prometheus.Gatherer  // optional, serves /metrics
	RequestTimeout time.Duration
}

func NewRouter(handler *Handler, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middlewares.RequestID)
	r.Use(middlewares.AccessLog(logger))
	r.Use(middleware.Recoverer)
	if opts.Metrics != nil {
		r.Use(middlewares.Metrics(opts.Metrics))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", handler.Health)
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(opts.Gatherer))
	}

	r.Route("/orders", func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(middleware.Timeout(opts.RequestTimeout))
		}
		// 415 for write requests with a body of another type
		r.Use(middleware.AllowContentType("application/json"))

		r.Get("/", handler.ListOrders)
		r.Post("/", handler.CreateOrder)

		r.Route("/{order_id}", func(r chi.Router) {
			r.Get("/", handler.GetOrder)
			r.Put("/", handler.UpdateOrder)
			r.Delete("/", handler.DeleteOrder)

			r.Put("/cancel", handler.CancelOrder)
			r.Post("/repeat", handler.RepeatOrder)

			r.Get("/items", handler.ListItems)
			r.Post("/items", handler.AddItem)
			r.Get("/items/{item_id}", handler.GetItem)
			r.Put("/items/{item_id}", handler.UpdateItem)
			r.Delete("/items/{item_id}", handler.DeleteItem)
		})
	})

	return r
}
