package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/config"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/delivery/http/handler"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/delivery/http/middleware"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/delivery/http/response"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
)

// Router holds HTTP handlers and router configuration
type Router struct {
	productHandler *handler.ProductHandler
	logger         *logger.Logger
	cfg            *config.Config
}

// NewRouter creates a new HTTP router
func NewRouter(productHandler *handler.ProductHandler, cfg *config.Config, log *logger.Logger) *Router {
	return &Router{
		productHandler: productHandler,
		logger:         log,
		cfg:            cfg,
	}
}

// Setup configures and returns the HTTP router
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(rt.logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.healthCheck)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(rt.cfg.RateLimit.Requests, rt.cfg.RateLimit.Window, rt.logger))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", rt.productHandler.Create)
			r.Post("/batch", rt.productHandler.CreateBatch)
			r.Get("/", rt.productHandler.List)
			r.Get("/active", rt.productHandler.ListActive)
			r.Get("/inactive", rt.productHandler.ListInactive)
			r.Get("/low-stock", rt.productHandler.ListLowStock)
			r.Put("/batch/price", rt.productHandler.AdjustPriceBatch)
			r.Put("/batch/stock", rt.productHandler.AdjustStockBatch)

			r.Route("/{hash}", func(r chi.Router) {
				r.Get("/", rt.productHandler.GetByHash)
				r.Get("/active", rt.productHandler.GetActiveByHash)
				r.Put("/", rt.productHandler.Update)
				r.Put("/status", rt.productHandler.UpdateStatus)
				r.Put("/deactivate", rt.productHandler.Deactivate)
				r.Delete("/", rt.productHandler.Delete)
			})
		})
	})

	return r
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
