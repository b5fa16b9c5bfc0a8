package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"retail-customers/internal/domain"
	"retail-customers/internal/metrics"
	customersvc "retail-customers/internal/service/customer"
)

// CustomerService is the set of use-cases the customer routes call.
type CustomerService interface {
	Create(ctx context.Context, in customersvc.CreateInput) (*domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	ListByCredit(ctx context.Context, ascending bool) ([]*domain.Customer, error)
	Update(ctx context.Context, id string, in customersvc.UpdateInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	AddCredit(ctx context.Context, id string, amount float64) (*domain.Customer, error)
}

// Pinger reports storage readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps groups everything the router needs.
type Deps struct {
	CustomerSvc  CustomerService
	Store        Pinger
	Metrics      *metrics.Metrics
	AllowOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps) (*gin.Engine, error) {
	if deps.CustomerSvc == nil {
		return nil, errors.New("httpserver: customer service is required")
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), requestMetrics(deps.Metrics), corsMiddleware(deps.AllowOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Store))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	h := &customerHandler{svc: deps.CustomerSvc, logger: logger}
	customers := router.Group("/customers")
	customers.POST("", h.create)
	customers.GET("", h.list)
	customers.GET("/by-credit", h.listByCredit)
	customers.GET("/:id", h.get)
	customers.PUT("/:id", h.update)
	customers.DELETE("/:id", h.delete)
	customers.POST("/:id/credit", h.addCredit)

	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Route not found")
	})

	return router, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
