package httpserver

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"freshcart/internal/checkout"
	"freshcart/internal/domain"
)

type productLister interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

type checkoutService interface {
	Checkout(ctx context.Context, in checkout.Input) (*checkout.Result, error)
}

type orderMarker interface {
	MarkPaid(ctx context.Context, id string) error
}

type orderPaidPublisher interface {
	OrderPaid(ctx context.Context, orderID string)
}

// Deps carries the collaborators the router hands to its handlers.
type Deps struct {
	Products    productLister
	Checkout    checkoutService
	Orders      orderMarker
	Events      orderPaidPublisher
	VerifyEvent eventVerifier
	CORSOrigins string
}

// buildRouter wires routes for the store API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Products == nil {
		return nil, errors.New("product repository is required")
	}
	if deps.Checkout == nil {
		return nil, errors.New("checkout service is required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	reg := prometheus.NewRegistry()
	metrics := newServerMetrics(reg)
	router.Use(metrics.middleware())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	api.Use(cors.New(corsConfig(deps.CORSOrigins)))

	api.GET("/products", productsHandler(deps.Products))
	// Registered for every method: the checkout contract answers non-POST
	// requests itself with a 405 JSON body.
	api.Any("/checkout", checkoutHandler(deps.Checkout))
	if deps.Orders != nil && deps.VerifyEvent != nil {
		api.POST("/webhook", webhookHandler(deps.Orders, deps.Events, deps.VerifyEvent, logger))
	}

	return router, nil
}

func corsConfig(origins string) cors.Config {
	cfg := cors.DefaultConfig()
	trimmed := strings.TrimSpace(origins)
	if trimmed == "" || trimmed == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	var allow []string
	for _, o := range strings.Split(trimmed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allow = append(allow, o)
		}
	}
	cfg.AllowOrigins = allow
	return cfg
}
