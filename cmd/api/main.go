package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"freshcart/internal/checkout"
	"freshcart/internal/config"
	"freshcart/internal/db"
	"freshcart/internal/events"
	"freshcart/internal/httpserver"
	"freshcart/internal/payment"
	orderrepo "freshcart/internal/repository/order"
	productrepo "freshcart/internal/repository/product"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	stripeClient := payment.NewStripe(cfg.StripeSecretKey, logger)
	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.OrderEventsTopic, logger)
	defer publisher.Close()
	checkoutSvc := checkout.New(productRepo, orderRepo, stripeClient, publisher, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Products:    productRepo,
		Checkout:    checkoutSvc,
		Orders:      orderRepo,
		Events:      publisher,
		VerifyEvent: httpserver.StripeVerifier(cfg.StripeWebhookSecret),
		CORSOrigins: cfg.CORSAllowOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
