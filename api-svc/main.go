package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "bistro-booking/api-svc/internal/api/http"
	"bistro-booking/api-svc/internal/payment"
	"bistro-booking/api-svc/internal/service"
	"bistro-booking/api-svc/internal/storage"
	"bistro-booking/auth"
	"bistro-booking/config"

	"github.com/joho/godotenv"
)

const paidMarkerTTL = 24 * time.Hour

func main() {
	_ = godotenv.Load()
	log.SetPrefix("[api-svc] ")

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if cfg.StripeSecretKey == "" {
		log.Println("WARNING: STRIPE_SECRET_KEY is empty, checkout calls will fail")
	}

	db := config.MustInitPostgres(cfg)
	defer db.Close()
	if err := storage.EnsureSchema(context.Background(), db); err != nil {
		log.Fatal(err)
	}

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	writer := config.NewKafkaWriter(cfg, config.AdminEventsTopic)
	defer writer.Close()

	repo := storage.NewPostgresRepository(db)
	loc := cfg.Location()
	cache := storage.NewRedisCache(rdb, paidMarkerTTL, loc)
	notifier := service.NewNotifier(storage.NewKafkaPublisher(writer))
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	users := service.NewUserService(repo, tokens)
	reservations := service.NewReservationService(repo, notifier, service.DefaultQRGenerator{BaseURL: cfg.PublicURL}, loc)
	checkout := service.NewCheckoutService(service.CheckoutDeps{
		Users:        repo,
		Menu:         repo,
		Orders:       repo,
		Tx:           repo,
		Gateway:      payment.NewStripeGateway(cfg.StripeSecretKey, cfg.Currency),
		Markers:      cache,
		Sales:        cache,
		Notifier:     notifier,
		Reservations: reservations,
	}, service.CheckoutConfig{FrontendURL: cfg.FrontendURL})

	handler := &httpapi.Handler{
		Users:        users,
		Menu:         service.NewMenuService(repo),
		Cart:         service.NewCartService(repo, repo),
		Checkout:     checkout,
		Reservations: reservations,
		Orders:       service.NewOrderService(repo, notifier),
		Analytics:    service.NewAnalyticsService(cache, repo, repo, loc),
		Auth:         auth.NewMiddleware(tokens, users),
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: httpapi.NewRouter(handler)}
	go func() {
		log.Printf("API Service starting on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("WARNING: shutdown: %v", err)
	}
	notifier.Wait()
}
