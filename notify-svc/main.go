package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bistro-booking/auth"
	"bistro-booking/config"
	httpapi "bistro-booking/notify-svc/internal/api/http"
	"bistro-booking/notify-svc/internal/push"
	"bistro-booking/notify-svc/internal/service"
	"bistro-booking/notify-svc/internal/storage"

	"github.com/joho/godotenv"
)

const consumerGroup = "notify-svc"

func main() {
	_ = godotenv.Load()
	log.SetPrefix("[notify-svc] ")

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if cfg.VAPIDPublicKey == "" || cfg.VAPIDPrivateKey == "" {
		log.Println("WARNING: VAPID keys are empty, push delivery will fail")
	}

	db := config.MustInitPostgres(cfg)
	defer db.Close()
	if err := storage.EnsureSchema(context.Background(), db); err != nil {
		log.Fatal(err)
	}
	store := storage.NewStore(db)

	dispatcher := service.NewDispatcher(store, push.NewWebPushSender(push.VAPIDConfig{
		Subject:    cfg.VAPIDSubject,
		PublicKey:  cfg.VAPIDPublicKey,
		PrivateKey: cfg.VAPIDPrivateKey,
		TTL:        cfg.PushTTL,
	}), service.DefaultConcurrency)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	reader := config.NewKafkaReader(cfg, config.AdminEventsTopic, consumerGroup)
	defer reader.Close()
	consumerDone := make(chan struct{})
	go func() {
		service.NewConsumer(reader, dispatcher).Start(ctx)
		close(consumerDone)
	}()

	handler := &httpapi.Handler{
		Subscriptions: service.NewSubscriptionService(store),
		Dispatcher:    dispatcher,
		Auth:          auth.NewMiddleware(auth.NewTokenManager(cfg.JWTSecret), store),
	}
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: httpapi.NewRouter(handler)}
	go func() {
		log.Printf("Notification Service starting on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	stop()
	<-consumerDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARNING: shutdown: %v", err)
	}
}
