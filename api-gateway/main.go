package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bistro-booking/api-gateway/internal/gateway"
	"bistro-booking/auth"
	"bistro-booking/config"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load()
	log.SetPrefix("[api-gateway] ")

	cfg := config.Load()
	gw := gateway.NewGateway(gateway.Config{
		APISvcURL:    cfg.APISvcURL,
		NotifySvcURL: cfg.NotifySvcURL,
		StaticDir:    getEnv("STATIC_DIR", "./frontend"),
	}, &http.Client{Timeout: 30 * time.Second})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", auth.HeaderName},
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: c.Handler(gw.SetupRoutes())}

	go func() {
		log.Printf("API Gateway starting on %s", cfg.HTTPAddr)
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
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
