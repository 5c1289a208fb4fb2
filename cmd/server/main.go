package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	app "chat-relay/internal/app"
	httpx "chat-relay/internal/http"
	push "chat-relay/internal/push"
	relay "chat-relay/internal/relay"
	store "chat-relay/internal/store"
	ws "chat-relay/internal/ws"
)

func main() {
	// Load local .env (dev only)
	_ = godotenv.Load()

	cfg := app.LoadConfig()
	logger := app.NewLogger(cfg.Env)

	// Cancel on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Postgres connection + migrations
	pg, err := store.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("postgres.connect", "err", err)
		log.Fatal(err)
	}
	defer pg.Close()
	if err := store.RunMigrations(ctx, pg, logger); err != nil {
		logger.Error("migrations", "err", err)
		log.Fatal(err)
	}

	// Redis publisher for the push notification channel
	pub, err := push.NewPublisher(ctx, cfg, logger)
	if err != nil {
		logger.Error("redis.connect", "err", err)
		log.Fatal(err)
	}
	defer pub.Close()

	// Relay: registry + broadcaster + lifecycle hub
	registry := relay.NewRegistry()
	broadcaster := relay.NewBroadcaster(logger, registry)
	hub := relay.NewHub(logger, registry, broadcaster)
	gateway := ws.NewGateway(logger, hub)

	// HTTP + WS router
	router := httpx.NewRouter(cfg, logger, gateway, pg, pub)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("server.listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server.crash", "err", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	logger.Info("server.shutdown.start")

	// shutdown
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)

	logger.Info("server.shutdown.complete")
	_ = os.Stdout.Sync()
}
