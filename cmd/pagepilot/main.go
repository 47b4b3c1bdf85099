package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	facebookadapter "pagepilot/internal/adapter/driven/facebook"
	ollamaadapter "pagepilot/internal/adapter/driven/ollama"
	sqliteadapter "pagepilot/internal/adapter/driven/sqlite"
	httphandler "pagepilot/internal/adapter/driving/http"
	"pagepilot/internal/application"
	"pagepilot/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load .env (optional) and configuration. Missing page credentials
	// are the only condition that prevents startup.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"page", cfg.PageID,
		"model", cfg.OllamaModel,
		"dry_run", cfg.DryRun,
		"poll_interval", cfg.PollInterval,
		"db_path", cfg.DBPath,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	// 4. Run migrations on the writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters.
	replyStore := sqliteadapter.NewReplyRepo(db)

	graph := facebookadapter.NewClient(cfg.AccessToken, cfg.APIVersion)
	defer graph.Close()

	generator := ollamaadapter.NewClient(cfg.OllamaHost, cfg.OllamaModel, cfg.OllamaTimeout)
	defer generator.Close()

	// 6. Create and start the reply loop.
	replySvc := application.NewReplyService(graph, graph, generator, replyStore, cfg)
	go replySvc.Start(ctx)

	// 7. Ops API + metrics.
	apiHandler := httphandler.NewHandler(replyStore, replySvc, cfg, slog.Default())
	mux := http.NewServeMux()
	mux.Handle("/api/v1/", httphandler.NewServeMux(apiHandler, slog.Default()))
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("ops server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ops server error", "error", err)
		}
	}()

	slog.Info("pagepilot started", "page", cfg.PageID, "dry_run", cfg.DryRun)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("ops server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
