package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hongminglow/crime-report-hub/internal/config"
	"github.com/hongminglow/crime-report-hub/internal/logging"
	"github.com/hongminglow/crime-report-hub/internal/server"
	"github.com/hongminglow/crime-report-hub/internal/storage/backend"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(os.Stdout, cfg.Development())

	ctx := context.Background()
	userStore, kind, err := backend.Open(ctx, cfg.DBLocation)
	if err != nil {
		logger.Error(ctx, "init database", "error", err)
		os.Exit(1)
	}
	logger.Info(ctx, "database connected", "backend", kind)

	srv := server.New(cfg, userStore, logger)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "crime report hub listening", "addr", srv.Addr(), "env", cfg.AppEnv)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	exitCode := 0
	select {
	case sig := <-sigCh:
		logger.Info(ctx, "shutting down", "signal", sig.String())
	case err := <-serverErr:
		logger.Error(ctx, "http server error", "error", err)
		exitCode = 1
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error(ctx, "graceful shutdown error", "error", err)
	}
	if err := userStore.Close(ctxShutdown); err != nil {
		logger.Error(ctx, "close database", "error", err)
	}
	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
