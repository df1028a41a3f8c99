package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hongminglow/crime-report-hub/internal/client/api"
	"github.com/hongminglow/crime-report-hub/internal/client/cli"
	"github.com/hongminglow/crime-report-hub/internal/client/config"
	"github.com/hongminglow/crime-report-hub/internal/client/report"
	"github.com/hongminglow/crime-report-hub/internal/client/session"
	"github.com/hongminglow/crime-report-hub/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var logger logging.Logger = logging.New(io.Discard, false)
	if cfg.Debug {
		logger = logging.New(os.Stderr, true)
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	app := cli.NewApp(
		api.New(cfg.ServerDomain, httpClient),
		report.NewEmailJSSender(cfg.EmailJS, httpClient),
		session.NewStore(cfg.SessionFile),
		logger,
		os.Stdin,
		os.Stdout,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("client: %v", err)
	}
}
