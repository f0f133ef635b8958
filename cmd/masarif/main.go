package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"masarif/internal/cache"
	"masarif/internal/config"
	apphttp "masarif/internal/http"
	"masarif/internal/normalize"
	"masarif/internal/services"
	"masarif/internal/source"
	"masarif/internal/source/csvfile"
	gsource "masarif/internal/source/google"
	"masarif/internal/source/memory"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var reader source.TableReader
	switch cfg.Source {
	case config.SourceSheets:
		cli, err := gsource.New(ctx, gsource.Config{
			SpreadsheetID:   cfg.SpreadsheetID,
			Tabs:            cfg.Tabs(),
			CredentialsJSON: cfg.CredentialsJSON,
			CredentialsFile: cfg.CredentialsFile,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets source", "error", err)
			os.Exit(1)
		}
		reader = cli
		logger.Info("Initialized Google Sheets source", "spreadsheet", cfg.SpreadsheetID)
	case config.SourceCSV:
		reader = csvfile.New(cfg.CSVPaths())
		logger.Info("Initialized CSV source", "expenses", cfg.ExpensesCSV, "income", cfg.IncomeCSV)
	default:
		reader = memory.NewSeeded()
		logger.Info("Initialized seeded memory source")
	}

	tables := cache.NewTables(reader, cfg.CacheSize, cfg.CacheTTL)
	manager := cache.NewManager()
	manager.Register(tables)
	manager.StartCleanup(cfg.CacheCleanupInterval)

	dashboard := services.NewDashboard(tables, normalize.New(cfg.NormalizeOptions()), cfg.CategoryColumns())

	srv := apphttp.NewServer(":"+cfg.Port, dashboard)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 120 * time.Second
	srv.MaxHeaderBytes = 1 << 20

	go func() {
		logger.Info("Server listening", "addr", srv.Addr, "source", cfg.Source)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	manager.Stop()
}
