/*
main.go - Application entry point

STARTUP SEQUENCE:
  1. Load environment configuration, apply flag overrides
  2. Initialize structured logging
  3. Open the SQLite store
  4. Wire handler, router, and report scheduler
  5. Start serving with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT)
  -db      SQLite database path (overrides DB_PATH; ":memory:" works)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop the scheduler, drain active requests (30s
  timeout), close the database, exit.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/keystone/rent-engine/api"
	"github.com/keystone/rent-engine/config"
	"github.com/keystone/rent-engine/reports"
	"github.com/keystone/rent-engine/store/sqlite"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	reportCfg, err := cfg.ReportConfig()
	if err != nil {
		logger.Fatalf("invalid report configuration: %v", err)
	}

	st, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer st.Close()

	handler := api.NewHandler(st, reportCfg, logger)
	router := api.NewRouter(handler)

	scheduler := api.NewReportScheduler(st, reportCfg, &reports.LogNotifier{Logger: logger}, logger)
	scheduler.Enabled = cfg.ReportSchedulerEnabled
	scheduler.CheckInterval = cfg.ReportCheckInterval
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}

	logger.Info("server stopped")
}
