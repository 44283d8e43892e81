package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/chainops/wsprobe/internal/config"
	"github.com/chainops/wsprobe/internal/counter"
	"github.com/chainops/wsprobe/internal/httpapi"
	"github.com/chainops/wsprobe/internal/logging"
	"github.com/chainops/wsprobe/internal/probe"
	"github.com/chainops/wsprobe/internal/scheduler"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir, cfg.Verbose)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	counters := counter.New()
	checker := probe.NewWSChecker(cfg.ConnectTimeout, cfg.RequestTimeout)
	mon := scheduler.NewMonitor(logger, checker, counters, cfg.MonitorURL, cfg.Interval)

	logger.Info("monitor_start",
		zap.String("url", cfg.MonitorURL),
		zap.Duration("interval", cfg.Interval),
		zap.Duration("connection_timeout", cfg.ConnectTimeout),
		zap.Duration("request_timeout", cfg.RequestTimeout),
	)
	go mon.Run(ctx)

	api := httpapi.NewServer(logger, counters, cfg.MonitorURL)
	srv := &http.Server{Addr: cfg.Addr, Handler: api.Router()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server_shutdown_error", zap.Error(err))
		}
	}()

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server_failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("stopped")
}
