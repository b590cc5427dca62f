package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docomm/analytics-core/internal/graph"
	"github.com/docomm/analytics-core/internal/server"
	"github.com/docomm/analytics-core/internal/session"
	"github.com/docomm/analytics-core/pkg/config"
	"github.com/docomm/analytics-core/pkg/logger"
)

func main() {
	var configPath string
	var httpAddr string
	var logLevel string

	flag.StringVar(&configPath, "config", "", "path to YAML configuration file")
	flag.StringVar(&httpAddr, "http-addr", "", "HTTP listen address (overrides config)")
	flag.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error; overrides config)")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Error("failed to load config", "path", configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger.SetDefault(logger.NewText(cfg.LogLevel, os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := session.NewStore(graph.OptionsFromConfig(cfg.Analysis))

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewHTTPServer(store).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown requested")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
}
