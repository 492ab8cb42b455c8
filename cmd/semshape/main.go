// Package main provides the semshape binary entry point.
// Semshape serves semantic data models from a content directory over HTTP,
// compiles SHACL shapes into JSON Schema, and validates instance data.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/c360studio/semshape/config"
	"github.com/c360studio/semshape/federate"
	"github.com/c360studio/semshape/server"
	"github.com/c360studio/semshape/shape"
	"github.com/c360studio/semshape/store"
	"github.com/c360studio/semshape/validate"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semshape"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		contentDir string
		port       int
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "semshape",
		Short: "Networked repository for semantic data models",
		Long: `Semshape serves RDFS/OWL classes, properties, and SHACL shapes from a
content directory in multiple representations and validates instance
data against them.

It provides:
- Schema retrieval as Turtle, JSON-LD, HTML, or JSON Schema
- Shape compilation with inheritance and conflict detection
- Instance validation, locally or delegated to federated instances
- Triple-pattern queries over the combined graph`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, contentDir, port, logLevel)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&contentDir, "content", "", "Content directory holding schema files")
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func run(configPath, contentDir string, port int, logLevel string) error {
	// Configure logging
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(configPath, logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Flags override file values
	if contentDir != "" {
		cfg.Content.Dir = contentDir
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	absContentDir, err := filepath.Abs(cfg.Content.Dir)
	if err != nil {
		return fmt.Errorf("resolve content dir: %w", err)
	}
	info, err := os.Stat(absContentDir)
	if err != nil {
		return fmt.Errorf("stat content dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", absContentDir)
	}

	ctx := context.Background()
	signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	// Optional NATS events; the repository works without a broker.
	var nc *nats.Conn
	if cfg.NATS.URL != "" {
		nc, err = nats.Connect(cfg.NATS.URL,
			nats.Name(appName),
			nats.MaxReconnects(-1),
			nats.ReconnectWait(time.Second))
		if err != nil {
			logger.Warn("NATS unavailable, events disabled", "url", cfg.NATS.URL, "error", err)
		} else {
			defer nc.Close()
			logger.Info("Connected to NATS", "url", cfg.NATS.URL)
		}
	}

	schemaStore := store.New(store.Options{
		ContentDir:     absContentDir,
		RescanInterval: cfg.Content.RescanInterval,
		DebounceDelay:  cfg.Content.DebounceDelay,
		Publisher:      store.NewPublisher(nc),
		Logger:         logger,
	})

	srv := server.New(server.Options{
		Store:            schemaStore,
		Compiler:         shape.NewCompiler(logger),
		Engine:           validate.NewEngine(logger),
		Federation:       federate.New(cfg.Federation.Timeout, cfg.Federation.MaxHops, logger),
		IgnoreNamespaces: cfg.Validation.IgnoreNamespaces,
		Logger:           logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	storeErr := make(chan error, 1)
	go func() {
		storeErr <- schemaStore.Run(signalCtx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Semshape ready",
			"version", Version,
			"addr", addr,
			"content_dir", absContentDir)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-signalCtx.Done():
		logger.Info("Received shutdown signal")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case err := <-storeErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("schema store: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down HTTP server", "error", err)
	}

	logger.Info("Semshape shutdown complete")
	return nil
}

func loadConfig(configPath string, logger *slog.Logger) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.NewLoader(logger).Load()
}
