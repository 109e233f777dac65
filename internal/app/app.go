package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/comments/internal/config"
	"github.com/MrSnakeDoc/comments/internal/events"
	"github.com/MrSnakeDoc/comments/internal/httpserver"
	"github.com/MrSnakeDoc/comments/internal/httpserver/deps"
	"github.com/MrSnakeDoc/comments/internal/logger"
	"github.com/MrSnakeDoc/comments/internal/store"
	"github.com/MrSnakeDoc/comments/internal/utils"
	"github.com/MrSnakeDoc/comments/internal/version"
)

type App struct {
	cfg       *config.Config
	logger    logger.Logger
	server    *httpserver.Server
	store     store.Client
	publisher events.Publisher
}

// New wires configuration, logging, the document store, the event
// publisher and the HTTP server. The store is reachable when New returns.
func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Fail fast if the store is unavailable
	st, err := openStore(context.Background(), cfg, loggerClient)
	if err != nil {
		return nil, err
	}
	loggerClient.Info("store initialized", logger.String("backend", cfg.StoreBackend))

	publisher, err := openPublisher(cfg, loggerClient)
	if err != nil {
		utils.CloseLogged(st, "store", loggerClient)
		return nil, err
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		Store:        st,
		StoreBackend: cfg.StoreBackend,
		Publisher:    publisher,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		ServeWeb:     cfg.ServeWeb,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:       cfg,
		logger:    loggerClient,
		server:    server,
		store:     st,
		publisher: publisher,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting comments API v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("comments API %s", version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			runErr = fmt.Errorf("failed to stop server: %w", err)
		}
	case err := <-errCh:
		runErr = err
	}

	// In-flight requests are done: release the publisher before the store.
	utils.CloseLogged(a.publisher, "publisher", a.logger)
	utils.CloseLogged(a.store, "store", a.logger)

	if runErr != nil {
		return runErr
	}

	a.logger.Info("✅ comments API stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
