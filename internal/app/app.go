package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/neogan74/kvd/internal/admin"
	"github.com/neogan74/kvd/internal/config"
	"github.com/neogan74/kvd/internal/handlers"
	"github.com/neogan74/kvd/internal/logger"
	"github.com/neogan74/kvd/internal/metrics"
	"github.com/neogan74/kvd/internal/persistence"
	"github.com/neogan74/kvd/internal/server"
	"github.com/neogan74/kvd/internal/store"
)

// Builder wires kvd application dependencies.
type Builder struct {
	cfg     *config.Config
	version string
	logger  logger.Logger
	engine  persistence.Engine
	kvStore *store.KVStore
	closers []func()
}

// NewBuilder creates a new application builder.
func NewBuilder(cfg *config.Config, version string) *Builder {
	return &Builder{cfg: cfg, version: version}
}

// Build assembles the kvd application components.
func (b *Builder) Build() (*App, error) {
	b.initLogger()
	b.recordStartup()

	if err := b.initPersistence(); err != nil {
		b.cleanupOnError()
		return nil, err
	}

	if err := b.initStore(); err != nil {
		b.cleanupOnError()
		return nil, err
	}

	tcpServer := server.New(server.Config{
		Address:        b.cfg.Address(),
		ReadBufferSize: b.cfg.Server.ReadBufferSize,
	}, b.kvStore, handlers.NewKVHandler(b.kvStore), b.engine, b.logger)

	var adminServer *admin.Server
	if b.cfg.Admin.Enabled {
		adminServer = admin.New(b.cfg.AdminAddress(), b.kvStore, b.version, b.logger)
	}

	return &App{
		cfg:         b.cfg,
		logger:      b.logger,
		tcpServer:   tcpServer,
		adminServer: adminServer,
		closers:     b.closers,
	}, nil
}

func (b *Builder) initLogger() {
	b.logger = logger.NewFromConfig(b.cfg.Log.Level, b.cfg.Log.Format)
	logger.SetDefault(b.logger)
}

func (b *Builder) recordStartup() {
	metrics.BuildInfo.WithLabelValues(b.version, runtime.Version()).Set(1)

	b.logger.Info("Starting kvd",
		logger.String("version", b.version),
		logger.String("address", b.cfg.Address()),
		logger.String("log_level", b.cfg.Log.Level),
		logger.String("log_format", b.cfg.Log.Format),
		logger.String("persistence_type", b.cfg.Persistence.Type),
	)
}

func (b *Builder) initPersistence() error {
	engine, err := persistence.NewEngine(persistence.Config{
		Type:       b.cfg.Persistence.Type,
		StoreFile:  b.cfg.Persistence.StoreFile,
		DataDir:    b.cfg.Persistence.DataDir,
		SyncWrites: b.cfg.Persistence.SyncWrites,
	}, b.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize persistence engine: %w", err)
	}

	b.engine = engine

	b.addCloser(func() {
		if err := engine.Close(); err != nil {
			b.logger.Error("Failed to close persistence engine", logger.Error(err))
		}
	})

	return nil
}

func (b *Builder) initStore() error {
	b.kvStore = store.NewKVStore()

	// The store starts empty unless restore is explicitly requested.
	if b.cfg.Persistence.RestoreOnStart {
		items, err := b.engine.Load()
		if err != nil {
			return fmt.Errorf("failed to restore store snapshot: %w", err)
		}
		b.kvStore.Replace(items)
		b.logger.Info("Restored store snapshot", logger.Int("keys", b.kvStore.Len()))
	}

	// On shutdown the in-memory store is released before the process exits.
	b.addCloser(func() {
		b.kvStore.Clear()
	})

	metrics.KVStoreSize.Set(float64(b.kvStore.Len()))
	return nil
}

func (b *Builder) addCloser(closer func()) {
	b.closers = append(b.closers, closer)
}

func (b *Builder) cleanupOnError() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// App represents a configured kvd application ready to run.
type App struct {
	cfg         *config.Config
	logger      logger.Logger
	tcpServer   *server.Server
	adminServer *admin.Server
	closers     []func()
}

// Run starts the server loop and blocks until an interrupt arrives or the
// loop fails. On interrupt the store is released and Run returns nil so the
// process exits with status 0.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.tcpServer.Listen(); err != nil {
		a.runClosers()
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.tcpServer.Serve(ctx)
	}()

	if a.adminServer != nil {
		go func() {
			if err := a.adminServer.Listen(); err != nil {
				a.logger.Error("Admin endpoint failed", logger.Error(err))
			}
		}()
	}

	var runErr error
	select {
	case err := <-serverErr:
		runErr = err
	case <-ctx.Done():
		a.logger.Info("Shutting down server...")
		if err := <-serverErr; err != nil {
			runErr = err
		}
	}

	if a.adminServer != nil {
		if err := a.adminServer.Shutdown(); err != nil {
			a.logger.Error("Failed to shutdown admin endpoint", logger.Error(err))
		}
	}

	a.runClosers()

	if runErr != nil {
		a.logger.Error("Server failed", logger.Error(runErr))
		return runErr
	}

	a.logger.Info("Server exited gracefully")
	return nil
}

func (a *App) runClosers() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
