// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/fastkv/fastkv-go/internal/config"
	cryptoDomain "github.com/fastkv/fastkv-go/internal/crypto/domain"
	cryptoService "github.com/fastkv/fastkv-go/internal/crypto/service"
	"github.com/fastkv/fastkv-go/internal/database"
	"github.com/fastkv/fastkv-go/internal/metrics"
	storageService "github.com/fastkv/fastkv-go/internal/storage/service"
	anchorDomain "github.com/fastkv/fastkv-go/internal/trustanchor/domain"
	anchorService "github.com/fastkv/fastkv-go/internal/trustanchor/service"
	vaultDomain "github.com/fastkv/fastkv-go/internal/vault/domain"
	vaultUsecase "github.com/fastkv/fastkv-go/internal/vault/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Services
	sealer cryptoService.Sealer
	anchor anchorService.TrustAnchor
	store  storageService.Store
	waiter *storageService.Waiter

	// Use Cases
	vaultUseCase vaultUsecase.VaultUseCase

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	sealerInit          sync.Once
	anchorInit          sync.Once
	storeInit           sync.Once
	waiterInit          sync.Once
	vaultUseCaseInit    sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection used by the "postgres" store backend.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// MetricsProvider returns the OpenTelemetry/Prometheus metrics provider.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is
// returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// Sealer returns the sealed-payload codec.
func (c *Container) Sealer() (cryptoService.Sealer, error) {
	var err error
	c.sealerInit.Do(func() {
		c.sealer, err = c.initSealer()
		if err != nil {
			c.initErrors["sealer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sealer"]; exists {
		return nil, storedErr
	}
	return c.sealer, nil
}

// TrustAnchor returns the configured trust-anchor adapter.
func (c *Container) TrustAnchor() (anchorService.TrustAnchor, error) {
	var err error
	c.anchorInit.Do(func() {
		c.anchor, err = c.initTrustAnchor()
		if err != nil {
			c.initErrors["anchor"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["anchor"]; exists {
		return nil, storedErr
	}
	return c.anchor, nil
}

// Store returns the configured storage adapter.
func (c *Container) Store() (storageService.Store, error) {
	var err error
	c.storeInit.Do(func() {
		c.store, err = c.initStore()
		if err != nil {
			c.initErrors["store"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["store"]; exists {
		return nil, storedErr
	}
	return c.store, nil
}

// Waiter returns the consistency waiter around the configured store.
func (c *Container) Waiter() (*storageService.Waiter, error) {
	var err error
	c.waiterInit.Do(func() {
		c.waiter, err = c.initWaiter()
		if err != nil {
			c.initErrors["waiter"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["waiter"]; exists {
		return nil, storedErr
	}
	return c.waiter, nil
}

// VaultUseCase returns the envelope coordinator.
func (c *Container) VaultUseCase() (vaultUsecase.VaultUseCase, error) {
	var err error
	c.vaultUseCaseInit.Do(func() {
		c.vaultUseCase, err = c.initVaultUseCase()
		if err != nil {
			c.initErrors["vaultUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultUseCase"]; exists {
		return nil, storedErr
	}
	return c.vaultUseCase, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Close the keeper anchor if one was opened
	if closer, ok := c.anchor.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("anchor close: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Shutdown metrics provider if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	if !c.config.MetricsEnabled {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}

	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

// initSealer creates the sealed-payload codec from the configured backend.
func (c *Container) initSealer() (cryptoService.Sealer, error) {
	var backend cryptoService.Backend
	switch c.config.CryptoBackend {
	case "std":
		backend = cryptoService.StdBackend
	case "tink":
		backend = cryptoService.TinkBackend
	default:
		return nil, fmt.Errorf("unsupported crypto backend: %s", c.config.CryptoBackend)
	}

	return cryptoService.NewSealer(cryptoService.NewAEADManager(backend)), nil
}

// initTrustAnchor creates the trust-anchor adapter from the configured mode.
func (c *Container) initTrustAnchor() (anchorService.TrustAnchor, error) {
	switch c.config.AnchorMode {
	case "outlayer":
		if c.config.AnchorSignerEndpoint == "" {
			return nil, fmt.Errorf("outlayer anchor mode requires a signer endpoint")
		}
		sign := anchorService.NewHTTPSignFunc(c.config.AnchorSignerEndpoint, nil)
		return anchorService.NewOutLayerAnchor(sign, anchorDomain.ResourceLimits{
			MaxInstructions: c.config.AnchorMaxInstructions,
			MaxMemoryBytes:  c.config.AnchorMaxMemoryBytes,
			MaxSeconds:      c.config.AnchorMaxSeconds,
		}), nil
	case "keeper":
		if c.config.KeeperKeyURI == "" {
			return nil, fmt.Errorf("keeper anchor mode requires a keeper key URI")
		}
		return anchorService.OpenKeeperAnchor(context.Background(), c.config.KeeperKeyURI)
	default:
		return nil, fmt.Errorf("unsupported anchor mode: %s", c.config.AnchorMode)
	}
}

// initStore creates the storage adapter from the configured backend, wrapped
// with the rate limiter when enabled.
func (c *Container) initStore() (storageService.Store, error) {
	var store storageService.Store

	switch c.config.StoreBackend {
	case "http":
		if c.config.StoreEndpoint == "" {
			return nil, fmt.Errorf("http store backend requires an endpoint")
		}
		store = storageService.NewHTTPStore(
			c.config.StoreEndpoint,
			c.config.AccountID,
			c.config.StoreContractID,
			nil,
		)
	case "postgres":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for postgres store: %w", err)
		}
		pgStore := storageService.NewPostgresStore(db)
		if err := pgStore.Migrate(context.Background()); err != nil {
			return nil, err
		}
		store = pgStore
	case "memory":
		store = storageService.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", c.config.StoreBackend)
	}

	if c.config.RateLimitEnabled {
		store = storageService.NewRateLimitedStore(
			store,
			c.config.RateLimitRequestsPerSec,
			c.config.RateLimitBurst,
		)
	}

	return store, nil
}

// initWaiter creates the consistency waiter around the configured store.
func (c *Container) initWaiter() (*storageService.Waiter, error) {
	store, err := c.Store()
	if err != nil {
		return nil, fmt.Errorf("failed to get store for waiter: %w", err)
	}

	return storageService.NewWaiter(
		store,
		c.config.WaitInitialInterval,
		c.config.WaitMaxElapsed,
	), nil
}

// initVaultUseCase creates the envelope coordinator with all its dependencies.
func (c *Container) initVaultUseCase() (vaultUsecase.VaultUseCase, error) {
	sealer, err := c.Sealer()
	if err != nil {
		return nil, fmt.Errorf("failed to get sealer for vault use case: %w", err)
	}

	anchor, err := c.TrustAnchor()
	if err != nil {
		return nil, fmt.Errorf("failed to get trust anchor for vault use case: %w", err)
	}

	store, err := c.Store()
	if err != nil {
		return nil, fmt.Errorf("failed to get store for vault use case: %w", err)
	}

	identity := vaultDomain.Identity{
		AccountID:   c.config.AccountID,
		Namespace:   c.config.Namespace,
		GroupSuffix: c.config.GroupSuffix,
	}

	baseUseCase, err := vaultUsecase.NewVaultUseCase(
		identity,
		sealer,
		anchor,
		store,
		cryptoDomain.Algorithm(c.config.Algorithm),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault use case: %w", err)
	}

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for vault use case: %w", err)
		}
		return vaultUsecase.NewVaultUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
