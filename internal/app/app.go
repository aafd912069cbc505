package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/config"
	"github.com/hance08/payops/internal/constants"
	"github.com/hance08/payops/internal/ledger"
	"github.com/hance08/payops/internal/logging"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/query"
	"github.com/hance08/payops/internal/service"
	"github.com/hance08/payops/internal/store"
	"github.com/pterm/pterm"
)

type App struct {
	Config  *config.Config
	Service *service.Service
	Store   store.Repository
	Ledger  *ledger.Ledger
	Client  *api.Client
	Cache   *query.Cache
	Logger  *pterm.Logger

	DBPath     string
	LedgerPath string
}

// NewApp opens the local store, the idempotency ledger and the query cache,
// then wires the API client and services on top of them.
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	dbPath, err := resolvePath(cfg.Database.Path, constants.AppName+".db")
	if err != nil {
		return nil, nil, err
	}
	ledgerPath, err := resolvePath(cfg.Ledger.Path, "ledger.db")
	if err != nil {
		return nil, nil, err
	}

	gateway, err := model.ParseGateway(cfg.Defaults.Gateway)
	if err != nil {
		return nil, nil, fmt.Errorf("config defaults.gateway: %w", err)
	}

	dbStore, err := store.NewStore(dbPath, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	l, err := ledger.Open(ledgerPath)
	if err != nil {
		dbStore.Close()
		return nil, nil, fmt.Errorf("failed to open idempotency ledger: %w", err)
	}

	backend, closeBackend, err := newCacheBackend(cfg.Cache, dbStore, logger)
	if err != nil {
		l.Close()
		dbStore.Close()
		return nil, nil, err
	}

	cache := query.New(backend, cfg.Cache.TTL, logger)
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, dbStore, logger)
	client.OnSessionExpired(func() {
		if err := cache.InvalidateAll(context.Background()); err != nil {
			logger.Warn("failed to drop cache after session expiry", logger.Args("error", err))
		}
	})

	svc := service.NewService(client, cache, dbStore, l, logger, service.Config{
		DefaultGateway:  gateway,
		DefaultCurrency: cfg.Defaults.Currency,
		PageSize:        cfg.Defaults.PageSize,
		PollInterval:    cfg.Upload.PollInterval,
	})

	cleanup := func() {
		if err := closeBackend(); err != nil {
			logger.Warn("error closing cache backend", logger.Args("error", err))
		}
		if err := l.Close(); err != nil {
			logger.Warn("error closing ledger", logger.Args("error", err))
		}
		if err := dbStore.Close(); err != nil {
			fmt.Printf("Error closing DB: %v\n", err)
		}
	}

	return &App{
		Config:     cfg,
		Service:    svc,
		Store:      dbStore,
		Ledger:     l,
		Client:     client,
		Cache:      cache,
		Logger:     logger,
		DBPath:     dbPath,
		LedgerPath: ledgerPath,
	}, cleanup, nil
}

func newCacheBackend(cfg config.CacheConfig, repo *store.Store, logger *pterm.Logger) (query.Backend, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Backend) {
	case config.CacheBackendMemory:
		return query.NewMemoryBackend(), noop, nil
	case config.CacheBackendRedis:
		rb := query.NewRedisBackend(cfg.RedisAddr, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rb.Ping(ctx); err != nil {
			rb.Close()
			return nil, nil, fmt.Errorf("can not reach redis at %s: %w", cfg.RedisAddr, err)
		}
		return rb, rb.Close, nil
	case "", config.CacheBackendSQLite:
		sb := query.NewSQLiteBackend(repo)
		if n, err := sb.Purge(time.Now()); err != nil {
			logger.Warn("failed to purge expired cache entries", logger.Args("error", err))
		} else if n > 0 {
			logger.Debug("purged expired cache entries", logger.Args("count", n))
		}
		return sb, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend '%s' (must be sqlite, memory or redis)", cfg.Backend)
	}
}

// resolvePath expands "~" in configured, or falls back to name inside the
// application data directory.
func resolvePath(configured, name string) (string, error) {
	if configured == "" {
		appDir, err := GetAppDataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(appDir, name), nil
	}
	return ExpandPath(configured)
}

func GetAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, "."+constants.AppName), nil
	}

	return filepath.Join(configDir, constants.AppName), nil
}

func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}
