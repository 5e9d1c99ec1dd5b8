package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/internal/infrastructure/database"
	"github.com/johnquangdev/joyability/pkg/config"
)

// Store is a string key-value store with optional expiry.
// A ttl of zero means the key never expires.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New opens the backend named by HISTORY_BACKEND
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.History.Backend {
	case "redis":
		store, err := NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		logger.Info("✅ Redis store connected", zap.String("addr", cfg.GetRedisAddr()))
		return store, nil
	case "sqlite":
		store, err := database.NewSQLiteStore(ctx, cfg.History.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("✅ SQLite store opened", zap.String("path", cfg.History.SQLitePath))
		return store, nil
	case "memory", "":
		logger.Info("📦 Using in-memory store")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.History.Backend)
	}
}
