package bootstrap

import (
	"context"
	"fmt"

	"github.com/mmgblabel-png/bigharvestfarming/internal/config"
	"github.com/mmgblabel-png/bigharvestfarming/internal/store"
)

// OpenStore opens the state store selected by the configuration
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	s, err := store.Open(ctx, store.Options{
		Driver:      cfg.StoreDriver,
		SavesDir:    cfg.SavesDir,
		SQLitePath:  cfg.SQLitePath,
		DatabaseURL: cfg.DatabaseURL,
		CacheSize:   cfg.CacheSize,
		CacheTTL:    cfg.CacheTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
	}
	return s, nil
}
