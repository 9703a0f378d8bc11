// Package store persists one raw state document per profile for the
// reference backend. Documents are stored verbatim; validation happens at
// the HTTP layer.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmgblabel-png/bigharvestfarming/internal/domain"
	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
	"github.com/mmgblabel-png/bigharvestfarming/internal/metrics"
)

// Store persists state documents keyed by sanitized profile.
// Load returns domain.ErrProfileNotFound when the profile has no save.
type Store interface {
	Load(ctx context.Context, profile string) (string, error)
	Save(ctx context.Context, profile, document string) error
	Ping(ctx context.Context) error
	Close() error
}

// Options selects and configures a Store implementation
type Options struct {
	Driver      string
	SavesDir    string
	SQLitePath  string
	DatabaseURL string
	CacheSize   int
	CacheTTL    time.Duration
}

// Open creates the store named by opts.Driver. SQL stores are migrated on
// open. A positive CacheSize wraps the store in a CachedStore.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		s   Store
		err error
	)

	switch opts.Driver {
	case DriverFile, "":
		s, err = NewFileStore(opts.SavesDir)
	case DriverSQLite:
		s, err = NewSQLiteStore(ctx, opts.SQLitePath)
	case DriverPostgres:
		s, err = NewPostgresStore(ctx, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownDriver, opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgStoreOpened, "driver", opts.Driver, "cache_size", opts.CacheSize)

	if opts.CacheSize > 0 {
		s = NewCachedStore(s, opts.CacheSize, opts.CacheTTL)
	}
	return s, nil
}

// record counts a store operation by outcome
func record(driver, operation string, err error) {
	result := metrics.ResultSuccess
	switch {
	case err == nil:
	case isNotFound(err):
		result = metrics.ResultNotFound
	default:
		result = metrics.ResultFailure
	}
	metrics.StoreOperationsTotal.WithLabelValues(driver, operation, result).Inc()
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrProfileNotFound)
}
