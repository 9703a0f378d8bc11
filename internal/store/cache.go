package store

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mmgblabel-png/bigharvestfarming/internal/concurrency"
	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
	"github.com/mmgblabel-png/bigharvestfarming/internal/metrics"
)

// cachedEntry wraps a document with version metadata for cache invalidation
type cachedEntry struct {
	Version  string
	Document string
	CachedAt time.Time
}

// CachedStore is a write-through LRU cache in front of another Store.
// Entries expire after ttl; entries written under an older
// CacheSchemaVersion are treated as misses. A profile's backing call and the
// cache update that follows it happen under that profile's lock, so the
// cached document always matches the last completed write.
type CachedStore struct {
	next  Store
	lru   *expirable.LRU[string, *cachedEntry]
	locks *concurrency.LockManager
}

// NewCachedStore wraps next with a cache of size entries
func NewCachedStore(next Store, size int, ttl time.Duration) *CachedStore {
	return &CachedStore{
		next:  next,
		lru:   expirable.NewLRU[string, *cachedEntry](size, nil, ttl),
		locks: concurrency.NewLockManager(),
	}
}

// Load serves from cache, falling back to the wrapped store
func (c *CachedStore) Load(ctx context.Context, profile string) (string, error) {
	if entry, ok := c.lru.Get(profile); ok {
		if entry.Version == CacheSchemaVersion {
			metrics.StoreCacheHits.Inc()
			return entry.Document, nil
		}
		logger.FromContext(ctx).Debug(LogMsgCacheInvalidate, logger.AttrKeyProfile, profile, "version", entry.Version)
		c.lru.Remove(profile)
	}
	metrics.StoreCacheMisses.Inc()

	unlock := c.locks.Lock(profile)
	defer unlock()

	doc, err := c.next.Load(ctx, profile)
	if err != nil {
		return "", err
	}
	c.set(profile, doc)
	return doc, nil
}

// Save writes through and refreshes the cached entry
func (c *CachedStore) Save(ctx context.Context, profile, document string) error {
	unlock := c.locks.Lock(profile)
	defer unlock()

	if err := c.next.Save(ctx, profile, document); err != nil {
		c.lru.Remove(profile)
		return err
	}
	c.set(profile, document)
	return nil
}

// Invalidate drops a profile from the cache
func (c *CachedStore) Invalidate(profile string) {
	c.lru.Remove(profile)
}

// Len reports the number of cached profiles
func (c *CachedStore) Len() int {
	return c.lru.Len()
}

// Ping checks the wrapped store
func (c *CachedStore) Ping(ctx context.Context) error {
	return c.next.Ping(ctx)
}

// Close purges the cache and closes the wrapped store
func (c *CachedStore) Close() error {
	c.lru.Purge()
	return c.next.Close()
}

func (c *CachedStore) set(profile, doc string) {
	c.lru.Add(profile, &cachedEntry{
		Version:  CacheSchemaVersion,
		Document: doc,
		CachedAt: time.Now(),
	})
}
