package cache

import (
	"context"
	"time"

	"github.com/steemit/hivelens/internal/lookup"
)

// BundleEntry is the cached form of one successful lookup
type BundleEntry struct {
	Bundle     *lookup.Bundle `json:"bundle"`
	CapturedAt time.Time      `json:"captured_at"`
}

// BundleKey returns the cache key for a username's lookup bundle
func BundleKey(username string) string {
	return "hive_" + username
}

// PutBundle stores a lookup bundle under hive_<username>. Entries are
// currently write-only; nothing in the lookup path reads them back.
func (c *Cache) PutBundle(ctx context.Context, username string, bundle *lookup.Bundle, capturedAt time.Time) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	entry := BundleEntry{
		Bundle:     bundle,
		CapturedAt: capturedAt,
	}
	return c.SetJSON(ctx, BundleKey(username), entry, c.ttl)
}
