package textobj

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// Default cache timings.
const (
	DefaultCacheTTL     = 30 * time.Second
	DefaultCacheCleanup = time.Minute
)

// Cache memoizes resolutions against snapshots of one buffer. It serves
// speculative callers, such as highlighting a pending selection, which may
// ask for the same object many times while the buffer is unchanged.
//
// Entries are keyed by snapshot revision, so a Cache must not be shared
// between buffers.
type Cache struct {
	resolver *Resolver
	entries  *gocache.Cache
}

type cachedSpan struct {
	span buffer.Span
	ok   bool
}

// NewCache creates a cache in front of resolver. A nil resolver uses the
// default settings.
func NewCache(resolver *Resolver, ttl time.Duration) *Cache {
	if resolver == nil {
		resolver = defaultResolver
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		resolver: resolver,
		entries:  gocache.New(ttl, DefaultCacheCleanup),
	}
}

// Preview resolves obj on snap, reusing an earlier result for the same
// revision, cursor, object, scope and count.
func (c *Cache) Preview(snap *buffer.Snapshot, cursor buffer.Point, obj Object, scope Scope, count int) (buffer.Span, bool) {
	key := fmt.Sprintf("%d|%d:%d|%d%s%s|%d|%d",
		snap.Revision(), cursor.Line, cursor.Column, obj.Kind, obj.Open, obj.Close, scope, count)
	if v, found := c.entries.Get(key); found {
		e := v.(cachedSpan)
		return e.span, e.ok
	}
	span, ok := c.resolver.Resolve(snap, cursor, obj, scope, count)
	c.entries.SetDefault(key, cachedSpan{span: span, ok: ok})
	return span, ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.ItemCount()
}

// Flush drops every cached entry.
func (c *Cache) Flush() {
	c.entries.Flush()
}
