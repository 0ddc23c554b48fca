package prequal

import (
	"context"
	"sync"
	"time"

	"prequal/internal/bre"
	id "prequal/pkg/domain"
	"prequal/pkg/requestcontext"
)

// MemoryCache is the in-process ResultCache used when Redis is not
// configured. Entries expire lazily on read.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	ev      bre.Evaluation
	expires time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Put(ctx context.Context, phone id.Phone, ev bre.Evaluation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(phone, ev.LenderID)] = memoryEntry{
		ev:      ev,
		expires: requestcontext.Now(ctx).Add(offerValidityDays * 24 * time.Hour),
	}
	return nil
}

func (c *MemoryCache) Get(ctx context.Context, phone id.Phone, lender id.LenderID) (*bre.Evaluation, error) {
	c.mu.RLock()
	entry, ok := c.entries[cacheKey(phone, lender)]
	c.mu.RUnlock()
	if !ok || requestcontext.Now(ctx).After(entry.expires) {
		return nil, nil
	}
	ev := entry.ev
	return &ev, nil
}

func cacheKey(phone id.Phone, lender id.LenderID) string {
	return "prequal:offer:" + phone.String() + ":" + lender.String()
}
