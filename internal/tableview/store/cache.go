package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shandysiswandi/tableview/internal/pkg/pkguid"
	"github.com/shandysiswandi/tableview/internal/tableview/entity"
)

// DefaultTTL is how long a table stays reachable when Config.TTL is not set.
const DefaultTTL = time.Hour

// maxIDAttempts bounds regeneration when a fresh id is already taken.
const maxIDAttempts = 8

var ErrIDExhausted = errors.New("could not generate a unique table id")

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Observer is told about cache size changes and evictions, typically metrics.
type Observer interface {
	CacheSize(n int)
	Evicted(n int)
}

type Config struct {
	TTL time.Duration
	// WarnEntries logs a warning on every sweep that leaves more entries
	// than this. Zero disables the warning.
	WarnEntries int
}

// TableCache keeps parsed tables in process memory under random ids.
//
// Entries expire TTL after they were stored. There is no background sweeper:
// every Put removes all expired entries, and a Get that finds an expired
// entry removes it. Nothing bounds the number of live entries.
type TableCache struct {
	mu      sync.Mutex
	entries map[string]entry

	ttl         time.Duration
	warnEntries int
	clock       Clock
	ids         pkguid.StringID
	observer    Observer
}

type entry struct {
	table     *entity.Table
	createdAt time.Time
}

func NewTableCache(cfg Config, ids pkguid.StringID, clock Clock, observer Observer) *TableCache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if clock == nil {
		clock = realClock{}
	}
	if ids == nil {
		ids = pkguid.NewToken("csv_")
	}

	return &TableCache{
		entries:     make(map[string]entry),
		ttl:         cfg.TTL,
		warnEntries: cfg.WarnEntries,
		clock:       clock,
		ids:         ids,
		observer:    observer,
	}
}

// Put stores tbl under a new id and sweeps expired entries.
func (c *TableCache) Put(ctx context.Context, tbl *entity.Table) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.newID()
	if err != nil {
		return "", err
	}

	now := c.clock.Now()
	c.entries[id] = entry{table: tbl, createdAt: now}
	c.sweepLocked(ctx, now)

	return id, nil
}

// Get returns the table stored under id. Unknown and expired ids report false.
func (c *TableCache) Get(ctx context.Context, id string) (*entity.Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return nil, false
	}

	if c.expired(e, c.clock.Now()) {
		delete(c.entries, id)
		slog.DebugContext(ctx, "csv table expired on read", "table_id", id)
		c.notify(1)
		return nil, false
	}

	return e.table, true
}

// Sweep removes every expired entry and returns how many were removed.
func (c *TableCache) Sweep(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sweepLocked(ctx, c.clock.Now())
}

// Len counts stored entries, including expired ones not swept yet.
func (c *TableCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *TableCache) newID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := c.ids.Generate()
		if _, taken := c.entries[id]; !taken && id != "" {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

func (c *TableCache) expired(e entry, now time.Time) bool {
	return now.Sub(e.createdAt) > c.ttl
}

func (c *TableCache) sweepLocked(ctx context.Context, now time.Time) int {
	removed := 0
	for id, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, id)
			removed++
		}
	}

	if removed > 0 {
		slog.DebugContext(ctx, "swept expired csv tables", "removed", removed, "remaining", len(c.entries))
	}
	if c.warnEntries > 0 && len(c.entries) > c.warnEntries {
		slog.WarnContext(ctx, "csv table cache is above its warning size",
			"entries", len(c.entries),
			"warn_entries", c.warnEntries,
			"ttl", c.ttl.String(),
		)
	}
	c.notify(removed)

	return removed
}

func (c *TableCache) notify(evicted int) {
	if c.observer == nil {
		return
	}
	if evicted > 0 {
		c.observer.Evicted(evicted)
	}
	c.observer.CacheSize(len(c.entries))
}
