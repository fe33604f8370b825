// Package cache implements the on-disk + in-process pricing cache (spec
// §4.4): a single metadata.json holding every entry, plus an in-memory
// layer kept in lockstep with it.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/logging"
)

// metadataFile is the single file a cache directory ever contains.
const metadataFile = "metadata.json"

// document is the on-disk shape of metadata.json.
type document struct {
	Entries map[string]types.CachedPriceEntry `json:"entries"`
}

// Manager is a per-process, per-invocation pricing cache. It is safe for
// concurrent use from multiple pricing workers; disk writes are serialized
// under the same lock that guards the in-memory map (spec §5).
type Manager struct {
	dir string
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]types.CachedPriceEntry
}

// New creates a cache rooted at dir with the given TTL. It loads any
// existing metadata.json immediately; a missing or corrupt file is treated
// as an empty cache (spec §4.4) and the latter is logged.
func New(dir string, ttl time.Duration) *Manager {
	m := &Manager{dir: dir, ttl: ttl, entries: map[string]types.CachedPriceEntry{}}
	m.load()
	return m
}

func (m *Manager) path() string {
	return filepath.Join(m.dir, metadataFile)
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path())
	if err != nil {
		return // no cache yet; empty is correct
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		logging.Warn("cache metadata is corrupt, starting with an empty cache",
			zap.String("path", m.path()), zap.Error(err))
		return
	}
	if doc.Entries != nil {
		m.entries = doc.Entries
	}
}

// GetCachedPrice returns the cached price for key if present and still
// within the TTL.
func (m *Manager) GetCachedPrice(key string) (decimal.Decimal, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok || !m.fresh(entry) {
		return decimal.Zero, false
	}
	return entry.Price, true
}

// GetStalePrice returns the cached price for key regardless of TTL — used
// as the last-resort fallback once catalog retries are exhausted (spec
// §4.3 step 4).
func (m *Manager) GetStalePrice(key string) (decimal.Decimal, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok {
		return decimal.Zero, false
	}
	return entry.Price, true
}

// HasFreshCache reports whether key has a non-expired entry.
func (m *Manager) HasFreshCache(key string) bool {
	_, ok := m.GetCachedPrice(key)
	return ok
}

// SetCachedPrice records price for key and immediately persists the whole
// cache to disk, so a subsequent GetCachedPrice within the same process
// sees it (read-your-write, spec §5) even before the invocation ends.
func (m *Manager) SetCachedPrice(key string, price decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = types.CachedPriceEntry{Price: price, Timestamp: time.Now().UnixMilli()}

	return m.persist(m.cloneLocked())
}

// PruneStaleEntries removes every entry past its TTL and persists the
// result, returning the number of entries removed.
func (m *Manager) PruneStaleEntries() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, entry := range m.entries {
		if !m.fresh(entry) {
			delete(m.entries, key)
			removed++
		}
	}

	if removed == 0 {
		return 0, nil
	}
	return removed, m.persist(m.cloneLocked())
}

func (m *Manager) fresh(entry types.CachedPriceEntry) bool {
	age := time.Since(time.UnixMilli(entry.Timestamp))
	return age <= m.ttl
}

func (m *Manager) cloneLocked() map[string]types.CachedPriceEntry {
	clone := make(map[string]types.CachedPriceEntry, len(m.entries))
	for k, v := range m.entries {
		clone[k] = v
	}
	return clone
}

func (m *Manager) persist(entries map[string]types.CachedPriceEntry) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(document{Entries: entries}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path(), data, 0o644)
}
