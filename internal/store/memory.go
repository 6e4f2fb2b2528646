package store

import (
	"sort"
	"sync"
)

// Memory is a process-local store. It backs tests and stands in for the
// database when the data directory can't be opened.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	assets map[string]map[string]Asset
}

var _ KV = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
		assets: make(map[string]map[string]Asset),
	}
}

// Close is a no-op so Memory can stand in for *DB.
func (m *Memory) Close() error { return nil }

// Load returns the value stored under key.
func (m *Memory) Load(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Save stores value under key.
func (m *Memory) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Remove deletes key.
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// PutAssets stores assets under cacheName.
func (m *Memory) PutAssets(cacheName string, assets []Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket, ok := m.assets[cacheName]
	if !ok {
		bucket = make(map[string]Asset, len(assets))
		m.assets[cacheName] = bucket
	}
	for _, a := range assets {
		a.Body = append([]byte(nil), a.Body...)
		bucket[a.Path] = a
	}
	return nil
}

// GetAsset returns the cached asset for path under cacheName.
func (m *Memory) GetAsset(cacheName, path string) (Asset, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assets[cacheName][path]
	return a, ok, nil
}

// AssetCacheNames returns the cache names present, sorted.
func (m *Memory) AssetCacheNames() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.assets))
	for name := range m.assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DeleteAssetCache removes every asset stored under cacheName.
func (m *Memory) DeleteAssetCache(cacheName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.assets, cacheName)
	return nil
}

// AssetCount returns the number of assets stored under cacheName.
func (m *Memory) AssetCount(cacheName string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.assets[cacheName]), nil
}
