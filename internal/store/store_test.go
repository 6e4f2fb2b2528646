package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "seventy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Both implementations must satisfy the same contract.
func kvImplementations(t *testing.T) map[string]KV {
	return map[string]KV{
		"sqlite": openTestDB(t),
		"memory": NewMemory(),
	}
}

func TestKV_SaveThenLoad(t *testing.T) {
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Save(KeyTheme, "dark"))

			v, ok, err := kv.Load(KeyTheme)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "dark", v)

			require.NoError(t, kv.Save(KeyTheme, "light"))
			v, _, err = kv.Load(KeyTheme)
			require.NoError(t, err)
			assert.Equal(t, "light", v)
		})
	}
}

func TestKV_MissingKey(t *testing.T) {
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := kv.Load(KeyEntries)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestKV_Remove(t *testing.T) {
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Save(KeyEntries, "[]"))
			require.NoError(t, kv.Remove(KeyEntries))
			require.NoError(t, kv.Remove(KeyEntries))

			_, ok, err := kv.Load(KeyEntries)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestDB_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seventy.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Save(KeyEntries, `[{"date":"1/2/2026","income":100,"spent":50}]`))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	v, ok, err := db.Load(KeyEntries)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"date":"1/2/2026","income":100,"spent":50}]`, v)
}

func TestDB_AssetCache(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.PutAssets("7030-cache-v1", []Asset{
		{Path: "/index.html", ContentType: "text/html", Body: []byte("<html>")},
		{Path: "/css/style.css", ContentType: "text/css", Body: []byte("body{}")},
	}))
	require.NoError(t, db.PutAssets("7030-cache-v0", []Asset{
		{Path: "/index.html", Body: []byte("old")},
	}))

	a, ok, err := db.GetAsset("7030-cache-v1", "/index.html")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "text/html", a.ContentType)
	assert.Equal(t, []byte("<html>"), a.Body)

	_, ok, err = db.GetAsset("7030-cache-v1", "/missing.png")
	require.NoError(t, err)
	assert.False(t, ok)

	names, err := db.AssetCacheNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"7030-cache-v0", "7030-cache-v1"}, names)

	n, err := db.AssetCount("7030-cache-v1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, db.DeleteAssetCache("7030-cache-v0"))
	names, err = db.AssetCacheNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"7030-cache-v1"}, names)
}
