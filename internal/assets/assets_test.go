package assets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theirongolddev/seventy/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrigin(t *testing.T, missing string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == missing {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("body of " + r.URL.Path))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest()
	assert.Equal(t, "7030-cache-v1", m.CacheName())
	assert.Equal(t, "/index.html", m.Fallback)
	assert.Equal(t, []string{
		"/", "/index.html", "/manifest.json",
		"/icons/icon-192.png", "/icons/icon-512.png",
		"/css/style.css", "/js/app.js",
	}, m.Paths)
}

func TestParseManifest_Rejects(t *testing.T) {
	_, err := ParseManifest([]byte("paths: [/a]"))
	assert.Error(t, err)
	_, err = ParseManifest([]byte("version: v2\npaths: [a]"))
	assert.Error(t, err)
	_, err = ParseManifest([]byte("version: v2\nfallback: /x\npaths: [/a]"))
	assert.Error(t, err)
}

func TestInstall_StoresEveryAsset(t *testing.T) {
	srv, _ := newOrigin(t, "")
	bucket := store.NewMemory()
	c := New(bucket, NewHTTPFetcher(srv.URL, time.Second), WithWorkers(2))

	require.NoError(t, c.Install(context.Background()))

	st, err := c.Status()
	require.NoError(t, err)
	assert.True(t, st.Complete())
	assert.Equal(t, 7, st.Installed)

	a, ok, err := bucket.GetAsset("7030-cache-v1", "/css/style.css")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "body of /css/style.css", string(a.Body))
	assert.Equal(t, "text/plain", a.ContentType)
}

func TestInstall_AllOrNothing(t *testing.T) {
	srv, _ := newOrigin(t, "/js/app.js")
	bucket := store.NewMemory()
	c := New(bucket, NewHTTPFetcher(srv.URL, time.Second))

	err := c.Install(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	n, err := bucket.AssetCount("7030-cache-v1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInstall_NoOrigin(t *testing.T) {
	c := New(store.NewMemory(), NewHTTPFetcher("", 0))
	assert.Error(t, c.Install(context.Background()))
}

func TestActivate_DeletesOtherVersions(t *testing.T) {
	bucket := store.NewMemory()
	require.NoError(t, bucket.PutAssets("7030-cache-v0", []store.Asset{{Path: "/", Body: []byte("old")}}))
	require.NoError(t, bucket.PutAssets("7030-cache-v1", []store.Asset{{Path: "/", Body: []byte("new")}}))

	c := New(bucket, nil)
	deleted, err := c.Activate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"7030-cache-v0"}, deleted)

	names, err := bucket.AssetCacheNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"7030-cache-v1"}, names)
}

func TestFetch_PrefersCache(t *testing.T) {
	srv, hits := newOrigin(t, "")
	bucket := store.NewMemory()
	require.NoError(t, bucket.PutAssets("7030-cache-v1", []store.Asset{{Path: "/js/app.js", Body: []byte("cached")}}))

	c := New(bucket, NewHTTPFetcher(srv.URL, time.Second))
	resp, err := c.Fetch(context.Background(), "/js/app.js")
	require.NoError(t, err)
	assert.Equal(t, FromCache, resp.Source)
	assert.Equal(t, "cached", string(resp.Body))
	assert.Zero(t, hits.Load())
}

func TestFetch_FallsThroughToNetwork(t *testing.T) {
	srv, _ := newOrigin(t, "")
	c := New(store.NewMemory(), NewHTTPFetcher(srv.URL, time.Second))

	resp, err := c.Fetch(context.Background(), "/other.txt")
	require.NoError(t, err)
	assert.Equal(t, FromNetwork, resp.Source)
	assert.Equal(t, "body of /other.txt", string(resp.Body))
}

func TestFetch_OfflineUsesFallback(t *testing.T) {
	bucket := store.NewMemory()
	require.NoError(t, bucket.PutAssets("7030-cache-v1", []store.Asset{{Path: "/index.html", ContentType: "text/html", Body: []byte("<html>")}}))

	srv, _ := newOrigin(t, "")
	fetcher := NewHTTPFetcher(srv.URL, time.Second)
	srv.Close()

	c := New(bucket, fetcher)
	resp, err := c.Fetch(context.Background(), "/css/style.css")
	require.NoError(t, err)
	assert.Equal(t, FromFallback, resp.Source)
	assert.Equal(t, "/index.html", resp.Path)
	assert.Equal(t, "<html>", string(resp.Body))
}

func TestFetch_Unavailable(t *testing.T) {
	c := New(store.NewMemory(), nil)
	_, err := c.Fetch(context.Background(), "/css/style.css")
	assert.ErrorIs(t, err, ErrUnavailable)
}
