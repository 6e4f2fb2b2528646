// Package assets keeps a versioned offline copy of seventy's web assets:
// install fetches the manifest into the cache, activate drops stale
// versions, and fetch serves cache first with a network and fallback path.
package assets

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/seventy/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var manifestYAML []byte

const cachePrefix = "7030-cache-"

// Manifest lists the assets of one version.
type Manifest struct {
	Version  string   `yaml:"version"`
	Fallback string   `yaml:"fallback"`
	Paths    []string `yaml:"paths"`
}

// CacheName returns the versioned cache name, e.g. "7030-cache-v1".
func (m Manifest) CacheName() string {
	return cachePrefix + m.Version
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing asset manifest: %w", err)
	}
	if m.Version == "" {
		return Manifest{}, errors.New("asset manifest has no version")
	}
	if len(m.Paths) == 0 {
		return Manifest{}, errors.New("asset manifest lists no paths")
	}
	for _, p := range m.Paths {
		if !strings.HasPrefix(p, "/") {
			return Manifest{}, fmt.Errorf("asset path %q must start with /", p)
		}
	}
	if m.Fallback != "" && !slices.Contains(m.Paths, m.Fallback) {
		return Manifest{}, fmt.Errorf("fallback %q is not a listed asset", m.Fallback)
	}
	return m, nil
}

// DefaultManifest returns the built-in manifest.
func DefaultManifest() Manifest {
	m, err := ParseManifest(manifestYAML)
	if err != nil {
		panic(err) // embedded file is part of the build
	}
	return m
}

// Bucket is the storage the cache writes into. *store.DB and *store.Memory satisfy it.
type Bucket interface {
	PutAssets(cacheName string, assets []store.Asset) error
	GetAsset(cacheName, path string) (store.Asset, bool, error)
	AssetCacheNames() ([]string, error)
	DeleteAssetCache(cacheName string) error
	AssetCount(cacheName string) (int, error)
}

// Source says where a fetched asset came from.
type Source int

const (
	FromCache Source = iota
	FromNetwork
	FromFallback
)

func (s Source) String() string {
	switch s {
	case FromCache:
		return "cache"
	case FromNetwork:
		return "network"
	case FromFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Response is a served asset.
type Response struct {
	Path        string
	ContentType string
	Body        []byte
	Source      Source
}

// ErrUnavailable is returned when an asset is neither cached, reachable,
// nor covered by a cached fallback.
var ErrUnavailable = errors.New("assets: unavailable offline")

// Status describes the cache state.
type Status struct {
	Current   string
	Installed int
	Expected  int
	Caches    []string
}

// Complete reports whether every manifest asset is cached.
func (s Status) Complete() bool { return s.Installed == s.Expected }

// Cache ties a manifest to a bucket and a fetcher. The fetcher may be nil
// when no origin is configured; then only cached bytes are served.
type Cache struct {
	manifest Manifest
	bucket   Bucket
	fetcher  Fetcher
	workers  int
	log      *zap.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithManifest replaces the built-in manifest.
func WithManifest(m Manifest) Option {
	return func(c *Cache) { c.manifest = m }
}

// WithWorkers bounds concurrent downloads during Install.
func WithWorkers(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Cache.
func New(bucket Bucket, fetcher Fetcher, opts ...Option) *Cache {
	c := &Cache{
		manifest: DefaultManifest(),
		bucket:   bucket,
		fetcher:  fetcher,
		workers:  4,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Manifest returns the manifest in use.
func (c *Cache) Manifest() Manifest { return c.manifest }

// Install downloads every manifest asset and stores them under the current
// cache name. If any download fails nothing is stored.
func (c *Cache) Install(ctx context.Context) error {
	if isNilFetcher(c.fetcher) {
		return errors.New("assets: no origin configured")
	}

	paths := c.manifest.Paths
	fetched := make([]store.Asset, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, p := range paths {
		g.Go(func() error {
			contentType, body, err := c.fetcher.Fetch(gctx, p)
			if err != nil {
				return err
			}
			fetched[i] = store.Asset{Path: p, ContentType: contentType, Body: body}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.log.Warn("asset install failed", zap.String("cache", c.manifest.CacheName()), zap.Error(err))
		return fmt.Errorf("installing %s: %w", c.manifest.CacheName(), err)
	}

	if err := c.bucket.PutAssets(c.manifest.CacheName(), fetched); err != nil {
		return fmt.Errorf("storing %s: %w", c.manifest.CacheName(), err)
	}
	c.log.Info("assets installed", zap.String("cache", c.manifest.CacheName()), zap.Int("count", len(fetched)))
	return nil
}

// Activate deletes every cache other than the current one and returns
// the deleted names.
func (c *Cache) Activate(ctx context.Context) ([]string, error) {
	names, err := c.bucket.AssetCacheNames()
	if err != nil {
		return nil, fmt.Errorf("listing caches: %w", err)
	}

	current := c.manifest.CacheName()
	var deleted []string
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		if name == current {
			continue
		}
		if err := c.bucket.DeleteAssetCache(name); err != nil {
			return deleted, fmt.Errorf("deleting %s: %w", name, err)
		}
		c.log.Info("stale asset cache deleted", zap.String("cache", name))
		deleted = append(deleted, name)
	}
	return deleted, nil
}

// Fetch serves path from the current cache, then the network, then the
// cached fallback page.
func (c *Cache) Fetch(ctx context.Context, path string) (Response, error) {
	current := c.manifest.CacheName()

	a, ok, err := c.bucket.GetAsset(current, path)
	if err != nil {
		c.log.Warn("asset cache read failed", zap.String("path", path), zap.Error(err))
	}
	if ok {
		return Response{Path: path, ContentType: a.ContentType, Body: a.Body, Source: FromCache}, nil
	}

	var netErr error
	if !isNilFetcher(c.fetcher) {
		contentType, body, err := c.fetcher.Fetch(ctx, path)
		if err == nil {
			return Response{Path: path, ContentType: contentType, Body: body, Source: FromNetwork}, nil
		}
		netErr = err
		c.log.Debug("live asset fetch failed", zap.String("path", path), zap.Error(err))
	}

	if c.manifest.Fallback != "" {
		fb, ok, err := c.bucket.GetAsset(current, c.manifest.Fallback)
		if err == nil && ok {
			return Response{Path: c.manifest.Fallback, ContentType: fb.ContentType, Body: fb.Body, Source: FromFallback}, nil
		}
	}

	if netErr != nil {
		return Response{}, fmt.Errorf("%w: %s: %w", ErrUnavailable, path, netErr)
	}
	return Response{}, fmt.Errorf("%w: %s", ErrUnavailable, path)
}

// Status reports what is cached.
func (c *Cache) Status() (Status, error) {
	names, err := c.bucket.AssetCacheNames()
	if err != nil {
		return Status{}, fmt.Errorf("listing caches: %w", err)
	}
	n, err := c.bucket.AssetCount(c.manifest.CacheName())
	if err != nil {
		return Status{}, fmt.Errorf("counting assets: %w", err)
	}
	return Status{
		Current:   c.manifest.CacheName(),
		Installed: n,
		Expected:  len(c.manifest.Paths),
		Caches:    names,
	}, nil
}

func isNilFetcher(f Fetcher) bool {
	if f == nil {
		return true
	}
	h, ok := f.(*HTTPFetcher)
	return ok && h == nil
}
