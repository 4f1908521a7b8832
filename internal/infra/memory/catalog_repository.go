package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"art-quiz-service/internal/catalog"
	"art-quiz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches artwork records from a backing store (Postgres,
// flat files, etc).
type CatalogLoader interface {
	LoadArtworks(ctx context.Context, source string) ([]domain.Artwork, error)
}

// CatalogRepository caches built catalogs with TTL to avoid reloading the
// full artwork set on every session start.
type CatalogRepository struct {
	loader CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedCatalog
}

type cachedCatalog struct {
	catalog   domain.Catalog
	expiresAt time.Time
}

func NewCatalogRepository(loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedCatalog),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context, source string) (domain.Catalog, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[source]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.catalog, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(source, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[source]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.catalog, nil
		}
		r.mu.RUnlock()

		artworks, err := r.loader.LoadArtworks(ctx, source)
		if err != nil {
			return domain.Catalog{}, err
		}
		built := catalog.Build(artworks)

		r.mu.Lock()
		r.cache[source] = cachedCatalog{
			catalog:   built,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return domain.Catalog{}, err
	}
	return result.(domain.Catalog), nil
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticCatalogLoader serves artworks from an in-memory map (useful for
// tests/demos and running without Postgres).
type StaticCatalogLoader struct {
	sources map[string][]domain.Artwork
}

func NewStaticCatalogLoader(sources map[string][]domain.Artwork) *StaticCatalogLoader {
	return &StaticCatalogLoader{sources: sources}
}

func (l *StaticCatalogLoader) LoadArtworks(_ context.Context, source string) ([]domain.Artwork, error) {
	if artworks, ok := l.sources[source]; ok {
		return artworks, nil
	}
	return nil, domain.ErrCatalogNotFound
}
