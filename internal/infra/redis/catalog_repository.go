package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"art-quiz-service/internal/catalog"
	"art-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches artwork records from a backing store (Postgres, etc).
type CatalogLoader interface {
	LoadArtworks(ctx context.Context, source string) ([]domain.Artwork, error)
}

// CatalogRepository caches artworks in Redis (hash per source) and falls
// back to a loader on cache miss.
// Artworks are stored as: HSET catalog:{source}:artworks {artworkID} {artworkJSON}
type CatalogRepository struct {
	client *redis.Client
	loader CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalogRepository(client *redis.Client, loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context, source string) (domain.Catalog, error) {
	key := r.artworksKey(source)

	cached, err := r.client.HGetAll(ctx, key).Result()
	if err == nil && len(cached) > 0 {
		return buildCatalogFromCache(cached), nil
	}

	result, err, _ := r.sf.Do(source, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		cached, err := r.client.HGetAll(ctx, key).Result()
		if err == nil && len(cached) > 0 {
			return buildCatalogFromCache(cached), nil
		}

		artworks, err := r.loader.LoadArtworks(ctx, source)
		if err != nil {
			return domain.Catalog{}, err
		}

		ttl := r.ttlWithJitter()
		pipe := r.client.Pipeline()
		for _, a := range artworks {
			data, err := json.Marshal(a)
			if err != nil {
				continue
			}
			pipe.HSet(ctx, key, a.ID, string(data))
		}
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return catalog.Build(artworks), nil
	})
	if err != nil {
		return domain.Catalog{}, err
	}
	return result.(domain.Catalog), nil
}

func (r *CatalogRepository) artworksKey(source string) string {
	return "catalog:" + source + ":artworks"
}

func buildCatalogFromCache(cached map[string]string) domain.Catalog {
	artworks := make([]domain.Artwork, 0, len(cached))
	for _, raw := range cached {
		var a domain.Artwork
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			continue
		}
		artworks = append(artworks, a)
	}
	return catalog.Build(artworks)
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
