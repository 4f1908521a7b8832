package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"art-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogLoader loads artwork JSONB rows from Postgres.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadArtworks(ctx context.Context, source string) ([]domain.Artwork, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM artworks WHERE source=$1`, source)
	if err != nil {
		return nil, fmt.Errorf("load artworks: %w", err)
	}
	defer rows.Close()

	var artworks []domain.Artwork
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan artwork: %w", err)
		}
		var a domain.Artwork
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("unmarshal artwork: %w", err)
		}
		artworks = append(artworks, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artworks: %w", err)
	}
	return artworks, nil
}
