package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"art-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ProfileStore persists user profiles (lifetime score, collection) in
// Postgres. Collection writes are full replacements, so concurrent writers
// resolve last-write-wins.
type ProfileStore struct {
	pool *pgxpool.Pool
}

func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

func (s *ProfileStore) FetchProfile(ctx context.Context, userID string) (domain.Profile, error) {
	var (
		username        string
		lifetimeCorrect int
		raw             []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT username, lifetime_correct, collection FROM profiles WHERE user_id=$1`, userID).
		Scan(&username, &lifetimeCorrect, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{UserID: userID}, nil
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}

	profile := domain.Profile{
		UserID:          userID,
		Username:        username,
		LifetimeCorrect: lifetimeCorrect,
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &profile.Collection); err != nil {
			return domain.Profile{}, fmt.Errorf("unmarshal collection: %w", err)
		}
	}
	return profile, nil
}

func (s *ProfileStore) RecordResult(ctx context.Context, userID string, correct bool) error {
	if !correct {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, lifetime_correct) VALUES ($1, 1)
		 ON CONFLICT (user_id) DO UPDATE SET lifetime_correct = profiles.lifetime_correct + 1`,
		userID)
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	return nil
}

func (s *ProfileStore) SaveCollection(ctx context.Context, userID string, items []domain.Artwork) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, collection) VALUES ($1, $2::jsonb)
		 ON CONFLICT (user_id) DO UPDATE SET collection = EXCLUDED.collection`,
		userID, string(data))
	if err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}
