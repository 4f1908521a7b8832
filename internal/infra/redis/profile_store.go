package redis

import (
	"context"
	"encoding/json"
	"strconv"

	"art-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ProfileStore keeps user profiles in a Redis hash per user:
//
//	HSET profile:{userID} username   {name}
//	HSET profile:{userID} collection {artworksJSON}
//	HINCRBY profile:{userID} lifetimeCorrect 1
type ProfileStore struct {
	client *redis.Client
}

func NewProfileStore(client *redis.Client) *ProfileStore {
	return &ProfileStore{client: client}
}

func (s *ProfileStore) FetchProfile(ctx context.Context, userID string) (domain.Profile, error) {
	fields, err := s.client.HGetAll(ctx, s.key(userID)).Result()
	if err != nil {
		return domain.Profile{}, err
	}

	profile := domain.Profile{UserID: userID, Username: fields["username"]}
	if raw, ok := fields["lifetimeCorrect"]; ok {
		if n, err := strconv.Atoi(raw); err == nil {
			profile.LifetimeCorrect = n
		}
	}
	if raw, ok := fields["collection"]; ok && raw != "" {
		var items []domain.Artwork
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			profile.Collection = items
		}
	}
	return profile, nil
}

func (s *ProfileStore) RecordResult(ctx context.Context, userID string, correct bool) error {
	if !correct {
		return nil
	}
	return s.client.HIncrBy(ctx, s.key(userID), "lifetimeCorrect", 1).Err()
}

func (s *ProfileStore) SaveCollection(ctx context.Context, userID string, items []domain.Artwork) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, s.key(userID), "collection", string(data)).Err()
}

func (s *ProfileStore) key(userID string) string {
	return "profile:" + userID
}
