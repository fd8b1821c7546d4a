package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/draft"
)

// DraftStore keeps the form draft under draft.Key with no expiry.
type DraftStore struct {
	client *redis.Client
}

func NewDraftStore(client *redis.Client) *DraftStore {
	return &DraftStore{client: client}
}

func (s *DraftStore) Save(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, draft.Key, data, 0).Err()
}

func (s *DraftStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, draft.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, draft.ErrNoDraft
	}
	return data, err
}

func (s *DraftStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, draft.Key).Err()
}
