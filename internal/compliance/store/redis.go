package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"assetgate/internal/compliance"
	"assetgate/pkg/domain"
)

// RedisStore keeps the chain of one compliance in a hash:
//
//	assetgate:<compliance>:modules  name -> JSON record
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedis constructs a store for the chain of the compliance at address.
func NewRedis(client *redis.Client, address domain.Address) *RedisStore {
	return &RedisStore{client: client, key: "assetgate:" + address.Hex() + ":modules"}
}

func (s *RedisStore) Load(ctx context.Context) ([]compliance.ModuleRecord, error) {
	raw, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}
	out := make([]compliance.ModuleRecord, 0, len(raw))
	for name, value := range raw {
		var r compliance.ModuleRecord
		if err := json.Unmarshal([]byte(value), &r); err != nil {
			return nil, fmt.Errorf("module record %q: %w", name, err)
		}
		out = append(out, r)
	}
	return sortedRecords(out), nil
}

func (s *RedisStore) Save(ctx context.Context, r compliance.ModuleRecord) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, s.key, r.Name, data).Err()
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	return s.client.HDel(ctx, s.key, name).Err()
}

var _ compliance.StateStore = (*RedisStore)(nil)
