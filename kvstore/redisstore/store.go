package redisstore

import (
	"context"

	"github.com/jrsteele09/go-member-client/kvstore"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

var _ kvstore.Store = (*Store)(nil)

// Store keeps all keys as fields of one Redis hash, so several CLI
// instances pointed at the same namespace share a session.
type Store struct {
	rdb  goredis.Cmdable
	hash string
}

// NewClient parses a redis:// URL and checks the server is reachable.
func NewClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse redis URL")
	}

	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "failed to ping redis")
	}
	return rdb, nil
}

func New(rdb goredis.Cmdable, namespace string) *Store {
	return &Store{
		rdb:  rdb,
		hash: namespace + ":storage",
	}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, s.hash, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "reading %s", key)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return errors.Wrapf(s.rdb.HSet(ctx, s.hash, key, value).Err(), "writing %s", key)
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return errors.Wrapf(s.rdb.HDel(ctx, s.hash, key).Err(), "removing %s", key)
}

func (s *Store) Clear(ctx context.Context) error {
	return errors.Wrap(s.rdb.Del(ctx, s.hash).Err(), "clearing storage")
}
