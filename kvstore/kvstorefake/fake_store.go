package kvstorefake

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-member-client/kvstore"
)

var _ kvstore.Store = (*FakeStore)(nil)

// FakeStore is an in-memory store whose operations can be made to fail.
type FakeStore struct {
	*kvstore.Memory

	err  error
	lock sync.RWMutex
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		Memory: kvstore.NewMemory(),
	}
}

// FailWith makes every subsequent operation return err. Nil restores
// normal behaviour.
func (s *FakeStore) FailWith(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.err = err
}

func (s *FakeStore) failure() error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.err
}

func (s *FakeStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := s.failure(); err != nil {
		return "", false, err
	}
	return s.Memory.Get(ctx, key)
}

func (s *FakeStore) Set(ctx context.Context, key, value string) error {
	if err := s.failure(); err != nil {
		return err
	}
	return s.Memory.Set(ctx, key, value)
}

func (s *FakeStore) Remove(ctx context.Context, key string) error {
	if err := s.failure(); err != nil {
		return err
	}
	return s.Memory.Remove(ctx, key)
}

func (s *FakeStore) Clear(ctx context.Context) error {
	if err := s.failure(); err != nil {
		return err
	}
	return s.Memory.Clear(ctx)
}
