package kvstorefake_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/go-member-client/kvstore"
	"github.com/jrsteele09/go-member-client/kvstore/kvstorefake"
	"github.com/stretchr/testify/require"
)

func TestFakeStoreFailWith(t *testing.T) {
	ctx := context.Background()
	s := kvstorefake.NewFakeStore()
	require.NoError(t, s.Set(ctx, kvstore.KeyLanguage, "en-US"))

	boom := errors.New("disk full")
	s.FailWith(boom)
	_, _, err := s.Get(ctx, kvstore.KeyLanguage)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, s.Set(ctx, kvstore.KeyAccessToken, "tok"), boom)
	require.ErrorIs(t, s.Remove(ctx, kvstore.KeyLanguage), boom)
	require.ErrorIs(t, s.Clear(ctx), boom)
	require.Equal(t, "", kvstore.GetString(ctx, s, kvstore.KeyLanguage))

	s.FailWith(nil)
	require.Equal(t, "en-US", kvstore.GetString(ctx, s, kvstore.KeyLanguage))
	require.Equal(t, []string{kvstore.KeyLanguage}, s.Keys())
}
