package kvstore_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-member-client/kvstore"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	s := kvstore.NewMemory()

	require.NoError(t, s.Set(ctx, kvstore.KeyLanguage, "en-US"))
	require.NoError(t, s.Set(ctx, kvstore.KeyAccessToken, "tok"))
	require.Equal(t, []string{kvstore.KeyAccessToken, kvstore.KeyLanguage}, s.Keys())
	require.Equal(t, "en-US", kvstore.GetString(ctx, s, kvstore.KeyLanguage))

	require.NoError(t, s.Remove(ctx, "absent"))
	require.NoError(t, s.Remove(ctx, kvstore.KeyLanguage))
	require.Equal(t, "", kvstore.GetString(ctx, s, kvstore.KeyLanguage))

	require.NoError(t, s.Clear(ctx))
	require.Empty(t, s.Keys())
}
