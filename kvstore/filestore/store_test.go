package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrsteele09/go-member-client/internal/errors"
	"github.com/jrsteele09/go-member-client/kvstore"
	"github.com/jrsteele09/go-member-client/kvstore/filestore"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts ...filestore.Option) (*filestore.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	s, err := filestore.New(path, opts...)
	require.NoError(t, err)
	return s, path
}

func TestMissingDocumentIsEmpty(t *testing.T) {
	s, path := newStore(t)

	_, found, err := s.Get(context.Background(), kvstore.KeyAccessToken)
	require.NoError(t, err)
	require.False(t, found)

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestValuesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	s, path := newStore(t)

	require.NoError(t, s.Set(ctx, kvstore.KeyAccessToken, "tok-1"))
	require.NoError(t, s.Set(ctx, kvstore.KeyGroupPrefix, "g1"))
	require.NoError(t, s.Remove(ctx, kvstore.KeyGroupPrefix))

	reopened, err := filestore.New(path)
	require.NoError(t, err)

	v, found, err := reopened.Get(ctx, kvstore.KeyAccessToken)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "tok-1", v)

	_, found, err = reopened.Get(ctx, kvstore.KeyGroupPrefix)
	require.NoError(t, err)
	require.False(t, found)
}

func TestRemoveAbsentKey(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Remove(context.Background(), "never-set"))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s, path := newStore(t)
	require.NoError(t, s.Set(ctx, kvstore.KeyAccessToken, "tok"))
	require.NoError(t, s.Set(ctx, kvstore.KeyLanguage, "en-US"))

	require.NoError(t, s.Clear(ctx))

	reopened, err := filestore.New(path)
	require.NoError(t, err)
	require.Equal(t, "", kvstore.GetString(ctx, reopened, kvstore.KeyAccessToken))
	require.Equal(t, "", kvstore.GetString(ctx, reopened, kvstore.KeyLanguage))
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	ctx := context.Background()
	s, path := newStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Set(ctx, kvstore.KeyAccessToken, strings.Repeat("x", i)))
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "storage.json", entries[0].Name())
}

func TestCorruptDocumentIsDiscarded(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := filestore.New(path)
	require.NoError(t, err)
	_, found, err := s.Get(ctx, kvstore.KeyAccessToken)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Set(ctx, kvstore.KeyAccessToken, "fresh"))
	reopened, err := filestore.New(path)
	require.NoError(t, err)
	require.Equal(t, "fresh", kvstore.GetString(ctx, reopened, kvstore.KeyAccessToken))
}

func TestEncryptedDocument(t *testing.T) {
	ctx := context.Background()
	c, err := filestore.NewXChaChaCipher("master-secret")
	require.NoError(t, err)

	s, path := newStore(t, filestore.WithCipher(c))
	require.NoError(t, s.Set(ctx, kvstore.KeyAccessToken, "very-secret-token"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "very-secret-token")
	require.NotContains(t, string(raw), kvstore.KeyAccessToken)

	same, err := filestore.NewXChaChaCipher("master-secret")
	require.NoError(t, err)
	reopened, err := filestore.New(path, filestore.WithCipher(same))
	require.NoError(t, err)
	require.Equal(t, "very-secret-token", kvstore.GetString(ctx, reopened, kvstore.KeyAccessToken))

	// wrong secret cannot read the document and starts empty
	other, err := filestore.NewXChaChaCipher("another-secret")
	require.NoError(t, err)
	wrong, err := filestore.New(path, filestore.WithCipher(other))
	require.NoError(t, err)
	_, found, err := wrong.Get(ctx, kvstore.KeyAccessToken)
	require.NoError(t, err)
	require.False(t, found)
}

func TestCipherRejectsTamperedData(t *testing.T) {
	c, err := filestore.NewXChaChaCipher("master-secret")
	require.NoError(t, err)

	sealed, err := c.Seal([]byte(`{"a":"b"}`))
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0xff

	_, err = c.Open(sealed)
	require.True(t, errors.Is(err, errors.ErrEncryption))

	_, err = c.Open([]byte("short"))
	require.True(t, errors.Is(err, errors.ErrEncryption))
}

func TestEmptySecretRejected(t *testing.T) {
	_, err := filestore.NewXChaChaCipher("")
	require.True(t, errors.Is(err, errors.ErrEncryption))
}
