package sessions_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/go-member-client/api"
	"github.com/jrsteele09/go-member-client/api/apifake"
	"github.com/jrsteele09/go-member-client/apiclient"
	"github.com/jrsteele09/go-member-client/internal/errors"
	"github.com/jrsteele09/go-member-client/kvstore"
	"github.com/jrsteele09/go-member-client/kvstore/kvstorefake"
	"github.com/jrsteele09/go-member-client/notify"
	"github.com/jrsteele09/go-member-client/sessions"
	"github.com/jrsteele09/go-member-client/users"
	"github.com/stretchr/testify/require"
)

const (
	testToken     = "bearer-token-1"
	testURLToken  = "abcdefghijABCDEFGHIJ0123456789xy"
	profileJSON   = `{"id":9,"name":"dragon88","nickname":"Dragon","money":88.8,"level":2,"status":1,"created_at":"2024-01-01","updated_at":"2024-01-02"}`
	otherProfile  = `{"id":9,"name":"dragon88","nickname":"Dragon","money":120,"level":3,"status":1,"created_at":"2024-01-01","updated_at":"2024-02-01"}`
	testGroup     = "tenant-1"
	testLanguage  = "en-US"
	testPassword  = "s3cret"
	testLoginName = "dragon88"
)

// testFixture holds a session store over fake storage and a fake API
type testFixture struct {
	kv     *kvstorefake.FakeStore
	caller *apifake.FakeCaller
	clock  *clockwork.FakeClock
	store  *sessions.Store
}

func setupTestFixture(t *testing.T, opts ...sessions.Option) *testFixture {
	t.Helper()
	f := &testFixture{
		kv:     kvstorefake.NewFakeStore(),
		caller: apifake.NewFakeCaller(),
		clock:  clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
	f.store = sessions.New(context.Background(), f.kv, api.NewService(f.caller), append([]sessions.Option{sessions.WithClock(f.clock)}, opts...)...)
	return f
}

// seedLoggedIn writes a complete session straight to storage
func (f *testFixture) seedLoggedIn(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.kv.Set(ctx, kvstore.KeyAccessToken, testToken))
	require.NoError(t, f.kv.Set(ctx, kvstore.KeySimpleToken, testURLToken))
	require.NoError(t, f.kv.Set(ctx, kvstore.KeyCurrentUser, profileJSON))
	require.NoError(t, f.kv.Set(ctx, kvstore.KeyGroupPrefix, testGroup))
	require.NoError(t, f.kv.Set(ctx, kvstore.KeyLanguage, testLanguage))
}

func TestRestoreFromStorage(t *testing.T) {
	ctx := context.Background()
	kv := kvstorefake.NewFakeStore()
	require.NoError(t, kv.Set(ctx, kvstore.KeyAccessToken, testToken))
	require.NoError(t, kv.Set(ctx, kvstore.KeyCurrentUser, profileJSON))

	s := sessions.New(ctx, kv, api.NewService(apifake.NewFakeCaller()))
	require.Equal(t, testToken, s.GetCredential(ctx))
	require.True(t, s.IsLoggedIn(ctx))
	require.Equal(t, "Dragon", s.GetProfile(ctx).DisplayName())
}

func TestCredentialReadThrough(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	require.Equal(t, "", f.store.GetCredential(ctx))

	// written by another process after construction
	require.NoError(t, f.kv.Set(ctx, kvstore.KeyAccessToken, "late"))
	require.Equal(t, "late", f.store.GetCredential(ctx))

	require.NoError(t, f.store.SetCredential(ctx, "mine"))
	require.Equal(t, "mine", kvstore.GetString(ctx, f.kv, kvstore.KeyAccessToken))

	require.NoError(t, f.store.ClearCredential(ctx))
	require.Equal(t, "", f.store.GetCredential(ctx))
	_, found, _ := f.kv.Get(ctx, kvstore.KeyAccessToken)
	require.False(t, found)
}

func TestProfileSetAndClear(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	require.Nil(t, f.store.GetProfile(ctx))
	require.False(t, f.store.IsLoggedIn(ctx))

	require.NoError(t, f.store.SetProfile(ctx, &users.Profile{ID: 1, Name: "u1", Status: users.StatusActive}))
	require.True(t, f.store.IsLoggedIn(ctx))
	require.JSONEq(t, `{"id":1,"name":"u1","money":0,"level":0,"status":1,"created_at":"","updated_at":""}`,
		kvstore.GetString(ctx, f.kv, kvstore.KeyCurrentUser))

	require.NoError(t, f.store.ClearProfile(ctx))
	require.False(t, f.store.IsLoggedIn(ctx))
	_, found, _ := f.kv.Get(ctx, kvstore.KeyCurrentUser)
	require.False(t, found)
}

func TestCorruptProfileIsPurged(t *testing.T) {
	for _, stored := range []string{"{broken", "null", " null ", "{}", `{"money":5}`} {
		t.Run(stored, func(t *testing.T) {
			ctx := context.Background()
			f := setupTestFixture(t)
			require.NoError(t, f.kv.Set(ctx, kvstore.KeyAccessToken, testToken))
			require.NoError(t, f.kv.Set(ctx, kvstore.KeyCurrentUser, stored))

			store := sessions.New(ctx, f.kv, api.NewService(f.caller), sessions.WithClock(f.clock))
			require.Nil(t, store.GetProfile(ctx))
			require.False(t, store.IsLoggedIn(ctx))
			_, found, _ := f.kv.Get(ctx, kvstore.KeyCurrentUser)
			require.False(t, found)
		})
	}
}

func TestRefreshProfileSuccess(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.seedLoggedIn(t)
	f.caller.Respond(api.RouteUserInfo, otherProfile)

	require.NoError(t, f.store.RefreshProfileFromServer(ctx))

	p := f.store.GetProfile(ctx)
	require.Equal(t, 120.0, p.Money)
	require.Equal(t, 3, p.Level)
	require.JSONEq(t, otherProfile, kvstore.GetString(ctx, f.kv, kvstore.KeyCurrentUser))
}

func TestRefreshAcceptsQuotedAmounts(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.seedLoggedIn(t)
	f.caller.Respond(api.RouteUserInfo, `{"id":9,"name":"dragon88","money":"88.80","level":"2","status":1}`)

	require.NoError(t, f.store.RefreshProfileFromServer(ctx))
	require.Equal(t, 88.8, f.store.GetProfile(ctx).Money)
	require.Equal(t, testToken, f.store.GetCredential(ctx))
	require.Equal(t, testGroup, kvstore.GetString(ctx, f.kv, kvstore.KeyGroupPrefix))
}

func TestRefreshWithoutIdentityKeepsState(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.seedLoggedIn(t)
	f.caller.Respond(api.RouteUserInfo, `{"money":1}`)

	err := f.store.RefreshProfileFromServer(ctx)
	require.True(t, errors.Is(err, errors.ErrNoProfileData))
	require.Equal(t, "dragon88", f.store.GetProfile(ctx).Name)
}

func TestRefreshWithoutDataKeepsState(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.seedLoggedIn(t)

	err := f.store.RefreshProfileFromServer(ctx)
	require.True(t, errors.Is(err, errors.ErrNoProfileData))
	require.True(t, f.store.IsLoggedIn(ctx))
	require.Equal(t, testToken, f.store.GetCredential(ctx))
}

func TestRefreshFailureWipesEverything(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.seedLoggedIn(t)
	require.True(t, f.store.IsLoggedIn(ctx))
	f.caller.Fail(api.RouteUserInfo, apiclient.ErrConnectionFailed)

	err := f.store.RefreshProfileFromServer(ctx)
	require.True(t, errors.Is(err, apiclient.ErrConnectionFailed))

	require.Empty(t, f.kv.Keys())
	require.False(t, f.store.IsLoggedIn(ctx))
	require.Equal(t, "", f.store.GetCredential(ctx))
	require.Equal(t, "", f.store.SecondaryCredential(ctx))
}

func TestAuthOnlyPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("transient failure keeps the session", func(t *testing.T) {
		f := setupTestFixture(t, sessions.WithWipePolicy(sessions.WipeOnAuthFailure))
		f.seedLoggedIn(t)
		f.caller.Fail(api.RouteUserInfo, apiclient.ErrTimeout)

		require.Error(t, f.store.RefreshProfileFromServer(ctx))
		require.True(t, f.store.IsLoggedIn(ctx))
		require.Equal(t, testGroup, kvstore.GetString(ctx, f.kv, kvstore.KeyGroupPrefix))
	})

	t.Run("rejected credentials wipe", func(t *testing.T) {
		f := setupTestFixture(t, sessions.WithWipePolicy(sessions.WipeOnAuthFailure))
		f.seedLoggedIn(t)
		f.caller.Fail(api.RouteUserInfo, &apiclient.HTTPError{StatusCode: http.StatusUnauthorized})

		require.Error(t, f.store.RefreshProfileFromServer(ctx))
		require.False(t, f.store.IsLoggedIn(ctx))
		require.Empty(t, f.kv.Keys())
	})
}

func TestParseWipePolicy(t *testing.T) {
	require.Equal(t, sessions.WipeOnAuthFailure, sessions.ParseWipePolicy("AUTH"))
	require.Equal(t, sessions.WipeOnAnyError, sessions.ParseWipePolicy("any"))
	require.Equal(t, sessions.WipeOnAnyError, sessions.ParseWipePolicy("bogus"))
	require.Equal(t, "auth", sessions.WipeOnAuthFailure.String())
}

func TestLogoutIsLocalOnly(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.seedLoggedIn(t)

	require.NoError(t, f.store.Logout(ctx))

	require.False(t, f.store.IsLoggedIn(ctx))
	require.Equal(t, "", f.store.GetCredential(ctx))
	require.Equal(t, []string{kvstore.KeySimpleToken, kvstore.KeyGroupPrefix, kvstore.KeyLanguage}, f.kv.Keys())
	require.Zero(t, f.caller.CallCount(api.RouteLogout))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.caller.Respond(api.RouteLogin, `{"token":"fresh-token"}`)
	f.caller.Respond(api.RouteUserInfo, profileJSON)

	require.NoError(t, f.store.Login(ctx, testLoginName, testPassword))

	require.Equal(t, "fresh-token", kvstore.GetString(ctx, f.kv, kvstore.KeyAccessToken))
	require.True(t, f.store.IsLoggedIn(ctx))
	calls := f.caller.Calls()
	require.Len(t, calls, 2)
	require.Equal(t, api.RouteLogin, calls[0].Route)
	require.Equal(t, api.RouteUserInfo, calls[1].Route)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()

	f := setupTestFixture(t)
	f.caller.Respond(api.RouteLogin, `{}`)
	err := f.store.Login(ctx, testLoginName, testPassword)
	require.True(t, errors.Is(err, errors.ErrNotLoggedIn))
	require.Equal(t, "", f.store.GetCredential(ctx))

	apiErr := &apiclient.APIError{Envelope: apiclient.Envelope{Code: 4003, Message: "wrong password"}}
	f.caller.Fail(api.RouteLogin, apiErr)
	err = f.store.Login(ctx, testLoginName, testPassword)
	var got *apiclient.APIError
	require.True(t, errors.As(err, &got))
	require.Equal(t, 4003, got.Code)
	require.Zero(t, f.caller.CallCount(api.RouteUserInfo))
}

func TestAdoptURLToken(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)

	for _, bad := range []string{"", "short", testURLToken + "z", "abcdefghijABCDEFGHIJ0123456789x!", "abcdefghijABCDEFGHIJ0123456789xé"} {
		err := f.store.AdoptURLToken(ctx, bad)
		require.True(t, errors.Is(err, errors.ErrInvalidURLToken), bad)
	}
	require.Equal(t, "", f.store.SecondaryCredential(ctx))

	require.NoError(t, f.store.AdoptURLToken(ctx, testURLToken))
	require.Equal(t, testURLToken, f.store.SecondaryCredential(ctx))
	require.Equal(t, testURLToken, kvstore.GetString(ctx, f.kv, kvstore.KeySimpleToken))
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "9",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func TestHasValidCredential(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	require.False(t, f.store.HasValidCredential(ctx))

	require.NoError(t, f.store.SetCredential(ctx, "opaque-token"))
	require.True(t, f.store.HasValidCredential(ctx))

	require.NoError(t, f.store.SetCredential(ctx, signedToken(t, f.clock.Now().Add(time.Hour))))
	require.True(t, f.store.HasValidCredential(ctx))

	f.clock.Advance(2 * time.Hour)
	require.False(t, f.store.HasValidCredential(ctx))
}

func TestResetAll(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.seedLoggedIn(t)
	f.store.SetLoginShown(true)
	f.store.SetRegisterShown(true)
	f.store.SetSystemConf([]byte(`{"a":1}`))
	f.store.SetRegisterConf(map[string]any{"invite": true})
	require.True(t, f.store.StartLoading())
	require.False(t, f.store.StartLoading())

	require.NoError(t, f.store.ResetAll(ctx))

	require.False(t, f.store.IsLoggedIn(ctx))
	require.False(t, f.store.LoginShown())
	require.False(t, f.store.RegisterShown())
	require.False(t, f.store.IsLoading())
	require.Nil(t, f.store.SystemConf())
	require.Empty(t, f.store.RegisterConf())
}

func TestFollowsPipelineRenewals(t *testing.T) {
	ctx := context.Background()
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := int(status.Load())
		if code == http.StatusOK {
			w.Header().Set("Authorization", "Bearer rotated")
			w.Header().Set("X-Token", "rotated-simple")
		}
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"code":200,"data":` + profileJSON + `}`))
	}))
	defer srv.Close()

	kv := kvstorefake.NewFakeStore()
	require.NoError(t, kv.Set(ctx, kvstore.KeyAccessToken, testToken))
	client := apiclient.New(srv.URL, kv, apiclient.WithNotifier(notify.Discard{}))
	s := sessions.New(ctx, kv, api.NewService(client), sessions.WithWipePolicy(sessions.WipeOnAuthFailure))
	client.Subscribe(s)

	require.NoError(t, s.RefreshProfileFromServer(ctx))
	require.Equal(t, "rotated", s.GetCredential(ctx))
	require.Equal(t, "rotated-simple", s.SecondaryCredential(ctx))

	status.Store(http.StatusUnauthorized)
	require.Error(t, s.RefreshProfileFromServer(ctx))
	require.Equal(t, "", s.GetCredential(ctx))
	require.Equal(t, "", s.SecondaryCredential(ctx))
	require.False(t, s.IsLoggedIn(ctx))
}

func TestUIStateIsIsolated(t *testing.T) {
	f := setupTestFixture(t)

	conf := map[string]any{"invite": true}
	f.store.SetRegisterConf(conf)
	conf["invite"] = false
	got := f.store.RegisterConf()
	require.Equal(t, true, got["invite"])
	got["extra"] = 1
	require.NotContains(t, f.store.RegisterConf(), "extra")

	require.True(t, f.store.StartLoading())
	f.store.StopLoading()
	require.True(t, f.store.StartLoading())
}
