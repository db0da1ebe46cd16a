package sessions

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/go-member-client/api"
	"github.com/jrsteele09/go-member-client/apiclient"
	"github.com/jrsteele09/go-member-client/internal/errors"
	"github.com/jrsteele09/go-member-client/kvstore"
	"github.com/jrsteele09/go-member-client/users"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Backend is the slice of the member API the session needs.
type Backend interface {
	UserInfo(ctx context.Context) (*users.Profile, error)
	Login(ctx context.Context, name, password string) (api.LoginResult, error)
}

var _ Backend = (*api.Service)(nil)

// Store owns the signed-in member: bearer credential, secondary credential
// and cached profile. Values are read through from durable storage whenever
// the in-memory copy is empty, and every change is persisted immediately.
type Store struct {
	kv      kvstore.Store
	backend Backend
	policy  WipePolicy
	logger  zerolog.Logger
	clock   clockwork.Clock

	credential string
	secondary  string
	profile    *users.Profile

	loginShown    bool
	registerShown bool
	loading       bool
	systemConf    json.RawMessage
	registerConf  map[string]any

	lock sync.RWMutex
}

var _ apiclient.CredentialListener = (*Store)(nil)

type Option func(*Store)

func WithWipePolicy(p WipePolicy) Option {
	return func(s *Store) {
		s.policy = p
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithClock sets the clock used to judge credential expiry.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// New restores the credential and profile from kv.
func New(ctx context.Context, kv kvstore.Store, backend Backend, opts ...Option) *Store {
	s := &Store{
		kv:           kv,
		backend:      backend,
		policy:       WipeOnAnyError,
		logger:       log.Logger,
		clock:        clockwork.NewRealClock(),
		registerConf: map[string]any{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.GetCredential(ctx)
	s.GetProfile(ctx)
	return s
}

// GetCredential returns the bearer credential or "".
func (s *Store) GetCredential(ctx context.Context) string {
	return s.readThrough(ctx, &s.credential, kvstore.KeyAccessToken)
}

func (s *Store) SetCredential(ctx context.Context, token string) error {
	return s.write(ctx, &s.credential, kvstore.KeyAccessToken, token)
}

func (s *Store) ClearCredential(ctx context.Context) error {
	return s.write(ctx, &s.credential, kvstore.KeyAccessToken, "")
}

// SecondaryCredential returns the opaque X-Token credential or "".
func (s *Store) SecondaryCredential(ctx context.Context) string {
	return s.readThrough(ctx, &s.secondary, kvstore.KeySimpleToken)
}

func (s *Store) SetSecondaryCredential(ctx context.Context, token string) error {
	return s.write(ctx, &s.secondary, kvstore.KeySimpleToken, token)
}

func (s *Store) readThrough(ctx context.Context, cached *string, key string) string {
	s.lock.RLock()
	v := *cached
	s.lock.RUnlock()
	if v != "" {
		return v
	}

	stored, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Err(err).Str("key", key).Msg("reading session storage")
		return ""
	}
	if !found {
		return ""
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if *cached == "" {
		*cached = stored
	}
	return *cached
}

// write sets or, for an empty value, removes key
func (s *Store) write(ctx context.Context, cached *string, key, value string) error {
	s.lock.Lock()
	*cached = value
	s.lock.Unlock()

	if value == "" {
		return pkgerrors.Wrapf(s.kv.Remove(ctx, key), "removing %s", key)
	}
	return pkgerrors.Wrapf(s.kv.Set(ctx, key, value), "storing %s", key)
}

// GetProfile returns the cached profile, loading it from storage if needed.
// An unreadable stored profile, or one without identity (such as a stored
// null), is discarded and reported as absent.
func (s *Store) GetProfile(ctx context.Context) *users.Profile {
	s.lock.RLock()
	p := s.profile
	s.lock.RUnlock()
	if p != nil {
		return p
	}

	raw, found, err := s.kv.Get(ctx, kvstore.KeyCurrentUser)
	if err != nil {
		s.logger.Err(err).Msg("reading stored profile")
		return nil
	}
	if !found {
		return nil
	}

	var stored users.Profile
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || !stored.HasIdentity() {
		s.logger.Warn().Err(errors.ErrCorruptEntry).AnErr("cause", err).Msg("discarding unreadable stored profile")
		if err := s.kv.Remove(ctx, kvstore.KeyCurrentUser); err != nil {
			s.logger.Err(err).Msg("removing unreadable stored profile")
		}
		return nil
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if s.profile == nil {
		s.profile = &stored
	}
	return s.profile
}

func (s *Store) SetProfile(ctx context.Context, p *users.Profile) error {
	if p == nil {
		return s.ClearProfile(ctx)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return pkgerrors.Wrap(err, "encoding profile")
	}

	s.lock.Lock()
	s.profile = p
	s.lock.Unlock()
	return pkgerrors.Wrap(s.kv.Set(ctx, kvstore.KeyCurrentUser, string(raw)), "storing profile")
}

func (s *Store) ClearProfile(ctx context.Context) error {
	s.lock.Lock()
	s.profile = nil
	s.lock.Unlock()
	return pkgerrors.Wrap(s.kv.Remove(ctx, kvstore.KeyCurrentUser), "removing profile")
}

// RefreshProfileFromServer replaces the profile with the server's copy. When
// the fetch fails and the wipe policy agrees, all durable storage is cleared
// and the session reset; the fetch error is returned either way. A
// successful answer without data changes nothing and returns
// ErrNoProfileData.
func (s *Store) RefreshProfileFromServer(ctx context.Context) error {
	p, err := s.backend.UserInfo(ctx)
	if err != nil {
		if s.policy.shouldWipe(err) {
			s.wipe(ctx)
			s.logger.Warn().Err(err).Str("policy", s.policy.String()).Msg("profile refresh failed, local storage cleared")
		} else {
			s.logger.Warn().Err(err).Str("policy", s.policy.String()).Msg("profile refresh failed, session kept")
		}
		return pkgerrors.Wrap(err, "refreshing profile")
	}
	if !p.HasIdentity() {
		return errors.ErrNoProfileData
	}
	return s.SetProfile(ctx, p)
}

func (s *Store) wipe(ctx context.Context) {
	if err := s.kv.Clear(ctx); err != nil {
		s.logger.Err(err).Msg("clearing local storage")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.credential = ""
	s.secondary = ""
	s.profile = nil
}

// IsLoggedIn reports whether a profile is resolvable.
func (s *Store) IsLoggedIn(ctx context.Context) bool {
	return s.GetProfile(ctx) != nil
}

// Logout forgets the bearer credential and profile locally. The server is
// not told.
func (s *Store) Logout(ctx context.Context) error {
	errCred := s.ClearCredential(ctx)
	errProfile := s.ClearProfile(ctx)
	if errCred != nil {
		return errCred
	}
	return errProfile
}

// Login exchanges a name and password for a bearer credential, stores it and
// loads the profile.
func (s *Store) Login(ctx context.Context, name, password string) error {
	res, err := s.backend.Login(ctx, name, password)
	if err != nil {
		return pkgerrors.Wrap(err, "logging in")
	}
	if res.Token == "" {
		return errors.Wrapf(errors.ErrNotLoggedIn, "login response carried no token")
	}
	if err := s.SetCredential(ctx, res.Token); err != nil {
		return err
	}
	return s.RefreshProfileFromServer(ctx)
}

// ResetAll clears credentials, profile and every piece of transient state.
func (s *Store) ResetAll(ctx context.Context) error {
	err := s.Logout(ctx)

	s.lock.Lock()
	defer s.lock.Unlock()
	s.systemConf = nil
	s.registerConf = map[string]any{}
	s.loginShown = false
	s.registerShown = false
	s.loading = false
	return err
}

// CredentialChanged keeps the cache in step with renewals made by the
// request pipeline, which has already written durable storage.
func (s *Store) CredentialChanged(kind apiclient.CredentialKind, value string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	switch kind {
	case apiclient.CredentialBearer:
		s.credential = value
	case apiclient.CredentialSecondary:
		s.secondary = value
	}
}
