package siteconfig

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/go-member-client/api"
	"github.com/jrsteele09/go-member-client/apiclient"
	"github.com/jrsteele09/go-member-client/internal/errors"
	"github.com/jrsteele09/go-member-client/kvstore"
	"github.com/jrsteele09/go-member-client/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultSiteName = "Member Center"
	DefaultSiteLogo = "assets/logo.png"

	defaultErrorCode    = http.StatusInternalServerError
	defaultErrorMessage = "configuration load failed"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusErrored:
		return "errored"
	default:
		return "idle"
	}
}

// LoadError records the last failed load attempt.
type LoadError struct {
	Code      int
	Message   string
	Timestamp time.Time
}

// Fetcher is the system config endpoint.
type Fetcher interface {
	SysConfig(ctx context.Context, params api.Params) (json.RawMessage, error)
}

var _ Fetcher = (*api.Service)(nil)

// Presenter receives title and theme changes, typically a UI layer.
type Presenter interface {
	SetTitle(title string)
	ApplyTheme(theme Theme)
}

// Store owns the site configuration for this process.
type Store struct {
	kv        kvstore.Store
	fetcher   Fetcher
	presenter Presenter
	clock     clockwork.Clock
	logger    zerolog.Logger
	metrics   *metrics.Metrics
	sourceURL string

	config      *SiteConfig
	groupPrefix string
	theme       Theme
	title       string
	loading     bool
	loaded      bool
	appReady    bool
	lastErr     *LoadError

	lock sync.RWMutex
}

type Option func(*Store)

func WithPresenter(p Presenter) Option {
	return func(s *Store) {
		s.presenter = p
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithSourceURL sets the URL reported to the server when a load is not
// given one.
func WithSourceURL(u string) Option {
	return func(s *Store) {
		s.sourceURL = u
	}
}

// New restores the group prefix from kv.
func New(ctx context.Context, kv kvstore.Store, fetcher Fetcher, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		fetcher: fetcher,
		clock:   clockwork.NewRealClock(),
		logger:  log.Logger,
		theme:   defaultTheme(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.groupPrefix = kvstore.GetString(ctx, kv, kvstore.KeyGroupPrefix)
	return s
}

// LoadConfig fetches the configuration for sourceURL. A call made while
// another load is in flight returns ErrLoadInProgress and changes nothing.
// On failure the previous configuration is kept and the error recorded.
func (s *Store) LoadConfig(ctx context.Context, sourceURL string) error {
	s.lock.Lock()
	if s.loading {
		s.lock.Unlock()
		s.metrics.ConfigLoaded("rejected")
		s.logger.Warn().Msg("configuration load already in progress, skipping")
		return errors.ErrLoadInProgress
	}
	s.loading = true
	s.lastErr = nil
	if sourceURL == "" {
		sourceURL = s.sourceURL
	}
	s.lock.Unlock()

	params := api.Params{
		"group":     {"system"},
		"is_mobile": {"1"},
	}
	if sourceURL != "" {
		params.Set("url", sourceURL)
	}
	s.logger.Info().Str("url", sourceURL).Msg("loading site configuration")

	cfg, err := s.fetch(ctx, params)
	if err != nil {
		s.recordFailure(err)
		return err
	}
	s.apply(ctx, cfg)
	return nil
}

func (s *Store) fetch(ctx context.Context, params api.Params) (*SiteConfig, error) {
	data, err := s.fetcher.SysConfig(ctx, params)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, errors.ErrNoConfigData
	}
	return Parse(data)
}

func (s *Store) recordFailure(err error) {
	loadErr := &LoadError{
		Code:      defaultErrorCode,
		Message:   defaultErrorMessage,
		Timestamp: s.clock.Now(),
	}

	var apiErr *apiclient.APIError
	var httpErr *apiclient.HTTPError
	switch {
	case errors.As(err, &apiErr):
		loadErr.Code = apiErr.Code
		if apiErr.Message != "" {
			loadErr.Message = apiErr.Message
		}
	case errors.As(err, &httpErr):
		loadErr.Code = httpErr.StatusCode
		loadErr.Message = httpErr.Notice
		if httpErr.Message != "" {
			loadErr.Message = httpErr.Message
		}
	default:
		loadErr.Message = err.Error()
	}

	s.lock.Lock()
	s.lastErr = loadErr
	s.loaded = false
	s.appReady = false
	s.loading = false
	s.lock.Unlock()

	s.metrics.ConfigLoaded("error")
	s.logger.Err(err).Int("code", loadErr.Code).Msg("site configuration load failed")
}

// apply replaces the configuration and pushes derived state
func (s *Store) apply(ctx context.Context, cfg *SiteConfig) {
	var theme *Theme
	if cfg.PrimaryColor != "" {
		t, err := ThemeFor(cfg.PrimaryColor)
		if err != nil {
			s.logger.Warn().Err(err).Msg("ignoring configured primary colour")
		} else {
			theme = &t
		}
	}

	if cfg.GroupPrefix != "" {
		if err := s.kv.Set(ctx, kvstore.KeyGroupPrefix, cfg.GroupPrefix); err != nil {
			s.logger.Err(err).Msg("persisting group prefix")
		}
	}

	s.lock.Lock()
	s.config = cfg
	if cfg.GroupPrefix != "" {
		s.groupPrefix = cfg.GroupPrefix
	}
	if theme != nil {
		s.theme = *theme
	}
	if cfg.SiteName != "" {
		s.title = cfg.SiteName
	}
	s.loaded = true
	s.lastErr = nil
	s.appReady = true
	s.loading = false
	s.lock.Unlock()

	if s.presenter != nil {
		if theme != nil {
			s.presenter.ApplyTheme(*theme)
		}
		if cfg.SiteName != "" {
			s.presenter.SetTitle(cfg.SiteName)
		}
	}

	s.metrics.ConfigLoaded("success")
	s.logger.Info().
		Str("group_prefix", s.GroupPrefix()).
		Str("site_name", cfg.SiteName).
		Str("primary_color", s.Theme().Accent).
		Msg("site configuration loaded")
}

// Reset drops the configuration, error, theme, title and group prefix,
// including the persisted prefix.
func (s *Store) Reset(ctx context.Context) error {
	s.lock.Lock()
	s.config = nil
	s.groupPrefix = ""
	s.theme = defaultTheme()
	s.title = ""
	s.loaded = false
	s.lastErr = nil
	s.appReady = false
	s.lock.Unlock()

	if s.presenter != nil {
		s.presenter.ApplyTheme(defaultTheme())
		s.presenter.SetTitle("")
	}
	return errors.Wrapf(s.kv.Remove(ctx, kvstore.KeyGroupPrefix), "removing group prefix")
}

// RetryLoad resets and loads again.
func (s *Store) RetryLoad(ctx context.Context, sourceURL string) error {
	if err := s.Reset(ctx); err != nil {
		s.logger.Err(err).Msg("resetting configuration")
	}
	return s.LoadConfig(ctx, sourceURL)
}

func (s *Store) SetGroupPrefix(ctx context.Context, prefix string) error {
	s.lock.Lock()
	s.groupPrefix = prefix
	s.lock.Unlock()
	return errors.Wrapf(s.kv.Set(ctx, kvstore.KeyGroupPrefix, prefix), "storing group prefix")
}

// SetPrimaryColor applies color as the accent. An unparsable colour is
// rejected and the current theme kept.
func (s *Store) SetPrimaryColor(color string) error {
	theme, err := ThemeFor(color)
	if err != nil {
		return err
	}
	s.lock.Lock()
	s.theme = theme
	s.lock.Unlock()

	if s.presenter != nil {
		s.presenter.ApplyTheme(theme)
	}
	return nil
}
