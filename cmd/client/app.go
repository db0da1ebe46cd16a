package main

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/go-member-client/api"
	"github.com/jrsteele09/go-member-client/apiclient"
	"github.com/jrsteele09/go-member-client/connectivity"
	"github.com/jrsteele09/go-member-client/internal/config"
	"github.com/jrsteele09/go-member-client/kvstore"
	"github.com/jrsteele09/go-member-client/kvstore/filestore"
	"github.com/jrsteele09/go-member-client/kvstore/redisstore"
	"github.com/jrsteele09/go-member-client/locale"
	"github.com/jrsteele09/go-member-client/metrics"
	"github.com/jrsteele09/go-member-client/notify"
	"github.com/jrsteele09/go-member-client/sessions"
	"github.com/jrsteele09/go-member-client/siteconfig"
	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const (
	probeTimeout  = 2 * time.Second
	probeCacheTTL = 5 * time.Second
)

// app holds the wired client for one command invocation.
type app struct {
	config   config.Config
	clock    clockwork.Clock
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	kv       kvstore.Store
	locale   *locale.Resolver
	client   *apiclient.Client
	api      *api.Service
	session  *sessions.Store
	site     *siteconfig.Store

	closers []func() error
}

func newApp(ctx context.Context, c config.Config) (*app, error) {
	a := &app{
		config:   c,
		clock:    clockwork.NewRealClock(),
		registry: metrics.NewRegistry(),
	}
	a.metrics = metrics.New(a.registry)

	kv, err := a.openStorage(ctx)
	if err != nil {
		return nil, err
	}
	a.kv = kv
	a.locale = locale.NewResolver(ctx, kv)

	probe := connectivity.NewCached(connectivity.NewDialProbe(c.GetAPIBaseURL(), probeTimeout), probeCacheTTL, a.clock)
	a.client = apiclient.New(c.GetAPIBaseURL(), kv,
		apiclient.WithTimeout(c.GetRequestTimeout()),
		apiclient.WithNotifier(notify.NewGlobalLogNotifier()),
		apiclient.WithProbe(probe),
		apiclient.WithLocale(a.locale),
		apiclient.WithMetrics(a.metrics),
		apiclient.WithClock(a.clock),
	)
	a.api = api.NewService(a.client)

	a.session = sessions.New(ctx, kv, a.api,
		sessions.WithWipePolicy(sessions.ParseWipePolicy(c.GetWipePolicy())),
		sessions.WithClock(a.clock),
	)
	a.client.Subscribe(a.session)

	a.site = siteconfig.New(ctx, kv, a.api,
		siteconfig.WithClock(a.clock),
		siteconfig.WithMetrics(a.metrics),
		siteconfig.WithSourceURL(c.GetSourceURL()),
	)
	return a, nil
}

func (a *app) openStorage(ctx context.Context) (kvstore.Store, error) {
	switch backend := a.config.GetStorageBackend(); backend {
	case config.StorageMemory:
		return kvstore.NewMemory(), nil

	case config.StorageRedis:
		rdb, err := redisstore.NewClient(ctx, a.config.GetRedisURL())
		if err != nil {
			return nil, pkgerrors.Wrap(err, "connecting to redis")
		}
		a.closers = append(a.closers, rdb.Close)
		return redisstore.New(rdb, a.config.GetRedisNamespace()), nil

	default:
		var opts []filestore.Option
		if secret := a.config.GetStorageSecret(); secret != "" {
			cipher, err := filestore.NewXChaChaCipher(secret)
			if err != nil {
				return nil, err
			}
			opts = append(opts, filestore.WithCipher(cipher))
		}
		store, err := filestore.New(a.config.GetStoragePath(), opts...)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "opening storage file")
		}
		return store, nil
	}
}

// retryPolicy retries transient failures with the configured backoff.
func (a *app) retryPolicy() apiclient.RetryPolicy {
	return apiclient.RetryPolicy{
		MaxAttempts: a.config.GetRetryAttempts(),
		BaseDelay:   a.config.GetRetryBaseDelay(),
		Clock:       a.clock,
		ShouldRetry: apiclient.IsTransient,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("retrying")
		},
	}
}

func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			log.Warn().Err(err).Msg("closing resource")
		}
	}
}
