package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/go-member-client/connectivity"
	"github.com/jrsteele09/go-member-client/internal/errors"
	"github.com/jrsteele09/go-member-client/kvstore"
	"github.com/jrsteele09/go-member-client/metrics"
	"github.com/jrsteele09/go-member-client/notify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout = 15 * time.Second

	maxBodyBytes = 10 << 20
)

// LocaleSource supplies the server language code for each request.
type LocaleSource interface {
	ServerCode() string
}

type CredentialKind string

const (
	CredentialBearer    CredentialKind = "bearer"
	CredentialSecondary CredentialKind = "secondary"
)

// CredentialListener is told whenever the client replaces or clears a
// credential in storage. An empty value means the credential was cleared.
type CredentialListener interface {
	CredentialChanged(kind CredentialKind, value string)
}

// Request describes one call. Params are sent as the query string; Body,
// when set, is JSON encoded.
type Request struct {
	Method string
	Route  string
	Params url.Values
	Body   any
}

// Client is the single chokepoint for every outbound API call. It decorates
// requests with locale, client type, credentials and tenant, and normalises
// every response into data or one of the error types in this package.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      kvstore.Store
	notifier   notify.Notifier
	probe      connectivity.Probe
	locale     LocaleSource
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	clock      clockwork.Clock
	timeout    time.Duration

	listeners []CredentialListener
	lock      sync.RWMutex
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-call budget, overriding any timeout on the
// HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

func WithProbe(p connectivity.Probe) Option {
	return func(c *Client) {
		c.probe = p
	}
}

func WithLocale(l LocaleSource) Option {
	return func(c *Client) {
		c.locale = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

func New(baseURL string, store kvstore.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		store:      store,
		notifier:   notify.NewGlobalLogNotifier(),
		probe:      connectivity.Static(true),
		logger:     log.Logger,
		clock:      clockwork.NewRealClock(),
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	hc.Timeout = c.timeout
	c.httpClient = &hc
	return c
}

// Subscribe registers l for credential renewals and clears.
func (c *Client) Subscribe(l CredentialListener) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.listeners = append(c.listeners, l)
}

func (c *Client) credentialChanged(kind CredentialKind, value string) {
	c.lock.RLock()
	listeners := append([]CredentialListener(nil), c.listeners...)
	c.lock.RUnlock()

	for _, l := range listeners {
		l.CredentialChanged(kind, value)
	}
	if value != "" {
		c.metrics.CredentialRenewed(string(kind))
	}
}

// Get issues a GET for route with params as the query string.
func (c *Client) Get(ctx context.Context, route string, params url.Values) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Route: route, Params: params})
}

// Do performs req and returns the envelope data of a successful response.
// Data is nil when the envelope carried none. Every failure has produced
// exactly one notification by the time Do returns, except cancellation by
// the caller which is returned as is.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	requestID := uuid.NewString()
	logger := c.logger.With().Str("request_id", requestID).Str("route", req.Route).Logger()
	start := c.clock.Now()

	httpReq, err := c.build(ctx, req)
	if err != nil {
		logger.Err(err).Msg("request configuration error")
		return nil, c.fail(req.Route, metrics.OutcomeBuild, start, MsgRequestConfig, errors.Wrapf(ErrRequestConfig, "%s: %v", req.Route, err))
	}
	httpReq.Header.Set("X-Request-ID", requestID)
	c.decorate(ctx, httpReq)

	logger.Debug().Str("method", httpReq.Method).Str("url", httpReq.URL.Redacted()).Msg("api request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportFailure(ctx, logger, req.Route, start, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.transportFailure(ctx, logger, req.Route, start, err)
	}

	c.processRenewal(ctx, logger, resp.Header)

	if !c.probe.Online(ctx) {
		return nil, c.fail(req.Route, metrics.OutcomeOffline, start, MsgOffline, errors.Wrapf(ErrOffline, "%s", req.Route))
	}

	logger.Debug().Int("status", resp.StatusCode).Int("bytes", len(body)).Msg("api response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusFailure(ctx, logger, req.Route, start, resp.StatusCode, body)
	}

	env, ok := decodeEnvelope(body)
	if !ok {
		env = Envelope{Code: CodeMalformed}
	}
	if ok && isSuccessCode(env.Code) {
		c.metrics.ObserveRequest(req.Route, metrics.OutcomeSuccess, c.clock.Since(start))
		return dataOrNil(env.Data), nil
	}

	msg := env.Message
	if msg == "" {
		msg = MsgBusinessFailure
	}
	logger.Warn().Int("code", env.Code).Str("message", env.Message).Msg("api business failure")
	return nil, c.fail(req.Route, metrics.OutcomeBusiness, start, msg, &APIError{Envelope: env, Route: req.Route})
}

func (c *Client) build(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := url.Parse(c.baseURL + "/" + strings.TrimPrefix(req.Route, "/"))
	if err != nil {
		return nil, err
	}
	q := u.Query()
	for k, vs := range req.Params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}
	return http.NewRequestWithContext(ctx, method, u.String(), body)
}

// fail notifies the user once and records the outcome
func (c *Client) fail(route, outcome string, start time.Time, message string, err error) error {
	c.metrics.ObserveRequest(route, outcome, c.clock.Since(start))
	c.notify(notify.Fail(message))
	return err
}

func decodeEnvelope(body []byte) (Envelope, bool) {
	var wire struct {
		Code    *int            `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &wire); err != nil || wire.Code == nil {
		return Envelope{}, false
	}
	return Envelope{Code: *wire.Code, Message: wire.Message, Data: wire.Data}, true
}

func isSuccessCode(code int) bool {
	return code == 200 || code == 1 || code == 0
}

func dataOrNil(data json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return data
}

// Decode unmarshals the data of a successful call into T.
func Decode[T any](data json.RawMessage, err error) (T, error) {
	var out T
	if err != nil {
		return out, err
	}
	if data == nil {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, errors.Wrapf(errors.ErrInternal, "decoding response data: %v", err)
	}
	return out, nil
}
