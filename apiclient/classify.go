package apiclient

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/jrsteele09/go-member-client/internal/errors"
	"github.com/jrsteele09/go-member-client/metrics"
	"github.com/rs/zerolog"
)

// statusFailure maps a non-2xx response to a notice and an *HTTPError
func (c *Client) statusFailure(ctx context.Context, logger zerolog.Logger, route string, start time.Time, status int, body []byte) error {
	serverMsg := bodyMessage(body)

	var notice string
	switch {
	case status == http.StatusUnauthorized:
		c.clearCredentials(ctx, logger)
		notice = MsgLoginExpired
	case status == http.StatusForbidden:
		notice = MsgForbidden
	case status == http.StatusNotFound:
		notice = MsgNotFound
	case status == http.StatusUnprocessableEntity:
		notice = orDefault(serverMsg, MsgValidation)
	case status == http.StatusTooManyRequests:
		notice = MsgTooManyRequests
	case status == http.StatusInternalServerError:
		notice = MsgInternalServer
	case status > 500 && status < 600:
		notice = MsgUnavailable
	default:
		notice = orDefault(serverMsg, MsgRequestFailed)
	}

	logger.Warn().Int("status", status).Str("server_message", serverMsg).Msg("api http failure")
	return c.fail(route, metrics.OutcomeHTTP, start, notice, &HTTPError{
		Route:      route,
		StatusCode: status,
		Message:    serverMsg,
		Notice:     notice,
		Body:       body,
	})
}

// transportFailure handles calls that produced no usable response
func (c *Client) transportFailure(ctx context.Context, logger zerolog.Logger, route string, start time.Time, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		c.metrics.ObserveRequest(route, metrics.OutcomeTransport, c.clock.Since(start))
		logger.Debug().Err(err).Msg("api call cancelled")
		return errors.Wrapf(err, "%s", route)
	}

	if !c.probe.Online(ctx) {
		logger.Warn().Err(err).Msg("api call failed while offline")
		return c.fail(route, metrics.OutcomeOffline, start, MsgOffline, errors.Wrapf(ErrOffline, "%s", route))
	}

	if isTimeout(err) {
		logger.Warn().Err(err).Msg("api call timed out")
		return c.fail(route, metrics.OutcomeTimeout, start, MsgTimeout, errors.Wrapf(ErrTimeout, "%s: %v", route, err))
	}

	logger.Warn().Err(err).Msg("api connection failed")
	return c.fail(route, metrics.OutcomeTransport, start, MsgConnectionFailed, errors.Wrapf(ErrConnectionFailed, "%s: %v", route, err))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func bodyMessage(body []byte) string {
	var partial struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &partial); err != nil {
		return ""
	}
	return partial.Message
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
