package apiclient

import (
	"encoding/json"
	"fmt"

	"github.com/jrsteele09/go-member-client/internal/errors"
)

var (
	ErrOffline          = errors.ErrOffline
	ErrTimeout          = errors.ErrTimeout
	ErrConnectionFailed = errors.ErrConnectionFailed
	ErrRequestConfig    = errors.ErrRequestConfig
)

// CodeMalformed marks an envelope that could not be decoded or had no code.
const CodeMalformed = -1

// Envelope is the body shape every member API endpoint answers with.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// APIError is a well-formed HTTP response whose envelope code is not a
// success code. It carries the whole envelope.
type APIError struct {
	Envelope
	Route string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = MsgBusinessFailure
	}
	return fmt.Sprintf("%s: api code %d: %s", e.Route, e.Code, msg)
}

// HTTPError is a non-2xx response. Message is the server supplied message if
// the body carried one; Notice is what the user was shown.
type HTTPError struct {
	Route      string
	StatusCode int
	Message    string
	Notice     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: http %d: %s", e.Route, e.StatusCode, e.Notice)
}

// IsAuthFailure reports whether err means the credentials were rejected.
func IsAuthFailure(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 401 || httpErr.StatusCode == 403
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == 401
	}
	return false
}

// IsTransient reports whether retrying err later could succeed.
func IsTransient(err error) bool {
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrConnectionFailed) || errors.Is(err, ErrOffline) {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 429 || httpErr.StatusCode >= 500
	}
	return false
}
