package sessions

import (
	"strings"

	"github.com/jrsteele09/go-member-client/apiclient"
)

// WipePolicy decides which profile refresh failures wipe local storage.
type WipePolicy int

const (
	// WipeOnAnyError treats every failed refresh as a dead session.
	WipeOnAnyError WipePolicy = iota
	// WipeOnAuthFailure keeps the session through timeouts, outages and
	// other transient failures.
	WipeOnAuthFailure
)

// ParseWipePolicy accepts "any" or "auth"; anything else is WipeOnAnyError.
func ParseWipePolicy(s string) WipePolicy {
	if strings.EqualFold(strings.TrimSpace(s), "auth") {
		return WipeOnAuthFailure
	}
	return WipeOnAnyError
}

func (p WipePolicy) String() string {
	if p == WipeOnAuthFailure {
		return "auth"
	}
	return "any"
}

func (p WipePolicy) shouldWipe(err error) bool {
	if p == WipeOnAuthFailure {
		return apiclient.IsAuthFailure(err)
	}
	return true
}
