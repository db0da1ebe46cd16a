package connectivity

import (
	"context"
	"net"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// Probe reports whether the host currently has network connectivity.
type Probe interface {
	Online(ctx context.Context) bool
}

// Static always gives the same answer.
type Static bool

func (s Static) Online(context.Context) bool { return bool(s) }

// DialProbe treats a successful TCP connect to addr as "online".
type DialProbe struct {
	addr    string
	timeout time.Duration
	dialer  net.Dialer
}

var _ Probe = (*DialProbe)(nil)

// NewDialProbe probes addr, which is either host:port or an http(s) URL.
func NewDialProbe(addr string, timeout time.Duration) *DialProbe {
	return &DialProbe{
		addr:    hostPort(addr),
		timeout: timeout,
	}
}

func (p *DialProbe) Online(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dialer.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		log.Debug().Err(err).Str("addr", p.addr).Msg("connectivity probe failed")
		return false
	}
	_ = conn.Close()
	return true
}

func hostPort(addr string) string {
	u, err := url.Parse(addr)
	if err != nil || u.Host == "" {
		return addr
	}
	if u.Port() != "" {
		return u.Host
	}
	if u.Scheme == "https" {
		return net.JoinHostPort(u.Hostname(), "443")
	}
	return net.JoinHostPort(u.Hostname(), "80")
}
