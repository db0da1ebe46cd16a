package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Cached remembers the answer of another probe for ttl so a burst of calls
// costs a single check.
type Cached struct {
	probe   Probe
	ttl     time.Duration
	clock   clockwork.Clock
	online  bool
	checked time.Time
	lock    sync.Mutex
}

var _ Probe = (*Cached)(nil)

func NewCached(probe Probe, ttl time.Duration, clock clockwork.Clock) *Cached {
	return &Cached{probe: probe, ttl: ttl, clock: clock}
}

func (c *Cached) Online(ctx context.Context) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	now := c.clock.Now()
	if !c.checked.IsZero() && now.Sub(c.checked) < c.ttl {
		return c.online
	}
	c.online = c.probe.Online(ctx)
	c.checked = now
	return c.online
}
