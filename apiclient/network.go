package apiclient

import (
	"context"
	"time"

	"github.com/jrsteele09/go-member-client/notify"
)

// NetworkStatus reports the current connectivity to the user and returns it.
func (c *Client) NetworkStatus(ctx context.Context) bool {
	if c.probe.Online(ctx) {
		c.notify(notify.Success(MsgNetworkNormal))
		return true
	}
	c.notify(notify.Fail(MsgNetworkDisconnect))
	return false
}

// WatchConnectivity polls the probe every interval until ctx is done and
// notifies the user on every transition between online and offline.
func (c *Client) WatchConnectivity(ctx context.Context, interval time.Duration) {
	ticker := c.clock.NewTicker(interval)
	defer ticker.Stop()

	online := c.probe.Online(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			now := c.probe.Online(ctx)
			if now == online {
				continue
			}
			online = now
			if online {
				c.logger.Info().Msg("network connected")
				c.notify(notify.Success(MsgNetworkRestored))
			} else {
				c.logger.Warn().Msg("network disconnected")
				c.notify(notify.Fail(MsgNetworkDisconnect))
			}
		}
	}
}

func (c *Client) notify(n notify.Notification) {
	c.metrics.Notified(string(n.Level))
	c.notifier.Notify(n)
}
