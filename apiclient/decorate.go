package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-member-client/kvstore"
	"github.com/jrsteele09/go-member-client/locale"
	"golang.org/x/oauth2"
)

const (
	HeaderSecondaryToken = "X-Token"
	HeaderGroupPrefix    = "group-prefix"
	HeaderTokenExtended  = "X-Token-Extended"
)

// decorate applies, in order: server language, client type marker, bearer
// credential, secondary credential and tenant identifier.
func (c *Client) decorate(ctx context.Context, req *http.Request) {
	q := req.URL.Query()
	q.Set("lang", c.serverLanguage())
	q.Set("is_mobile", "1")
	req.URL.RawQuery = q.Encode()

	if token := kvstore.GetString(ctx, c.store, kvstore.KeyAccessToken); token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}
	if token := kvstore.GetString(ctx, c.store, kvstore.KeySimpleToken); token != "" {
		req.Header.Set(HeaderSecondaryToken, token)
	}
	if prefix := kvstore.GetString(ctx, c.store, kvstore.KeyGroupPrefix); prefix != "" {
		req.Header.Set(HeaderGroupPrefix, prefix)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Accept", "application/json")
}

func (c *Client) serverLanguage() string {
	if c.locale == nil {
		return locale.DefaultServerCode
	}
	if code := c.locale.ServerCode(); code != "" {
		return code
	}
	return locale.DefaultServerCode
}
