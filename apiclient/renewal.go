package apiclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-member-client/internal/utils"
	"github.com/jrsteele09/go-member-client/kvstore"
	"github.com/rs/zerolog"
)

const bearerPrefix = "Bearer "

// processRenewal stores credentials the server rotated through response
// headers. It never fails the call.
func (c *Client) processRenewal(ctx context.Context, logger zerolog.Logger, h http.Header) {
	if auth := h.Get("Authorization"); strings.HasPrefix(auth, bearerPrefix) {
		if token := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix)); token != "" {
			c.renew(ctx, logger, CredentialBearer, kvstore.KeyAccessToken, token)
		}
	}

	if token := h.Get(HeaderSecondaryToken); token != "" {
		c.renew(ctx, logger, CredentialSecondary, kvstore.KeySimpleToken, token)
	}

	if h.Get(HeaderTokenExtended) == "1" {
		logger.Info().Msg("server extended bearer credential")
	}
}

func (c *Client) renew(ctx context.Context, logger zerolog.Logger, kind CredentialKind, key, token string) {
	if err := c.store.Set(ctx, key, token); err != nil {
		logger.Err(err).Str("kind", string(kind)).Msg("storing renewed credential")
		return
	}
	logger.Info().Str("kind", string(kind)).Str("token", utils.MaskSecret(token, 6)).Msg("credential renewed")
	c.credentialChanged(kind, token)
}

// clearCredentials removes both credentials after the server rejected them.
func (c *Client) clearCredentials(ctx context.Context, logger zerolog.Logger) {
	for _, cred := range []struct {
		kind CredentialKind
		key  string
	}{
		{CredentialBearer, kvstore.KeyAccessToken},
		{CredentialSecondary, kvstore.KeySimpleToken},
	} {
		if err := c.store.Remove(ctx, cred.key); err != nil {
			logger.Err(err).Str("kind", string(cred.kind)).Msg("clearing expired credential")
		}
		c.credentialChanged(cred.kind, "")
	}
	logger.Warn().Msg("credentials expired, cleared local copies")
}
