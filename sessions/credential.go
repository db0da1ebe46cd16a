package sessions

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-member-client/internal/errors"
	"github.com/jrsteele09/go-member-client/internal/utils"
)

// URLTokenLength is the exact length of a secondary credential handed over
// in a launch URL.
const URLTokenLength = 32

// AdoptURLToken stores token as the secondary credential if it is exactly
// 32 ASCII letters or digits.
func (s *Store) AdoptURLToken(ctx context.Context, token string) error {
	if len(token) != URLTokenLength || !utils.IsAlphanumeric(token) {
		return errors.Wrapf(errors.ErrInvalidURLToken, "token %s", utils.MaskSecret(token, 4))
	}
	if err := s.SetSecondaryCredential(ctx, token); err != nil {
		return err
	}
	s.logger.Info().Str("token", utils.MaskSecret(token, 8)).Msg("adopted url token")
	return nil
}

// HasValidCredential reports whether a bearer credential is present and, if
// it is a JWT carrying an expiry, not yet expired. The signature is not
// checked; the server remains the authority.
func (s *Store) HasValidCredential(ctx context.Context) bool {
	token := s.GetCredential(ctx)
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// opaque token
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return s.clock.Now().Before(exp.Time)
}
