// Package launch consumes the one-shot parameters a member page can be
// opened with: a language alias and a handed-over secondary token.
package launch

import (
	"context"
	"net/url"

	"github.com/jrsteele09/go-member-client/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	ParamLang  = "lang"
	ParamToken = "token"
)

type LanguageApplier interface {
	ApplyParam(ctx context.Context, raw string) bool
}

type TokenAdopter interface {
	AdoptURLToken(ctx context.Context, token string) error
}

// Result describes what Apply did with the URL.
type Result struct {
	URL          string
	LangApplied  bool
	TokenAdopted bool
}

// Apply applies the lang and token query parameters of rawURL and returns
// the URL with the consumed parameters removed. lang is always removed once
// seen; token only when it was adopted, so an invalid one stays visible.
func Apply(ctx context.Context, rawURL string, lang LanguageApplier, tokens TokenAdopter) (Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Result{URL: rawURL}, errors.Wrapf(err, "parsing launch url")
	}

	res := Result{}
	q := u.Query()
	if q.Has(ParamLang) {
		raw := q.Get(ParamLang)
		res.LangApplied = lang.ApplyParam(ctx, raw)
		if !res.LangApplied {
			log.Warn().Str("lang", raw).Msg("unsupported language in launch url")
		}
		q.Del(ParamLang)
	}

	if token := q.Get(ParamToken); token != "" {
		if err := tokens.AdoptURLToken(ctx, token); err != nil {
			log.Warn().Err(err).Msg("ignoring launch url token")
		} else {
			res.TokenAdopted = true
			q.Del(ParamToken)
		}
	}

	u.RawQuery = q.Encode()
	res.URL = u.String()
	return res, nil
}
