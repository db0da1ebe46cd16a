package locale

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-member-client/internal/errors"
	"github.com/jrsteele09/go-member-client/kvstore"
	"github.com/rs/zerolog/log"
)

// Resolver holds the active locale and persists it under kvstore.KeyLanguage.
type Resolver struct {
	store   kvstore.Store
	current Tag
	lock    sync.RWMutex
}

// NewResolver restores the persisted locale, falling back to Default when
// nothing usable is stored.
func NewResolver(ctx context.Context, store kvstore.Store) *Resolver {
	r := &Resolver{store: store, current: Default}

	stored, found, err := store.Get(ctx, kvstore.KeyLanguage)
	if err != nil {
		log.Warn().Err(err).Msg("reading stored locale")
		return r
	}
	if !found {
		return r
	}
	if tag, ok := Parse(stored); ok {
		r.current = tag
	}
	return r
}

func (r *Resolver) Current() Tag {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.current
}

// Set switches to tag and persists it.
func (r *Resolver) Set(ctx context.Context, tag Tag) error {
	if !tag.IsSupported() {
		return errors.Wrapf(errors.ErrUnsupportedLanguage, "locale %q", tag)
	}

	r.lock.Lock()
	r.current = tag
	r.lock.Unlock()

	return r.store.Set(ctx, kvstore.KeyLanguage, string(tag))
}

// ApplyParam applies a language value taken from a URL or command line.
// Unrecognised values leave the current locale untouched and return false.
func (r *Resolver) ApplyParam(ctx context.Context, raw string) bool {
	tag, ok := Parse(raw)
	if !ok {
		log.Debug().Str("lang", raw).Msg("ignoring unsupported language parameter")
		return false
	}
	if err := r.Set(ctx, tag); err != nil {
		log.Err(err).Msg("persisting locale")
	}
	return true
}

func (r *Resolver) ServerCode() string {
	return r.Current().ServerCode()
}
