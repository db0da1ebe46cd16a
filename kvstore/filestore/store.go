package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/go-member-client/kvstore"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var _ kvstore.Store = (*Store)(nil)

// Store keeps every key in a single JSON document on disk. Writes go to a
// temp file in the same directory which is then renamed over the document.
type Store struct {
	path   string
	cipher Cipher
	values map[string]string
	lock   sync.RWMutex
}

type Option func(*Store)

// WithCipher seals the document at rest.
func WithCipher(c Cipher) Option {
	return func(s *Store) {
		s.cipher = c
	}
}

// New opens the document at path. A missing document is an empty store; an
// unreadable one is logged and discarded on the next write.
func New(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		cipher: NoopCipher{},
		values: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "creating storage directory")
	}

	if err := s.load(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("discarding unreadable storage document")
	}
	return s, nil
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading storage document")
	}
	if len(raw) == 0 {
		return nil
	}

	plain, err := s.cipher.Open(raw)
	if err != nil {
		return err
	}

	values := make(map[string]string)
	if err := json.Unmarshal(plain, &values); err != nil {
		return errors.Wrap(err, "decoding storage document")
	}
	s.values = values
	return nil
}

// flush must be called with the write lock held
func (s *Store) flush() error {
	plain, err := json.Marshal(s.values)
	if err != nil {
		return errors.Wrap(err, "encoding storage document")
	}

	sealed, err := s.cipher.Seal(plain)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(sealed); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "syncing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "replacing storage document")
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	prev, existed := s.values[key]
	s.values[key] = value
	if err := s.flush(); err != nil {
		if existed {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	prev, existed := s.values[key]
	if !existed {
		return nil
	}
	delete(s.values, key)
	if err := s.flush(); err != nil {
		s.values[key] = prev
		return err
	}
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	prev := s.values
	s.values = make(map[string]string)
	if err := s.flush(); err != nil {
		s.values = prev
		return err
	}
	return nil
}
