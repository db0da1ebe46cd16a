package sessions

import "encoding/json"

// Transient UI state. None of it is persisted.

func (s *Store) LoginShown() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.loginShown
}

func (s *Store) SetLoginShown(v bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.loginShown = v
}

func (s *Store) RegisterShown() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.registerShown
}

func (s *Store) SetRegisterShown(v bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.registerShown = v
}

// StartLoading marks a blocking operation as running. It returns false if
// one already is.
func (s *Store) StartLoading() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	return true
}

func (s *Store) StopLoading() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.loading = false
}

func (s *Store) IsLoading() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.loading
}

func (s *Store) SystemConf() json.RawMessage {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.systemConf
}

func (s *Store) SetSystemConf(conf json.RawMessage) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.systemConf = conf
}

func (s *Store) RegisterConf() map[string]any {
	s.lock.RLock()
	defer s.lock.RUnlock()
	out := make(map[string]any, len(s.registerConf))
	for k, v := range s.registerConf {
		out[k] = v
	}
	return out
}

func (s *Store) SetRegisterConf(conf map[string]any) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.registerConf = make(map[string]any, len(conf))
	for k, v := range conf {
		s.registerConf[k] = v
	}
}
