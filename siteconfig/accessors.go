package siteconfig

func (s *Store) Status() Status {
	s.lock.RLock()
	defer s.lock.RUnlock()
	switch {
	case s.loading:
		return StatusLoading
	case s.loaded:
		return StatusLoaded
	case s.lastErr != nil:
		return StatusErrored
	default:
		return StatusIdle
	}
}

// LastError returns a copy of the last load failure, or nil.
func (s *Store) LastError() *LoadError {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.lastErr == nil {
		return nil
	}
	e := *s.lastErr
	return &e
}

func (s *Store) IsLoaded() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.loaded
}

func (s *Store) IsLoading() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.loading
}

func (s *Store) IsAppReady() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.appReady
}

// IsConfigAvailable is true once a non-empty configuration has loaded and
// no error has been recorded since.
func (s *Store) IsConfigAvailable() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.loaded && !s.config.IsEmpty() && s.lastErr == nil
}

// ShouldShowLoading is true only for the first load.
func (s *Store) ShouldShowLoading() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.loading && !s.loaded
}

// Config returns the current configuration, nil before the first load.
func (s *Store) Config() *SiteConfig {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.config
}

func (s *Store) GroupPrefix() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.groupPrefix
}

func (s *Store) Theme() Theme {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.theme
}

func (s *Store) Title() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.title
}

func (s *Store) SiteName() string {
	return s.coreOr(func(c *SiteConfig) string { return c.SiteName }, DefaultSiteName)
}

func (s *Store) SiteLogo() string {
	return s.coreOr(func(c *SiteConfig) string { return c.SiteWapLogo }, DefaultSiteLogo)
}

func (s *Store) CustomerServiceURL() string {
	return s.coreOr(func(c *SiteConfig) string { return c.CustomerServiceURL }, "")
}

func (s *Store) coreOr(get func(*SiteConfig) string, def string) string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.config == nil {
		return def
	}
	if v := get(s.config); v != "" {
		return v
	}
	return def
}

// Value returns the configuration field key decoded as T, or def.
func Value[T any](s *Store, key string, def T) T {
	return Lookup(s.Config(), key, def)
}
