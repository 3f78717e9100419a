package cookie

import (
	"sync"
	"time"
)

type storedCookie struct {
	name    string
	value   string
	expires time.Time // zero means session cookie
}

// Store is an in-memory, browser-like cookie store: entries expire, expired
// entries are dropped from the cookie string, and deletion takes effect
// immediately. It backs the CLI and tests, and is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries []storedCookie
	written []string
	now     func() time.Time
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	o := newOptions(opts)
	return &Store{now: o.now}
}

// Load seeds the store from a Cookie header value. Loaded cookies are
// session cookies and never expire on their own.
func (s *Store) Load(header string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range parsePairs(header) {
		s.put(storedCookie{name: p.name, value: p.value})
	}
}

// String renders the live cookies the way document.cookie does.
func (s *Store) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	live := make([]pair, 0, len(s.entries))
	for _, c := range s.entries {
		if c.expires.IsZero() || c.expires.After(now) {
			live = append(live, pair{name: c.name, value: c.value})
		}
	}
	return renderPairs(live)
}

func (s *Store) Get(name string) (string, bool) {
	return Scan(s.String(), name)
}

func (s *Store) Set(name, value string, ttlDays int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	expires := Expiry(now, ttlDays)
	s.written = append(s.written, FormatSetCookie(name, value, expires))
	if !expires.After(now) {
		s.remove(name)
		return
	}
	s.put(storedCookie{name: name, value: value, expires: expires})
}

func (s *Store) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = append(s.written, FormatSetCookie(name, "", deletedExpiry))
	s.remove(name)
}

// Written returns every Set-Cookie line applied to the store, in order.
func (s *Store) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.written...)
}

func (s *Store) put(c storedCookie) {
	for i := range s.entries {
		if s.entries[i].name == c.name {
			s.entries[i] = c
			return
		}
	}
	s.entries = append(s.entries, c)
}

func (s *Store) remove(name string) {
	kept := s.entries[:0]
	for _, c := range s.entries {
		if c.name != name {
			kept = append(kept, c)
		}
	}
	s.entries = kept
}

var _ Jar = (*Store)(nil)
