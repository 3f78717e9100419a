package store

import (
	"fmt"

	"atelier/internal/tracking/cookie"
	"atelier/internal/tracking/models"
)

// Error Contract:
// Writes return an error when the value cannot be serialized, or
// cookie.ErrTooLarge when its Set-Cookie line would exceed the store's line
// limit. A rejected write leaves the jar untouched.
// Reads never return errors: they report Absent when the slot is empty and
// Failed(reason) when the stored text cannot be decoded.

// Slot is one cookie holding one serialized value of type T.
type Slot[T any] struct {
	name     string
	ttlDays  int
	maxBytes int // zero means unlimited
	// fixup, when set, restores invariants on decoded values.
	fixup func(T) T
}

// Name returns the cookie name backing the slot.
func (s Slot[T]) Name() string {
	return s.name
}

// Write serializes value and stores it for the slot's lifetime, replacing
// whatever was there.
func (s Slot[T]) Write(jar cookie.Jar, value T) error {
	text, err := encode(value)
	if err != nil {
		return err
	}
	if s.maxBytes > 0 {
		if n := cookie.LineLength(s.name, text); n > s.maxBytes {
			return fmt.Errorf("%s cookie needs %d bytes, limit %d: %w", s.name, n, s.maxBytes, cookie.ErrTooLarge)
		}
	}
	jar.Set(s.name, text, s.ttlDays)
	return nil
}

// Read re-parses the slot from the jar.
func (s Slot[T]) Read(jar cookie.Jar) models.Outcome[T] {
	text, ok := jar.Get(s.name)
	if !ok {
		return models.Absent[T]()
	}
	var value T
	if err := decode(text, &value); err != nil {
		return models.Failed[T](err)
	}
	if s.fixup != nil {
		value = s.fixup(value)
	}
	return models.Success(value)
}

// Clear deletes the slot's cookie.
func (s Slot[T]) Clear(jar cookie.Jar) {
	jar.Delete(s.name)
}

// CookieStore persists the tracking entities in the visitor's cookies. It
// holds no copy of any value.
type CookieStore struct {
	consent    Slot[models.ConsentRecord]
	location   Slot[models.UserLocation]
	activities Slot[[]models.UserActivity]
}

// Option configures a CookieStore.
type Option func(*options)

type options struct {
	maxBytes int
}

// WithLineLimit overrides the Set-Cookie line limit, cookie.MaxLineBytes by
// default. A limit of zero or less disables the check.
func WithLineLimit(n int) Option {
	return func(o *options) {
		o.maxBytes = n
	}
}

// New constructs a CookieStore with the standard slot names and lifetimes.
func New(opts ...Option) *CookieStore {
	o := options{maxBytes: cookie.MaxLineBytes}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxBytes < 0 {
		o.maxBytes = 0
	}
	return &CookieStore{
		consent: Slot[models.ConsentRecord]{
			name:     models.ConsentCookie,
			maxBytes: o.maxBytes,
			ttlDays:  models.ConsentTTLDays,
			fixup: func(r models.ConsentRecord) models.ConsentRecord {
				r.Necessary = true
				return r
			},
		},
		location: Slot[models.UserLocation]{
			name:     models.LocationCookie,
			maxBytes: o.maxBytes,
			ttlDays:  models.LocationTTLDays,
		},
		activities: Slot[[]models.UserActivity]{
			name:     models.ActivitiesCookie,
			maxBytes: o.maxBytes,
			ttlDays:  models.ActivityTTLDays,
			fixup: func(a []models.UserActivity) []models.UserActivity {
				if a == nil {
					return []models.UserActivity{}
				}
				return a
			},
		},
	}
}

func (s *CookieStore) SaveConsent(jar cookie.Jar, record models.ConsentRecord) error {
	return s.consent.Write(jar, record)
}

func (s *CookieStore) LoadConsent(jar cookie.Jar) models.Outcome[models.ConsentRecord] {
	return s.consent.Read(jar)
}

func (s *CookieStore) SaveLocation(jar cookie.Jar, location models.UserLocation) error {
	return s.location.Write(jar, location)
}

func (s *CookieStore) LoadLocation(jar cookie.Jar) models.Outcome[models.UserLocation] {
	return s.location.Read(jar)
}

// SaveActivities replaces the whole activity log.
func (s *CookieStore) SaveActivities(jar cookie.Jar, activities []models.UserActivity) error {
	return s.activities.Write(jar, activities)
}

func (s *CookieStore) LoadActivities(jar cookie.Jar) models.Outcome[[]models.UserActivity] {
	return s.activities.Read(jar)
}

// Clear deletes the location, activity and consent cookies.
func (s *CookieStore) Clear(jar cookie.Jar) {
	s.location.Clear(jar)
	s.activities.Clear(jar)
	s.consent.Clear(jar)
}
