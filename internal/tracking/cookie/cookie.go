// Package cookie is the primitive layer over the visitor's cookie store: get,
// set and delete one opaque string value by name, with expiry and site-wide
// path scoping.
//
// Values are written verbatim. Callers hand in text that is already safe to
// place in a Cookie header (no ';' and no leading spaces).
package cookie

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// DefaultTTLDays is the lifetime used when callers have no specific horizon.
const DefaultTTLDays = 365

// MaxLineBytes is the largest Set-Cookie line a browser is required to keep
// (RFC 6265 section 6.1). Browsers silently drop larger cookies.
const MaxLineBytes = 4096

// ErrTooLarge reports a value whose Set-Cookie line would exceed MaxLineBytes.
var ErrTooLarge = errors.New("cookie exceeds browser size limit")

// Jar reads and writes single cookies. Absence is the only failure a Jar reports.
type Jar interface {
	// Get returns the value of the first cookie named name.
	Get(name string) (string, bool)
	// Set stores value under name for ttlDays, scoped to path "/" with SameSite=Lax.
	Set(name, value string, ttlDays int)
	// Delete overwrites name with an empty, already-expired cookie.
	Delete(name string)
}

// Option configures a Jar implementation.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used to compute expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Scan looks through a concatenated cookie string ("a=1; b=2") for the first
// segment whose key equals name after trimming leading spaces, and returns its
// value verbatim.
func Scan(cookies, name string) (string, bool) {
	prefix := name + "="
	for _, segment := range strings.Split(cookies, ";") {
		segment = strings.TrimLeft(segment, " ")
		if strings.HasPrefix(segment, prefix) {
			return segment[len(prefix):], true
		}
	}
	return "", false
}

// Expiry returns the instant a cookie set at now with ttlDays expires.
func Expiry(now time.Time, ttlDays int) time.Time {
	return now.Add(time.Duration(ttlDays) * 24 * time.Hour)
}

// deletedExpiry is the past instant used to make the browser drop a cookie.
var deletedExpiry = time.Unix(0, 0).UTC()

// LineLength returns the length of the Set-Cookie line Set would emit for
// name and value. HTTP-dates are fixed width, so the expiry does not matter.
func LineLength(name, value string) int {
	return len(FormatSetCookie(name, value, deletedExpiry))
}

// FormatSetCookie renders the Set-Cookie wire value:
//
//	name=value; expires=<HTTP-date>; path=/; SameSite=Lax
func FormatSetCookie(name, value string, expires time.Time) string {
	var b strings.Builder
	b.Grow(len(name) + len(value) + 64)
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteString("; expires=")
	b.WriteString(expires.UTC().Format(http.TimeFormat))
	b.WriteString("; path=/; SameSite=Lax")
	return b.String()
}

// pair is one name=value segment of a cookie string.
type pair struct {
	name  string
	value string
}

func parsePairs(cookies string) []pair {
	var pairs []pair
	for _, segment := range strings.Split(cookies, ";") {
		segment = strings.TrimLeft(segment, " ")
		if segment == "" {
			continue
		}
		name, value, _ := strings.Cut(segment, "=")
		pairs = append(pairs, pair{name: name, value: value})
	}
	return pairs
}

func renderPairs(pairs []pair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.name+"="+p.value)
	}
	return strings.Join(parts, "; ")
}
