package cookie

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestScan(t *testing.T) {
	tests := []struct {
		name    string
		cookies string
		key     string
		want    string
		found   bool
	}{
		{"single cookie", "a=1", "a", "1", true},
		{"leading spaces trimmed", "a=1;   b=2", "b", "2", true},
		{"first match wins", "a=1; a=2", "a", "1", true},
		{"prefix of another key does not match", "ab=1", "a", "", false},
		{"value kept verbatim", `c={"x":1}`, "c", `{"x":1}`, true},
		{"empty value", "a=", "a", "", true},
		{"missing", "a=1; b=2", "c", "", false},
		{"empty string", "", "a", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Scan(tt.cookies, tt.key)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatSetCookie(t *testing.T) {
	line := FormatSetCookie("user_location", "abc", Expiry(fixedNow, 30))
	assert.Equal(t, "user_location=abc; expires=Sat, 14 Nov 2026 09:00:00 GMT; path=/; SameSite=Lax", line)

	deleted := FormatSetCookie("user_location", "", deletedExpiry)
	assert.Equal(t, "user_location=; expires=Thu, 01 Jan 1970 00:00:00 GMT; path=/; SameSite=Lax", deleted)
}

func TestHTTPJar(t *testing.T) {
	t.Run("reads request cookies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Cookie", "theme=dark; cookie_consent=xyz")
		jar := NewHTTPJar(httptest.NewRecorder(), req)

		v, ok := jar.Get("cookie_consent")
		require.True(t, ok)
		assert.Equal(t, "xyz", v)
	})

	t.Run("set is visible to later reads and emitted once", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Cookie", "a=old")
		w := httptest.NewRecorder()
		jar := NewHTTPJar(w, req, WithClock(fixedClock))

		jar.Set("a", "first", DefaultTTLDays)
		jar.Set("a", "second", DefaultTTLDays)
		jar.Set("b", "x", 30)

		v, _ := jar.Get("a")
		assert.Equal(t, "second", v)
		assert.Equal(t, "a=second; b=x", jar.String())
		assert.Equal(t, []string{
			FormatSetCookie("a", "second", Expiry(fixedNow, DefaultTTLDays)),
			FormatSetCookie("b", "x", Expiry(fixedNow, 30)),
		}, w.Header().Values("Set-Cookie"))
	})

	t.Run("delete drops the cookie and expires it in the past", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Cookie", "a=1; b=2")
		w := httptest.NewRecorder()
		jar := NewHTTPJar(w, req)

		jar.Delete("a")

		_, ok := jar.Get("a")
		assert.False(t, ok)
		assert.Equal(t, "b=2", jar.String())
		assert.Equal(t, []string{"a=; expires=Thu, 01 Jan 1970 00:00:00 GMT; path=/; SameSite=Lax"},
			w.Header().Values("Set-Cookie"))
	})

	t.Run("non-positive ttl removes the cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Cookie", "a=1")
		jar := NewHTTPJar(httptest.NewRecorder(), req, WithClock(fixedClock))

		jar.Set("a", "2", 0)
		_, ok := jar.Get("a")
		assert.False(t, ok)
	})

	t.Run("multiple cookie headers are concatenated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Add("Cookie", "a=1")
		req.Header.Add("Cookie", "b=2")
		jar := NewHTTPJar(httptest.NewRecorder(), req)

		v, ok := jar.Get("b")
		require.True(t, ok)
		assert.Equal(t, "2", v)
	})
}

func TestStore(t *testing.T) {
	t.Run("set, get, delete", func(t *testing.T) {
		s := NewStore(WithClock(fixedClock))
		s.Set("a", "1", 1)
		s.Set("b", "2", 1)

		v, ok := s.Get("a")
		require.True(t, ok)
		assert.Equal(t, "1", v)
		assert.Equal(t, "a=1; b=2", s.String())

		s.Delete("a")
		_, ok = s.Get("a")
		assert.False(t, ok)
		assert.Len(t, s.Written(), 3)
	})

	t.Run("entries expire with the clock", func(t *testing.T) {
		now := fixedNow
		s := NewStore(WithClock(func() time.Time { return now }))
		s.Set("short", "x", 30)
		s.Set("long", "y", 365)

		now = fixedNow.Add(31 * 24 * time.Hour)
		_, ok := s.Get("short")
		assert.False(t, ok)
		_, ok = s.Get("long")
		assert.True(t, ok)
	})

	t.Run("load seeds session cookies", func(t *testing.T) {
		s := NewStore()
		s.Load("a=1;  b=two")
		v, ok := s.Get("b")
		require.True(t, ok)
		assert.Equal(t, "two", v)
	})
}

func TestMiddleware(t *testing.T) {
	var captured Jar
	handler := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jar, ok := FromContext(r.Context())
		require.True(t, ok)
		captured = jar
		jar.Set("seen", "1", 1)
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "pre=1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.NotNil(t, captured)
	v, _ := captured.Get("pre")
	assert.Equal(t, "1", v)
	assert.Len(t, w.Header().Values("Set-Cookie"), 1)

	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}
