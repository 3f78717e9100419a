package cookie

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// HTTPJar is the cookie store of one HTTP exchange. It starts from the
// request's Cookie header and answers reads from its own view, so a value set
// earlier in the same request is visible to later reads, as in a browser.
// Writes are emitted as Set-Cookie headers; they must happen before the
// response header is written.
type HTTPJar struct {
	mu   sync.Mutex
	w    http.ResponseWriter
	view []pair
	now  func() time.Time
}

// NewHTTPJar binds a jar to r's cookies and w's headers.
func NewHTTPJar(w http.ResponseWriter, r *http.Request, opts ...Option) *HTTPJar {
	o := newOptions(opts)
	raw := strings.Join(r.Header.Values("Cookie"), "; ")
	return &HTTPJar{w: w, view: parsePairs(raw), now: o.now}
}

// String renders the jar's current view as a Cookie header value.
func (j *HTTPJar) String() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return renderPairs(j.view)
}

func (j *HTTPJar) Get(name string) (string, bool) {
	return Scan(j.String(), name)
}

func (j *HTTPJar) Set(name, value string, ttlDays int) {
	now := j.now()
	expires := Expiry(now, ttlDays)

	j.mu.Lock()
	defer j.mu.Unlock()
	if !expires.After(now) {
		j.remove(name)
		j.emit(name, FormatSetCookie(name, value, expires))
		return
	}
	replaced := false
	for i := range j.view {
		if j.view[i].name == name {
			j.view[i].value = value
			replaced = true
			break
		}
	}
	if !replaced {
		j.view = append(j.view, pair{name: name, value: value})
	}
	j.emit(name, FormatSetCookie(name, value, expires))
}

func (j *HTTPJar) Delete(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.remove(name)
	j.emit(name, FormatSetCookie(name, "", deletedExpiry))
}

func (j *HTTPJar) remove(name string) {
	kept := j.view[:0]
	for _, p := range j.view {
		if p.name != name {
			kept = append(kept, p)
		}
	}
	j.view = kept
}

// emit replaces any Set-Cookie line already queued for name so each cookie
// is written once per response with its final value.
func (j *HTTPJar) emit(name, line string) {
	header := j.w.Header()
	lines := header.Values("Set-Cookie")
	prefix := name + "="
	out := make([]string, 0, len(lines)+1)
	for _, l := range lines {
		if !strings.HasPrefix(l, prefix) {
			out = append(out, l)
		}
	}
	header["Set-Cookie"] = append(out, line)
}

var _ Jar = (*HTTPJar)(nil)
