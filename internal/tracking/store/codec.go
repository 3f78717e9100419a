package store

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"atelier/pkg/platform/sentinel"
)

const hexDigits = "0123456789ABCDEF"

// encode serializes v to JSON and percent-encodes only the bytes that may not
// appear in a cookie value (RFC 6265 cookie-octet), plus '%' itself. JSON
// punctuation such as '{', ':' and '[' passes through unescaped.
func encode(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal cookie value: %w", err)
	}
	return escapeCookieValue(raw), nil
}

func decode(text string, v any) error {
	raw, err := url.PathUnescape(text)
	if err != nil {
		return fmt.Errorf("unescape cookie value: %w: %w", sentinel.ErrMalformed, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("unmarshal cookie value: %w: %w", sentinel.ErrMalformed, err)
	}
	return nil
}

func escapeCookieValue(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw) + len(raw)/4)
	for _, c := range raw {
		if c != '%' && isCookieOctet(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0F])
	}
	return b.String()
}

// isCookieOctet excludes CTLs, whitespace, DQUOTE, comma, semicolon,
// backslash and non-ASCII bytes.
func isCookieOctet(c byte) bool {
	switch {
	case c == 0x21:
		return true
	case c >= 0x23 && c <= 0x2B:
		return true
	case c >= 0x2D && c <= 0x3A:
		return true
	case c >= 0x3C && c <= 0x5B:
		return true
	case c >= 0x5D && c <= 0x7E:
		return true
	}
	return false
}
