package device

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	chromeMac    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	safariIPhone = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	firefoxLinux = "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"
	googlebot    = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func TestPlatform(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		expected  string
	}{
		{name: "empty", userAgent: "", expected: PlatformUnknown},
		{name: "whitespace", userAgent: "   ", expected: PlatformUnknown},
		{name: "chrome on mac", userAgent: chromeMac, expected: PlatformDesktop},
		{name: "firefox on linux", userAgent: firefoxLinux, expected: PlatformDesktop},
		{name: "safari on iphone", userAgent: safariIPhone, expected: PlatformMobile},
		{name: "crawler", userAgent: googlebot, expected: PlatformBot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Platform(tt.userAgent))
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		assertion func(t *testing.T, result string)
	}{
		{
			name:      "empty user agent returns unknown device",
			userAgent: "",
			assertion: func(t *testing.T, result string) {
				assert.Equal(t, "Unknown Device", result)
			},
		},
		{
			name:      "chrome on desktop",
			userAgent: chromeMac,
			assertion: func(t *testing.T, result string) {
				assert.Contains(t, result, "Chrome")
				assert.Contains(t, result, " on ")
				assert.NotContains(t, result, "  ")
			},
		},
		{
			name:      "mobile device includes platform",
			userAgent: safariIPhone,
			assertion: func(t *testing.T, result string) {
				assert.Contains(t, result, "iPhone")
			},
		},
		{
			name:      "unknown agent gets defaults",
			userAgent: "Unknown/1.0",
			assertion: func(t *testing.T, result string) {
				assert.Contains(t, result, " on ")
				assert.Equal(t, strings.TrimSpace(result), result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.assertion(t, DisplayName(tt.userAgent))
		})
	}
}
