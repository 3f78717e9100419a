// Package device classifies visitors by their User-Agent header.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// Platform labels. They are bounded so they can be used as metric labels.
const (
	PlatformDesktop = "desktop"
	PlatformMobile  = "mobile"
	PlatformBot     = "bot"
	PlatformUnknown = "unknown"
)

// Platform returns the coarse platform label for a User-Agent string.
func Platform(userAgentString string) string {
	if strings.TrimSpace(userAgentString) == "" {
		return PlatformUnknown
	}
	ua := useragent.New(userAgentString)
	switch {
	case ua.Bot():
		return PlatformBot
	case ua.Mobile():
		return PlatformMobile
	default:
		return PlatformDesktop
	}
}

// DisplayName extracts a human-readable device name from a User-Agent string.
// Returns format: "Browser on OS" (e.g., "Chrome on macOS", "Safari on iOS")
func DisplayName(userAgentString string) string {
	if userAgentString == "" {
		return "Unknown Device"
	}

	ua := useragent.New(userAgentString)

	browser, _ := ua.Browser()
	os := ua.OS()

	if ua.Mobile() {
		if platform := ua.Platform(); platform != "" {
			return strings.TrimSpace(browser + " on " + platform)
		}
	}

	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}

	return strings.TrimSpace(browser + " on " + os)
}
