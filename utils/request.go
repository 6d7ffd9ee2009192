package utils

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

// ClientIP derives the caller's address the way the analytics pipeline
// stores it: first X-Forwarded-For entry, then X-Real-IP, then "unknown".
// It deliberately does not consult RemoteAddr; behind the hosting proxy
// that would always be the proxy itself.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	return "unknown"
}

// DeriveClient parses a User-Agent string into browser, OS and device type.
// Used as a fallback when the beacon did not include those fields.
func DeriveClient(uaString string) (browser, os, device string) {
	if uaString == "" {
		return "Unknown", "Unknown", "Unknown"
	}

	ua := useragent.New(uaString)
	browser, _ = ua.Browser()
	os = ua.OS()
	device = "Desktop"
	if ua.Mobile() {
		device = "Mobile"
	} else if ua.Bot() {
		device = "Bot"
	}
	return browser, os, device
}
