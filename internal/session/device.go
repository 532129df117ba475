package session

import (
	"fmt"
	"strings"

	"github.com/mssola/useragent"
)

// DeviceSummary renders a short human-readable device label from a raw
// User-Agent header, e.g. "Chrome 120 on Mac OS X".
func DeviceSummary(rawUA string) string {
	if strings.TrimSpace(rawUA) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(rawUA)
	name, version := ua.Browser()
	if name == "" {
		name = "Unknown Browser"
	}
	browser := name
	if version != "" {
		// Major version only; full build strings churn too much to display.
		if i := strings.IndexByte(version, '.'); i > 0 {
			version = version[:i]
		}
		browser = fmt.Sprintf("%s %s", name, version)
	}

	os := ua.OS()
	if os == "" {
		os = ua.Platform()
	}
	if os == "" {
		os = "Unknown OS"
	}

	return fmt.Sprintf("%s on %s", browser, os)
}
