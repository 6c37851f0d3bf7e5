package utils

import (
	"strings"

	ua "github.com/mileusna/useragent"
)

// ParseUserAgent extracts useful information from User-Agent string
func ParseUserAgent(userAgent string) (browser, os, device string) {
	if userAgent == "" {
		return "Unknown Browser", "Unknown OS", "Desktop"
	}

	parsedUA := ua.Parse(userAgent)

	// Get browser name (without version)
	if parsedUA.Name != "" {
		browser = parsedUA.Name
	} else {
		browser = "Unknown Browser"
	}

	// Get OS name (without version)
	if parsedUA.OS != "" {
		os = parsedUA.OS
	} else {
		os = "Unknown OS"
	}

	// Determine device type
	device = "Desktop" // Default
	if parsedUA.Mobile {
		if strings.Contains(userAgent, "iPhone") {
			device = "iPhone"
		} else {
			device = "Mobile"
		}
	} else if parsedUA.Tablet {
		device = "Tablet"
	}

	return strings.TrimSpace(browser), strings.TrimSpace(os), device
}

// DeviceLabel builds the short client label stored on sort audit entries,
// e.g. "Chrome on macOS (Desktop)".
func DeviceLabel(userAgent string) string {
	browser, os, device := ParseUserAgent(userAgent)
	return browser + " on " + os + " (" + device + ")"
}
