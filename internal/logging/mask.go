// Package logging provides utilities for secure logging and error presentation.
// It includes functions for masking sensitive information in messages shown to
// users, so the webtrigger token embedded in the endpoint URL is never echoed
// back by error paths.
package logging

import (
	"regexp"
	"strings"
)

var (
	// Webtrigger URLs carry their secret as a path segment:
	// https://<app>.example-dev.net/x1/<token>. Keep scheme and host,
	// mask the path.
	reTriggerURL = regexp.MustCompile(`(?i)(https?://[^/\s"]+)/[^\s"?]+`)
	reToken      = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._-]+)`)
	reAPIKey     = regexp.MustCompile(`(?i)(apikey=|api_key=)([^\s;]+)`)
)

// Mask replaces sensitive values in the input string with "***".
// URL paths are masked wholesale since the trigger token lives there.
func Mask(s string) string {
	out := s
	out = reTriggerURL.ReplaceAllString(out, "$1/***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reAPIKey.ReplaceAllString(out, "$1***")
	// Env-like pairs key=VALUE; mask known secret keys
	for _, k := range []string{"FSQL_WEBTRIGGER_URL"} {
		if idx := strings.Index(out, k+"="); idx >= 0 {
			end := idx + len(k) + 1
			rest := out[end:]
			if sp := strings.IndexAny(rest, " \t\n"); sp >= 0 {
				out = out[:end] + "***" + rest[sp:]
			} else {
				out = out[:end] + "***"
			}
		}
	}
	return out
}

// MaskURL masks only the path of a URL, keeping scheme and host visible.
// Used when displaying the configured endpoint.
func MaskURL(rawURL string) string {
	return reTriggerURL.ReplaceAllString(rawURL, "$1/***")
}
