// Package sanitize is the security boundary for user-supplied rich text and
// link values. All titles and descriptions pass through here before they are
// embedded in the rendered tree, and all image/link URLs are validated as
// well-formed http, https or data URLs before use.
package sanitize

import (
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// richText keeps basic formatting markup in label bodies.
	richText = bluemonday.UGCPolicy()

	// plainText strips every tag; used for tooltip title attributes.
	plainText = bluemonday.StrictPolicy()
)

// RichText sanitizes user-supplied rich text while preserving safe
// formatting markup. Sanitizing already-sanitized input is idempotent:
// bluemonday only removes disallowed nodes and attributes, it does not
// re-escape entities that are already escaped.
func RichText(s string) string {
	return richText.Sanitize(s)
}

// PlainText strips all markup, leaving text suitable for a tooltip or
// title attribute.
func PlainText(s string) string {
	return strings.TrimSpace(plainText.Sanitize(s))
}

// URL validates a link or image source value. It returns the cleaned URL,
// or the empty string when the value is not a well-formed absolute http,
// https or data URL. A rejected URL is a display-quality issue, not an
// error.
func URL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return ""
		}
		return u.String()
	case "data":
		// data URLs are accepted only for image payloads.
		if strings.HasPrefix(u.Opaque, "image/") {
			return raw
		}
		return ""
	default:
		return ""
	}
}

// Resolve rewrites a possibly-relative link against the fixed base URL and
// returns the absolute form. Absolute http/https links pass through
// unchanged; anything unresolvable returns the empty string.
func Resolve(base, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return URL(raw)
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return ""
	}
	return b.ResolveReference(ref).String()
}
