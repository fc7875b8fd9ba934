package util

import (
	"net/url"
	"strings"
)

// ResolveURL turns an anchor href into an absolute URL. Absolute hrefs are
// kept as-is, root-relative ones are appended to base with its trailing
// slash trimmed, anything else is resolved against base.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if HasScheme(href) {
		return href
	}
	if strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//") {
		return strings.TrimRight(base, "/") + href
	}

	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

// HasScheme reports whether raw starts with "<scheme>:" per RFC 3986.
func HasScheme(raw string) bool {
	for i, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		case r == ':':
			return i > 0
		default:
			return false
		}
	}
	return false
}

// BaseOf returns scheme://host of raw, or "" if raw is not absolute.
func BaseOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}
