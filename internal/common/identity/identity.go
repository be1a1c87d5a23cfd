// Package identity turns scanned or typed badge codes into player IDs.
package identity

import (
	"net/url"
	"strings"
)

// Normalize trims and lowercases raw. Badges printed with a link carry the
// player ID as the final path segment, so absolute URLs are reduced to it.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return s
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if seg := strings.TrimSpace(segments[i]); seg != "" {
			if unescaped, err := url.PathUnescape(seg); err == nil {
				return unescaped
			}
			return seg
		}
	}
	return s
}
