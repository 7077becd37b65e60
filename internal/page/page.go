// Package page normalizes user input (a title or a full Wikipedia URL)
// into a canonical page identity used as the cache key.
package page

import (
	"fmt"
	"strings"

	"wikiplot/internal/core"
)

// Identity is a normalized page identifier. Two input forms referring to
// the same page (title with spaces, title with underscores, article URL)
// normalize to the same Identity.
type Identity struct {
	title string
}

// Parse derives an Identity from raw user input.
func Parse(input string) (Identity, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Identity{}, fmt.Errorf("empty page title")
	}

	if strings.Contains(s, "wikipedia.org") {
		if _, after, ok := strings.Cut(s, "/wiki/"); ok {
			s = after
		}
		s, _, _ = strings.Cut(s, "#")
		s, _, _ = strings.Cut(s, "?")
		if s == "" {
			return Identity{}, fmt.Errorf("URL %q carries no article title", input)
		}
	}

	// Collapse any run of spaces or underscores to a single underscore.
	fields := strings.Fields(strings.ReplaceAll(s, "_", " "))
	if len(fields) == 0 {
		return Identity{}, fmt.Errorf("empty page title")
	}

	return Identity{title: strings.Join(fields, "_")}, nil
}

// Title returns the canonical underscored title, as the API expects it.
func (id Identity) Title() string {
	return id.title
}

// Display returns the human-readable title with spaces.
func (id Identity) Display() string {
	return strings.ReplaceAll(id.title, "_", " ")
}

// URL returns the canonical article URL.
func (id Identity) URL() string {
	return core.WikiBaseURL + id.title
}

// Key returns the storage key for this page: the article URL with every
// character unsafe in a filename replaced by a dash. Matches the naming
// already used by existing on-disk caches.
func (id Identity) Key() string {
	key := strings.Replace(id.URL(), "https://", "https-", 1)
	for _, r := range []string{"/", ":", ".", "?", `"`, "<", ">", "|", "\\"} {
		key = strings.ReplaceAll(key, r, "-")
	}
	return key
}

// IsZero reports whether the identity is unset.
func (id Identity) IsZero() bool {
	return id.title == ""
}
