// Package sanitizer cleans user-supplied text before it is stored.
package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var strict = sync.OnceValue(bluemonday.StrictPolicy)

// StripHTML removes all markup and returns trimmed plain text. Entities left
// by the policy are decoded so "Tom &amp; Jerry" round-trips as typed.
func StripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict().Sanitize(s)))
}

// Name strips markup and collapses runs of whitespace, for display names
// and other single-line values.
func Name(s string) string {
	return strings.Join(strings.Fields(StripHTML(s)), " ")
}
