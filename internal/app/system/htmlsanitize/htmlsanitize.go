// Package htmlsanitize strips dangerous markup from user-supplied text before
// it is persisted. Task titles and descriptions come straight from clients and
// are rendered verbatim by the front end, so they are cleaned on the way in.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps common user-generated-content markup (paragraphs, emphasis,
// safe links) and removes scripts, event handlers, and javascript: URLs.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// Strip removes all markup, leaving plain text. Used for single-line fields
// like titles and names.
func Strip(s string) string {
	return strict.Sanitize(s)
}
