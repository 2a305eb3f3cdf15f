// Package htmlsanitize strips unsafe HTML from user-supplied rich text.
// Club descriptions pass through here before they are persisted.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// policy allows common formatting elements but strips scripts, event
// handlers, and javascript: URLs. Built once; bluemonday policies are safe
// for concurrent use.
var policy = bluemonday.UGCPolicy()

// Sanitize returns s with unsafe HTML removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
