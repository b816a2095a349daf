package utils

import "github.com/microcosm-cc/bluemonday"

// Posts and feedback are plain text; strip every tag rather than allowing a
// UGC subset.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize cleans user-submitted text to prevent XSS when rendered.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
