// Package redact scrubs credential-bearing substrings from text that is
// about to be logged.
package redact

import "regexp"

var tokenPattern = regexp.MustCompile(`access_token=[^&\s]+`)

// Tokens replaces access-token query parameters embedded in s. HTTP client
// errors can carry full request URLs; every log line built from a platform
// error must pass through here first.
func Tokens(s string) string {
	return tokenPattern.ReplaceAllString(s, "access_token=REDACTED")
}
