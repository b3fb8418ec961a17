// Package redact scrubs credentials and network locations from error text
// before it is logged or surfaced in an API error response. Store drivers
// routinely embed connection strings and host addresses in their errors.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	HostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules run in order; the URI rule must precede the host rule so that
// user:password is consumed before the authority is examined.
var rules = []rule{
	{
		// scheme://user:password@ in postgres, mongodb and mysql URIs
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mongodb(?:\+srv)?|mysql)://[^\s/@]+@`),
		replacement: "${1}://" + CredentialPlaceholder + "@",
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(password|passwd|pwd)\s*[=:]\s*['"]?[^\s'"&;]+`),
		replacement: "${1}=" + CredentialPlaceholder,
	},
	{
		// host:port and ipv4:port
		pattern:     regexp.MustCompile(`\b(?:\d{1,3}(?:\.\d{1,3}){3}|[a-zA-Z][a-zA-Z0-9-]*(?:\.[a-zA-Z0-9-]+)*):\d{2,5}\b`),
		replacement: HostPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	for _, r := range rules {
		input = r.pattern.ReplaceAllString(input, r.replacement)
	}
	return input
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
