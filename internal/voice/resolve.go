package voice

import (
	"regexp"
	"strings"
)

// DefaultSearchPrefix is used when no search provider is configured.
const DefaultSearchPrefix = "scsearch:"

var urlPattern = regexp.MustCompile(`^(https?|ftp|file)://[-a-zA-Z0-9+&@#/%?=~_|!:,.;]*[-a-zA-Z0-9+&@#/%=~_|]$`)

// IsURL reports whether s is a complete URL.
func IsURL(s string) bool {
	return urlPattern.MatchString(s)
}

// ResolveInput turns raw user input into a backend query. A leading URL is
// used verbatim; anything else becomes a search with the given prefix.
func ResolveInput(raw, searchPrefix string) string {
	raw = strings.TrimSpace(raw)
	if fields := strings.Fields(raw); len(fields) > 0 && IsURL(fields[0]) {
		return fields[0]
	}
	if searchPrefix == "" {
		searchPrefix = DefaultSearchPrefix
	}
	return searchPrefix + raw
}
