package helpers

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	unsafeTitleChars    = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// SanitizeFilename strips any path components from a user-supplied name and
// replaces characters outside [a-zA-Z0-9._-] with underscores, blocking path
// traversal before the name is joined onto a folder.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// SafeTitleToken converts a free-form title into a token usable inside a
// report filename: characters outside [a-zA-Z0-9_-] become underscores.
func SafeTitleToken(title string) string {
	return unsafeTitleChars.ReplaceAllString(title, "_")
}

// StrictHTMLPolicy returns a singleton bluemonday policy that strips every
// HTML element and attribute, leaving plain text.
func StrictHTMLPolicy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// StripHTML reduces an HTML fragment to trimmed plain text. Remotely fetched
// job descriptions pass through here before they reach the ranking tool.
func StripHTML(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(StrictHTMLPolicy().Sanitize(s))
}
