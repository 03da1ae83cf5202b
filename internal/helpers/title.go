package helpers

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const titleScanLines = 10

// ExtractJobTitle pulls a position title out of job-description text. It
// honours an explicit "Job Title:" prefix within the first few lines, falls
// back to the first short non-list line, and finally to "Unknown Position".
func ExtractJobTitle(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > titleScanLines {
		lines = lines[:titleScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Job Title:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Job Title:"))
		}
		if line != "" && len(line) < 50 && !strings.HasPrefix(line, "-") {
			return line
		}
	}
	return "Unknown Position"
}

// TitleCaseName turns a source filename into a human display name: extension
// stripped, separators replaced with spaces, each word capitalised.
func TitleCaseName(filename string) string {
	name := filename
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	words := strings.Fields(name)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
