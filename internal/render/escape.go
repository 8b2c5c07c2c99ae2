package render

import (
	"html"
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`\W+`)

// AnchorID derives a deterministic element id from a file path by stripping
// every character that is not a letter, digit, or underscore. Collisions are
// possible and tolerated; the diff streamer keeps the first header it sees
// for a given path.
func AnchorID(path string) string {
	return nonWord.ReplaceAllString(path, "")
}

func escape(s string) string {
	return html.EscapeString(s)
}

// verbatimOrEscaped returns header/footer text unchanged when it already
// carries markup, escaped otherwise.
func verbatimOrEscaped(s string) string {
	if strings.HasPrefix(s, "<") {
		return s
	}
	return escape(s)
}
