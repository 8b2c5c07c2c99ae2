package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// RenderLog converts a Markdown log message into HTML for the logmsg
// container. Goldmark's default renderer suppresses raw HTML in the message
// itself, so the result is safe to embed directly.
func RenderLog(message string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(message), &buf); err != nil {
		return "", fmt.Errorf("render log message: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
