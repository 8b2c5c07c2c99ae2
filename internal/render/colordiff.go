package render

import (
	"io"
	"strings"
)

// ColorDiffFormatter renders diff lines with classed spans so the inline
// stylesheet can colorize additions, removals, and hunk ranges. It supplies
// the extra CSS it needs via CSSProvider.
type ColorDiffFormatter struct{}

func (ColorDiffFormatter) FileHeader(w io.Writer, id, line string) error {
	return writeString(w, `<a id="`+id+`"><span class="file">`+escape(line)+"</span></a>\n")
}

func (ColorDiffFormatter) Line(w io.Writer, line string) error {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"),
		strings.HasPrefix(line, "==="):
		return writeString(w, escape(line)+"\n")
	case strings.HasPrefix(line, "@@"):
		return writeString(w, `<span class="lines">`+escape(line)+"</span>\n")
	case strings.HasPrefix(line, "+"):
		return writeString(w, `<span class="add">`+escape(line)+"</span>\n")
	case strings.HasPrefix(line, "-"):
		return writeString(w, `<span class="rem">`+escape(line)+"</span>\n")
	}
	return writeString(w, escape(line)+"\n")
}

func (ColorDiffFormatter) CSS() string { return colorDiffCSS }
