package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/commitmail/internal/config"
)

// diffHeaderPattern matches the per-file header lines the diff source emits
// before each file's hunks.
var diffHeaderPattern = regexp.MustCompile(`^(Modified|Added|Deleted|Copied|Property changes on): (.+)$`)

// DiffStats summarizes one streamed diff.
type DiffStats struct {
	// Bytes counts bytes consumed from the source, including the line that
	// triggered truncation.
	Bytes int64
	// Files counts anchors emitted for first-seen per-file headers.
	Files int
	// Truncated is set when the configured max length stopped the stream.
	Truncated bool
}

// DiffFormatter renders individual diff lines. The default escapes every
// line; the color variant additionally wraps added/removed/range lines in
// classed spans. Implementations that also implement CSSProvider contribute
// their rules to the document's inline style block.
type DiffFormatter interface {
	// FileHeader renders a first-seen per-file header with its anchor id.
	FileHeader(w io.Writer, id, line string) error
	// Line renders one ordinary diff line, without its line ending.
	Line(w io.Writer, line string) error
}

// StreamDiff consumes the diff source line by line, truncating at the
// configured byte cap. Truncation is a normal termination path, not an
// error. The source is not closed here; the renderer owns its lifecycle.
func StreamDiff(src io.Reader, w io.Writer, cfg *config.Config, f DiffFormatter) (DiffStats, error) {
	if f == nil {
		f = PlainDiffFormatter{}
	}
	var stats DiffStats
	seen := make(map[string]bool)
	reader := bufio.NewReader(src)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			stats.Bytes += int64(len(line))
			if cfg.MaxDiffLength > 0 && stats.Bytes > cfg.MaxDiffLength {
				stats.Truncated = true
				notice := fmt.Sprintf("\n@@ Diff output truncated at %d characters. @@\n", cfg.MaxDiffLength)
				return stats, writeString(w, notice)
			}
			trimmed := strings.TrimRight(line, "\r\n")
			if m := diffHeaderPattern.FindStringSubmatch(trimmed); m != nil && !seen[m[2]] {
				seen[m[2]] = true
				stats.Files++
				if werr := f.FileHeader(w, AnchorID(m[2]), trimmed); werr != nil {
					return stats, werr
				}
			} else if werr := f.Line(w, trimmed); werr != nil {
				return stats, werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return stats, nil
			}
			return stats, fmt.Errorf("reading diff source: %w", err)
		}
	}
}

// PlainDiffFormatter escapes every line and wraps first-seen file headers in
// anchor elements.
type PlainDiffFormatter struct{}

func (PlainDiffFormatter) FileHeader(w io.Writer, id, line string) error {
	return writeString(w, `<a id="`+id+`">`+escape(line)+"</a>\n")
}

func (PlainDiffFormatter) Line(w io.Writer, line string) error {
	return writeString(w, escape(line)+"\n")
}
