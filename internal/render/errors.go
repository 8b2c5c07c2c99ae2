package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrWrite indicates a failed write to the output sink. The render aborts
// immediately; the caller decides whether partial output is discarded.
var ErrWrite = errors.New("write to output sink failed")

func writeString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if err := writeString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// readLines drains a line-oriented source into memory, stripping line
// endings. Only used when a diff override filter needs the whole input.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return lines, fmt.Errorf("reading diff source: %w", err)
		}
	}
}

// countingWriter tracks how many bytes reached the sink.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
