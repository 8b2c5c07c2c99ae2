package commit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LineSource wraps a fixed set of diff lines as a readable, closable diff
// source. Useful for records assembled in memory and for tests.
func LineSource(lines ...string) io.ReadCloser {
	if len(lines) == 0 {
		return io.NopCloser(strings.NewReader(""))
	}
	return io.NopCloser(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

// LoadRecord reads a Record from a YAML commit file. The diff, if any, is
// attached separately by the caller (it is a stream, not document data).
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read commit file: %w", err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse commit file: %w", err)
	}
	return &rec, nil
}
