package commit

import "io"

// ChangeKind classifies how a commit affected a path.
type ChangeKind string

const (
	Modified        ChangeKind = "modified"
	Added           ChangeKind = "added"
	Deleted         ChangeKind = "deleted"
	PropertyChanged ChangeKind = "prop-changed"
)

// Kinds returns every change kind in the fixed order the file-list stage
// presents them.
func Kinds() []ChangeKind {
	return []ChangeKind{Modified, Added, Deleted, PropertyChanged}
}

// Label returns the heading text used for this kind's file list.
func (k ChangeKind) Label() string {
	switch k {
	case Modified:
		return "Modified Paths"
	case Added:
		return "Added Paths"
	case Deleted:
		return "Deleted Paths"
	case PropertyChanged:
		return "Property Changed"
	}
	return string(k)
}

// Record is one commit event, assembled by a source (gitsource, a commit
// file, or test fixtures) and consumed by exactly one render invocation.
// It is not modified after construction.
type Record struct {
	// Revision is an opaque, already-stringified revision identifier.
	Revision string `yaml:"revision"`
	// Author is the committer's name as reported by the version-control system.
	Author string `yaml:"author"`
	// Date is preformatted by the source; the renderer treats it as text.
	Date string `yaml:"date"`
	// Log holds the log message split into lines, without line endings.
	Log []string `yaml:"log"`
	// Changes maps a change kind to the affected paths, in source order.
	// Directories carry a trailing separator; that marker is how the
	// file-list stage tells them apart from files.
	Changes map[ChangeKind][]string `yaml:"changes"`

	// Diff is the unified diff for the commit, or nil when the source
	// supplies none. It is read once, line by line, during the diff stage
	// and closed by the renderer on every exit path.
	Diff io.ReadCloser `yaml:"-"`
}
