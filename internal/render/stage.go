package render

// Stage names one phase of document rendering. Filter registrations and the
// renderer's dispatch are keyed by stage.
type Stage string

const (
	StageDocumentOpen Stage = "document-open"
	StageBodyOpen     Stage = "body-open"
	StageMetadata     Stage = "metadata"
	StageLogMessage   Stage = "log-message"
	StageFileLists    Stage = "file-lists"
	StageDiff         Stage = "diff"
	StageEnd          Stage = "end"
)

// Stages returns every stage key in rendering order.
func Stages() []Stage {
	return []Stage{
		StageDocumentOpen,
		StageBodyOpen,
		StageMetadata,
		StageLogMessage,
		StageFileLists,
		StageDiff,
		StageEnd,
	}
}

// contentStage reports whether the stage carries domain content. A filter
// registered for a content stage replaces the built-in rendering entirely;
// structural stages only allow post-filtering of their assembled lines.
func (s Stage) contentStage() bool {
	switch s {
	case StageMetadata, StageLogMessage, StageFileLists, StageDiff:
		return true
	}
	return false
}
