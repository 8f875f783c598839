package domain

// ChangeType identifies the kind of file change reported by a watcher.
type ChangeType string

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = "created"

	// ChangeUpdated indicates modified file content.
	ChangeUpdated ChangeType = "updated"

	// ChangeDeleted indicates a removed or renamed file.
	ChangeDeleted ChangeType = "deleted"
)

// Change is a file change observed while watching a directory.
// Document.Content is empty for deletions.
type Change struct {
	Type     ChangeType
	Document RawDocument
}
