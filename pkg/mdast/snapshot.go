// Package mdast provides the Markdown syntax tree used by headcheck.
// It defines:
//   - FileSnapshot: the parsed file with its line index and front matter
//   - Node: the tree, where a nil Position marks a generated node
//   - Walk, All and OfKind: deterministic pre-order traversal
package mdast

// FileSnapshot is an immutable view of a Markdown file at a specific time.
// It holds the raw content, line metadata, front matter, and AST root.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// FrontMatter holds the decoded YAML front matter, if any.
	FrontMatter map[string]any

	// Root is the AST root node (Document).
	Root *Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a new FileSnapshot from content.
// It builds the line index but does not parse (that requires a Parser).
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}
