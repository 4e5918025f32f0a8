package mdast

import "fmt"

// SourceRange represents a byte range in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// String formats the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SourcePosition represents a range in terms of line/column positions.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (sp SourcePosition) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the end position.
func (sp SourcePosition) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsValid returns true if both start and end positions are valid.
func (sp SourcePosition) IsValid() bool {
	return sp.StartLine > 0 && sp.StartColumn > 0 &&
		sp.EndLine > 0 && sp.EndColumn > 0
}

// IsSingleLine returns true if start and end are on the same line.
func (sp SourcePosition) IsSingleLine() bool {
	return sp.StartLine == sp.EndLine
}

// String formats the span as "line:column-line:column".
func (sp SourcePosition) String() string {
	return sp.Start().String() + "-" + sp.End().String()
}

// Before reports whether sp starts strictly before other (line, then column).
func (sp SourcePosition) Before(other SourcePosition) bool {
	if sp.StartLine != other.StartLine {
		return sp.StartLine < other.StartLine
	}
	return sp.StartColumn < other.StartColumn
}

// PositionFromRange converts a byte range in file to a SourcePosition.
func PositionFromRange(file *FileSnapshot, r SourceRange) SourcePosition {
	startLine, startCol := file.LineAt(r.StartOffset)
	endLine, endCol := file.LineAt(r.EndOffset)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// SourcePosition returns the node's span, or the zero value for generated nodes.
func (n *Node) SourcePosition() SourcePosition {
	if n == nil || n.Position == nil {
		return SourcePosition{}
	}
	return *n.Position
}

// Text returns the source text for this node.
// Returns nil for generated nodes or nodes without an associated file.
func (n *Node) Text() []byte {
	if n.File == nil || n.Position == nil {
		return nil
	}

	start, ok := n.File.Offset(n.Position.StartLine, n.Position.StartColumn)
	if !ok {
		return nil
	}
	end, ok := n.File.Offset(n.Position.EndLine, n.Position.EndColumn)
	if !ok || end < start || end > len(n.File.Content) {
		return nil
	}

	return n.File.Content[start:end]
}
