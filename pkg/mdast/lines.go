package mdast

import "sort"

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}

		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// The last line may not have a trailing newline.
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// lineIndex returns the 0-based index of the line containing offset,
// or -1 when the file has no lines or offset is negative.
func (f *FileSnapshot) lineIndex(offset int) int {
	if offset < 0 || len(f.Lines) == 0 {
		return -1
	}
	if offset >= len(f.Content) {
		return len(f.Lines) - 1
	}

	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if idx >= len(f.Lines) {
		idx = len(f.Lines) - 1
	}
	return idx
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	idx := f.lineIndex(offset)
	if idx < 0 {
		return 0, 0
	}

	info := f.Lines[idx]
	if offset < info.StartOffset {
		return 0, 0
	}

	return idx + 1, offset - info.StartOffset + 1
}

// LineInfoAt returns the metadata of the line containing offset.
func (f *FileSnapshot) LineInfoAt(offset int) (LineInfo, bool) {
	idx := f.lineIndex(offset)
	if idx < 0 {
		return LineInfo{}, false
	}
	return f.Lines[idx], true
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (f *FileSnapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 1 {
		return 0, false
	}

	info := f.Lines[line-1]
	offset := info.StartOffset + col - 1

	// Column may point just past the line content (exclusive end positions).
	if offset > info.EndOffset {
		return 0, false
	}

	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}

	info := f.Lines[line-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}
