package goldmark

import (
	"fmt"
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/headcheck/pkg/mdast"
)

const maxHeadingLevel = 6

// emptyATXPatterns[level] matches a line holding an ATX heading of that
// level with no content, after any block quote or list item prefix.
// Submatch 1 is the opening hash run.
//
//nolint:gochecknoglobals // compiled once, read-only
var emptyATXPatterns = func() [maxHeadingLevel + 1]*regexp.Regexp {
	var patterns [maxHeadingLevel + 1]*regexp.Regexp
	for level := 1; level <= maxHeadingLevel; level++ {
		patterns[level] = regexp.MustCompile(fmt.Sprintf(
			`^(?:[ \t>]|[-*+][ \t]|\d{1,9}[.)][ \t])*(#{%d})(?:[ \t]+#*)?[ \t]*$`, level))
	}
	return patterns
}()

// containerPrefix matches block quote markers, list markers and indentation
// ahead of a line's own content.
const containerPrefix = `^(?:[ \t>]|[-*+][ \t]+|\d{1,9}[.)][ \t]+)*?`

//nolint:gochecknoglobals // compiled once, read-only
var (
	thematicBreakPattern   = regexp.MustCompile(containerPrefix + `((?:\*[ \t]*){3,}|(?:-[ \t]*){3,}|(?:_[ \t]*){3,})$`)
	emptyListItemPattern   = regexp.MustCompile(containerPrefix + `([-*+]|\d{1,9}[.)])[ \t]*$`)
	emptyBlockquotePattern = regexp.MustCompile(containerPrefix + `(>)[ \t]*$`)
	fenceOpenPattern       = regexp.MustCompile(containerPrefix + "(`{3,}|~{3,})")
	fenceClosePattern      = regexp.MustCompile(containerPrefix + "(`{3,}|~{3,})[ \t]*$")
)

// locateHeading returns the source range of a heading and its style.
//
// ATX headings start at the opening hash run and end at the end of the
// line. Setext headings start at the first content character and end at the
// end of the underline. A heading that cannot be found gets noSpan.
func (m *mapper) locateHeading(h *ast.Heading) (span, mdast.HeadingStyle) {
	lines := h.Lines()
	if lines.Len() == 0 {
		return m.findEmptyATX(h.Level), mdast.HeadingATX
	}

	contentStart := lines.At(0).Start
	if start, ok := m.atxMarkerStart(contentStart, h.Level); ok {
		return span{start: start, stop: m.lineEnd(contentStart)}, mdast.HeadingATX
	}

	return m.setextSpan(lines), mdast.HeadingSetext
}

// atxMarkerStart walks back from the heading content over whitespace and a
// run of exactly level hashes.
func (m *mapper) atxMarkerStart(contentStart, level int) (int, bool) {
	pos := min(contentStart, len(m.source))
	for pos > 0 && (m.source[pos-1] == ' ' || m.source[pos-1] == '\t') {
		pos--
	}

	hashes := 0
	for pos > 0 && m.source[pos-1] == '#' {
		pos--
		hashes++
	}

	if hashes != level {
		return 0, false
	}
	if pos > 0 {
		switch m.source[pos-1] {
		case ' ', '\t', '>', '\n':
		default:
			return 0, false
		}
	}

	return pos, true
}

// setextSpan covers the heading text and the underline below it.
func (m *mapper) setextSpan(lines *text.Segments) span {
	start := lines.At(0).Start
	for start < len(m.source) && (m.source[start] == ' ' || m.source[start] == '\t') {
		start++
	}

	last := lines.At(lines.Len() - 1)
	lastOffset := max(last.Stop-1, last.Start)
	line, _ := m.file.LineAt(lastOffset)
	if line == 0 {
		return noSpan
	}

	if line < len(m.file.Lines) {
		return span{start: start, stop: m.file.Lines[line].NewlineStart}
	}
	return span{start: start, stop: m.lineEnd(lastOffset)}
}

// findEmptyATX scans forward from the cursor for an ATX heading line with
// no content. goldmark records no segment for such headings.
func (m *mapper) findEmptyATX(level int) span {
	if level < 1 || level > maxHeadingLevel {
		return noSpan
	}
	return m.scanLines(emptyATXPatterns[level])
}

// emptyFenceSpan locates a fenced code block with no content lines: the
// opening fence and, when it directly follows, the closing fence.
func (m *mapper) emptyFenceSpan() span {
	open := m.scanLines(fenceOpenPattern)
	if !open.valid() {
		return noSpan
	}

	next := m.firstLineAfter(open.stop)
	if closing := m.matchLine(next, fenceClosePattern); closing.valid() {
		open.stop = closing.stop
	}
	return open
}

// scanLines returns the first line at or after the cursor that matches
// pattern, spanning from submatch 1 to the end of the line.
func (m *mapper) scanLines(pattern *regexp.Regexp) span {
	first := m.firstLineAfter(m.cursor)
	if first < 0 {
		return noSpan
	}

	for idx := first; idx < len(m.file.Lines); idx++ {
		if found := m.matchLine(idx, pattern); found.valid() {
			return found
		}
	}

	return noSpan
}

// matchLine matches pattern against the 0-based line idx.
func (m *mapper) matchLine(idx int, pattern *regexp.Regexp) span {
	if idx < 0 || idx >= len(m.file.Lines) {
		return noSpan
	}

	info := m.file.Lines[idx]
	match := pattern.FindSubmatchIndex(m.source[info.StartOffset:info.NewlineStart])
	if match == nil {
		return noSpan
	}

	return span{start: info.StartOffset + match[2], stop: info.NewlineStart}
}

// firstLineAfter returns the 0-based index of the first line that starts at
// or after offset, or -1 when the file has no lines.
func (m *mapper) firstLineAfter(offset int) int {
	if len(m.file.Lines) == 0 {
		return -1
	}

	line, col := m.file.LineAt(offset)
	if line == 0 {
		return -1
	}
	if col > 1 {
		line++
	}
	return line - 1
}

// lineEnd returns the offset where the line containing offset ends,
// excluding the line break.
func (m *mapper) lineEnd(offset int) int {
	info, ok := m.file.LineInfoAt(offset)
	if !ok {
		return offset
	}
	return info.NewlineStart
}
