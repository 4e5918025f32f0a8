package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
)

// checkBoxWidth is the length of a task list marker such as "[x]".
const checkBoxWidth = 3

// enterInline starts mapping the inline content of the block covering s.
func (m *mapper) enterInline(s span) {
	m.window = s
	m.inline = s.start
}

// findInline returns the offset of needle at or after the inline cursor,
// within the current window, or -1.
func (m *mapper) findInline(needle []byte) int {
	if !m.window.valid() || len(needle) == 0 {
		return -1
	}

	start := max(m.inline, m.window.start)
	if start >= m.window.stop {
		return -1
	}

	idx := bytes.Index(m.source[start:m.window.stop], needle)
	if idx < 0 {
		return -1
	}
	return start + idx
}

// emptyLabelSpan locates a link or image whose label is empty, such as
// "[](/url)" or "![][ref]", including its destination or reference.
func (m *mapper) emptyLabelSpan(opener string) span {
	start := m.findInline([]byte(opener + "]"))
	if start < 0 {
		return noSpan
	}

	stop := start + len(opener) + 1
	if stop < m.window.stop {
		switch m.source[stop] {
		case '(':
			stop = m.closing(stop, '(', ')')
		case '[':
			stop = m.closing(stop, '[', ']')
		}
	}

	return span{start: start, stop: stop}
}

// closing returns the offset just past the delimiter that balances the one
// at open, or open when the window ends first.
func (m *mapper) closing(open int, left, right byte) int {
	depth := 0
	for i := open; i < m.window.stop; i++ {
		switch m.source[i] {
		case '\\':
			i++
		case left:
			depth++
		case right:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return open
}

// autoLinkSpan covers the link text and, for "<...>" links, the brackets.
func (m *mapper) autoLinkSpan(link *ast.AutoLink) span {
	label := link.Label(m.source)
	start := m.findInline(label)
	if start < 0 {
		return noSpan
	}

	found := span{start: start, stop: start + len(label)}
	if found.start > 0 && found.stop < len(m.source) &&
		m.source[found.start-1] == '<' && m.source[found.stop] == '>' {
		found.start--
		found.stop++
	}
	return found
}

// checkBoxSpan locates a task list marker at the start of a list item.
func (m *mapper) checkBoxSpan() span {
	start := m.findInline([]byte("["))
	if start < 0 || start+checkBoxWidth > m.window.stop {
		return noSpan
	}
	return span{start: start, stop: start + checkBoxWidth}
}
