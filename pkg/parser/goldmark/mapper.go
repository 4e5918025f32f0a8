package goldmark

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/headcheck/pkg/mdast"
)

// span is a half-open byte range in the source. Negative bounds mean the
// node has no known location.
type span struct {
	start int
	stop  int
}

//nolint:gochecknoglobals // immutable sentinel
var noSpan = span{start: -1, stop: -1}

func (s span) valid() bool {
	return s.start >= 0 && s.stop >= s.start
}

func (s span) union(other span) span {
	switch {
	case !s.valid():
		return other
	case !other.valid():
		return s
	default:
		return span{start: min(s.start, other.start), stop: max(s.stop, other.stop)}
	}
}

// mapper converts a goldmark AST into an mdast.Node tree with positions.
type mapper struct {
	file *mdast.FileSnapshot

	// source is the text goldmark parsed: the file content with front
	// matter masked. Offsets match file.Content.
	source []byte

	// cursor is the furthest byte offset covered by a mapped node so far.
	cursor int

	// window is the source range of the block whose inline content is being
	// mapped; inline is the furthest offset reached inside it.
	window span
	inline int
}

// newMapper creates a new mapper for the given snapshot.
func newMapper(file *mdast.FileSnapshot, source []byte) *mapper {
	return &mapper{file: file, source: source}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	if len(m.source) > 0 {
		m.setPosition(doc, span{start: 0, stop: len(m.source)})
	}
	return doc
}

// mapChildren maps all children of a goldmark node and returns their
// combined span.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) span {
	covered := noSpan
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		node, childSpan := m.mapNode(child)
		mdast.AppendChild(parent, node)
		covered = covered.union(childSpan)
	}
	return covered
}

// mapNode converts a single goldmark node to an mdast.Node.
func (m *mapper) mapNode(gmNode ast.Node) (*mdast.Node, span) {
	var node *mdast.Node
	var nodeSpan span

	switch gmn := gmNode.(type) {
	case *ast.Heading:
		node, nodeSpan = m.mapHeading(gmn)

	case *ast.Paragraph, *ast.TextBlock:
		node = mdast.NewNode(mdast.NodeParagraph)
		nodeSpan = m.leafBlock(gmNode, node)

	case *ast.FencedCodeBlock:
		node = mdast.NewNode(mdast.NodeCodeBlock)
		nodeSpan = m.linesSpan(gmNode)
		if !nodeSpan.valid() {
			nodeSpan = m.emptyFenceSpan()
		}

	case *ast.CodeBlock:
		node = mdast.NewNode(mdast.NodeCodeBlock)
		nodeSpan = m.linesSpan(gmNode)

	case *ast.HTMLBlock:
		node = mdast.NewNode(mdast.NodeHTMLBlock)
		nodeSpan = m.linesSpan(gmNode)

	case *ast.List:
		node = m.container(mdast.NodeList, gmNode, &nodeSpan)

	case *ast.ListItem:
		node = m.container(mdast.NodeListItem, gmNode, &nodeSpan)
		if !nodeSpan.valid() {
			nodeSpan = m.scanLines(emptyListItemPattern)
		}

	case *ast.Blockquote:
		node = m.container(mdast.NodeBlockquote, gmNode, &nodeSpan)
		if !nodeSpan.valid() {
			nodeSpan = m.scanLines(emptyBlockquotePattern)
		}

	case *east.Table:
		node = m.container(mdast.NodeTable, gmNode, &nodeSpan)

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)
		nodeSpan = m.scanLines(thematicBreakPattern)

	case *ast.Text:
		node = mdast.NewNode(mdast.NodeText)
		nodeSpan = span{start: gmn.Segment.Start, stop: gmn.Segment.Stop}

	case *ast.Emphasis:
		kind := mdast.NodeEmphasis
		if gmn.Level == 2 { //nolint:mnd // strong emphasis
			kind = mdast.NodeStrong
		}
		node = m.container(kind, gmNode, &nodeSpan)

	case *ast.CodeSpan:
		node = m.container(mdast.NodeCodeSpan, gmNode, &nodeSpan)

	case *ast.Link:
		node = m.container(mdast.NodeLink, gmNode, &nodeSpan)
		if !nodeSpan.valid() {
			nodeSpan = m.emptyLabelSpan("[")
		}

	case *ast.AutoLink:
		node = mdast.NewNode(mdast.NodeLink)
		nodeSpan = m.autoLinkSpan(gmn)

	case *ast.Image:
		node = m.container(mdast.NodeImage, gmNode, &nodeSpan)
		if !nodeSpan.valid() {
			nodeSpan = m.emptyLabelSpan("![")
		}

	case *east.TaskCheckBox:
		node = mdast.NewNode(mdast.NodeRaw)
		nodeSpan = m.checkBoxSpan()

	case *ast.RawHTML:
		node = mdast.NewNode(mdast.NodeHTMLInline)
		nodeSpan = noSpan
		for i := range gmn.Segments.Len() {
			seg := gmn.Segments.At(i)
			nodeSpan = nodeSpan.union(span{start: seg.Start, stop: seg.Stop})
		}

	default:
		// Table rows and cells land here. Cells carry a line segment; the
		// padding cells goldmark adds to short rows have none and stay
		// generated.
		node = mdast.NewNode(mdast.NodeRaw)
		nodeSpan = m.leafBlock(gmNode, node)
	}

	m.setPosition(node, nodeSpan)
	return node, nodeSpan
}

// container maps a node whose extent is the extent of its children.
func (m *mapper) container(kind mdast.NodeKind, gmNode ast.Node, out *span) *mdast.Node {
	node := mdast.NewNode(kind)
	*out = m.mapChildren(gmNode, node)
	return node
}

// leafBlock maps a node that may own inline content. Block nodes with line
// segments open an inline window so children without segments can be found.
func (m *mapper) leafBlock(gmNode ast.Node, node *mdast.Node) span {
	lines := m.linesSpan(gmNode)
	if lines.valid() {
		m.enterInline(lines)
	}
	return lines.union(m.mapChildren(gmNode, node))
}

// mapHeading converts a goldmark Heading to an mdast node.
// The heading is located before its children so an empty heading is
// searched for from the end of the preceding block.
func (m *mapper) mapHeading(h *ast.Heading) (*mdast.Node, span) {
	headingSpan, style := m.locateHeading(h)

	node := mdast.NewNode(mdast.NodeHeading)
	node.Block = mdast.NewBlockAttrs().
		WithHeadingLevel(h.Level).
		WithHeadingStyle(style)

	if headingSpan.valid() {
		m.cursor = max(m.cursor, headingSpan.stop)
	}
	if lines := m.linesSpan(h); lines.valid() {
		m.enterInline(lines)
	}
	m.mapChildren(h, node)

	return node, headingSpan
}

// linesSpan returns the range covered by a block node's line segments,
// without the trailing line break.
func (m *mapper) linesSpan(gmNode ast.Node) span {
	if gmNode.Type() == ast.TypeInline {
		return noSpan
	}

	lines := gmNode.Lines()
	if lines.Len() == 0 {
		return noSpan
	}

	start := lines.At(0).Start
	stop := lines.At(lines.Len() - 1).Stop
	for stop > start && (m.source[stop-1] == '\n' || m.source[stop-1] == '\r') {
		stop--
	}

	return span{start: start, stop: stop}
}

// setPosition assigns the node's source position and advances the cursor.
// Nodes without a valid span keep a nil Position.
func (m *mapper) setPosition(node *mdast.Node, s span) {
	if !s.valid() || s.stop > len(m.source) {
		return
	}

	pos := mdast.PositionFromRange(m.file, mdast.SourceRange{StartOffset: s.start, EndOffset: s.stop})
	if !pos.IsValid() {
		return
	}

	node.Position = &pos
	m.cursor = max(m.cursor, s.stop)
	m.inline = max(m.inline, s.stop)
}
