package mdast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeTable

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeHTMLInline

	// Fallback for unrecognized content.
	NodeRaw
)

//nolint:gochecknoglobals // Read-only lookup table.
var nodeKindNames = [...]string{
	NodeDocument:      "document",
	NodeParagraph:     "paragraph",
	NodeHeading:       "heading",
	NodeList:          "list",
	NodeListItem:      "listItem",
	NodeBlockquote:    "blockquote",
	NodeCodeBlock:     "code",
	NodeThematicBreak: "thematicBreak",
	NodeHTMLBlock:     "html",
	NodeTable:         "table",
	NodeText:          "text",
	NodeEmphasis:      "emphasis",
	NodeStrong:        "strong",
	NodeCodeSpan:      "inlineCode",
	NodeLink:          "link",
	NodeImage:         "image",
	NodeHTMLInline:    "htmlInline",
	NodeRaw:           "raw",
}

// String returns the kind name used in mdast ("heading", "paragraph", ...).
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return "unknown"
}

// Node represents a single node in the Markdown AST.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Position is the node's span in the source.
	// Nil for generated nodes that have no corresponding source text.
	Position *SourcePosition

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs
}

// IsGenerated reports whether the node was synthesized rather than parsed
// from source text. Generated nodes carry no position.
func (n *Node) IsGenerated() bool {
	return n.Position == nil
}

// HeadingLevel returns the depth of a heading node, or 0 for any other node.
func (n *Node) HeadingLevel() int {
	if n == nil || n.Kind != NodeHeading || n.Block == nil {
		return 0
	}
	return n.Block.HeadingLevel
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}
