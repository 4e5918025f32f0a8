package mdast

// NewNode creates a new node of the specified kind.
// The node has no parent, children, or position, so it reports as generated
// until a position is assigned.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// NewHeading creates a heading node of the given depth at pos.
func NewHeading(depth int, pos SourcePosition) *Node {
	node := NewNode(NodeHeading)
	node.Block = NewBlockAttrs().WithHeadingLevel(depth)
	node.Position = &pos
	return node
}

// NewGeneratedHeading creates a heading node with no source position.
func NewGeneratedHeading(depth int) *Node {
	node := NewNode(NodeHeading)
	node.Block = NewBlockAttrs().WithHeadingLevel(depth)
	return node
}

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	// Remove from previous parent if any.
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// PrependChild prepends a child node to a parent.
func PrependChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = nil
	child.Next = parent.FirstChild

	if parent.FirstChild != nil {
		parent.FirstChild.Prev = child
	} else {
		parent.LastChild = child
	}

	parent.FirstChild = child
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// SetFile sets the file reference for a node and all its descendants.
func SetFile(node *Node, file *FileSnapshot) {
	for child := range All(node) {
		child.File = file
	}
}
