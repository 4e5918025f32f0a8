package mdast

// HeadingStyle identifies the syntax a heading was written in.
type HeadingStyle uint8

const (
	// HeadingATX is a hash-prefixed heading (# Title).
	HeadingATX HeadingStyle = iota

	// HeadingSetext is an underlined heading (Title\n=====).
	HeadingSetext
)

// String returns a human-readable name for the heading style.
func (s HeadingStyle) String() string {
	switch s {
	case HeadingATX:
		return "atx"
	case HeadingSetext:
		return "setext"
	default:
		return "unknown"
	}
}

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// HeadingStyle is the syntax used for NodeHeading.
	HeadingStyle HeadingStyle
}

// NewBlockAttrs creates a new BlockAttrs with default values.
func NewBlockAttrs() *BlockAttrs {
	return &BlockAttrs{}
}

// WithHeadingLevel sets the heading level and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithHeadingLevel(level int) *BlockAttrs {
	a.HeadingLevel = level
	return a
}

// WithHeadingStyle sets the heading style and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithHeadingStyle(style HeadingStyle) *BlockAttrs {
	a.HeadingStyle = style
	return a
}
