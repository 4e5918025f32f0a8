package goldmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/headcheck/pkg/lint"
	"github.com/yaklabco/headcheck/pkg/mdast"
)

var _ lint.Parser = (*Parser)(nil)

func parse(t *testing.T, flavor, content string) *mdast.FileSnapshot {
	t.Helper()

	snapshot, err := New(flavor).Parse(context.Background(), "test.md", []byte(content))
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	require.NotNil(t, snapshot.Root)
	return snapshot
}

func headings(root *mdast.Node) []*mdast.Node {
	return mdast.FindByKind(root, mdast.NodeHeading)
}

func TestParser_New(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to commonmark", "invalid", FlavorCommonMark},
		{"empty defaults to commonmark", "", FlavorCommonMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantFlavor, New(tt.flavor).Flavor())
		})
	}
}

func TestParser_Parse_Basic(t *testing.T) {
	t.Parallel()

	content := []byte("# Hello\n\nWorld")
	snapshot, err := New(FlavorCommonMark).Parse(context.Background(), "test.md", content)
	require.NoError(t, err)

	assert.Equal(t, "test.md", snapshot.Path)
	assert.Equal(t, content, snapshot.Content)
	content[0] = 'X'
	assert.Equal(t, byte('#'), snapshot.Content[0], "content must be copied")

	root := snapshot.Root
	assert.Equal(t, mdast.NodeDocument, root.Kind)
	require.Equal(t, 2, root.ChildCount())
	assert.Equal(t, mdast.NodeHeading, root.FirstChild.Kind)
	assert.Equal(t, mdast.NodeParagraph, root.LastChild.Kind)

	for node := range mdast.All(root) {
		assert.Same(t, snapshot, node.File)
	}
}

func TestParser_Parse_Empty(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, FlavorCommonMark, "")
	assert.False(t, snapshot.Root.HasChildren())
	assert.Nil(t, snapshot.FrontMatter)
}

func TestParser_Parse_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snapshot, err := New(FlavorCommonMark).Parse(ctx, "test.md", []byte("# Hi"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, snapshot)
}

func TestParser_HeadingPositions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantLevel int
		wantStyle mdast.HeadingStyle
		wantPos   mdast.SourcePosition
	}{
		{
			name:      "atx",
			content:   "# Hello\n",
			wantLevel: 1,
			wantStyle: mdast.HeadingATX,
			wantPos:   mdast.SourcePosition{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 8},
		},
		{
			name:      "indented atx",
			content:   "  ## Sub\n",
			wantLevel: 2,
			wantStyle: mdast.HeadingATX,
			wantPos:   mdast.SourcePosition{StartLine: 1, StartColumn: 3, EndLine: 1, EndColumn: 9},
		},
		{
			name:      "atx with closing sequence",
			content:   "text\n\n# Title #\n",
			wantLevel: 1,
			wantStyle: mdast.HeadingATX,
			wantPos:   mdast.SourcePosition{StartLine: 3, StartColumn: 1, EndLine: 3, EndColumn: 10},
		},
		{
			name:      "setext level 1",
			content:   "Title\n=====\n",
			wantLevel: 1,
			wantStyle: mdast.HeadingSetext,
			wantPos:   mdast.SourcePosition{StartLine: 1, StartColumn: 1, EndLine: 2, EndColumn: 6},
		},
		{
			name:      "setext level 2",
			content:   "Sub\n---\n",
			wantLevel: 2,
			wantStyle: mdast.HeadingSetext,
			wantPos:   mdast.SourcePosition{StartLine: 1, StartColumn: 1, EndLine: 2, EndColumn: 4},
		},
		{
			name:      "inside block quote",
			content:   "> # Quoted\n",
			wantLevel: 1,
			wantStyle: mdast.HeadingATX,
			wantPos:   mdast.SourcePosition{StartLine: 1, StartColumn: 3, EndLine: 1, EndColumn: 11},
		},
		{
			name:      "empty atx",
			content:   "#\n",
			wantLevel: 1,
			wantStyle: mdast.HeadingATX,
			wantPos:   mdast.SourcePosition{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 2},
		},
		{
			name:      "crlf line endings",
			content:   "intro\r\n\r\n## Next\r\n",
			wantLevel: 2,
			wantStyle: mdast.HeadingATX,
			wantPos:   mdast.SourcePosition{StartLine: 3, StartColumn: 1, EndLine: 3, EndColumn: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			found := headings(parse(t, FlavorCommonMark, tt.content).Root)
			require.Len(t, found, 1)

			heading := found[0]
			assert.Equal(t, tt.wantLevel, heading.HeadingLevel())
			assert.Equal(t, tt.wantStyle, heading.Block.HeadingStyle)
			require.NotNil(t, heading.Position)
			assert.Equal(t, tt.wantPos, *heading.Position)
		})
	}
}

func TestParser_EmptyHeadingsInSequence(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, FlavorCommonMark, "# A\n\n#\n\ntext\n\n#\n")
	found := headings(snapshot.Root)
	require.Len(t, found, 3)

	lines := make([]int, 0, len(found))
	for _, heading := range found {
		require.NotNil(t, heading.Position)
		lines = append(lines, heading.Position.StartLine)
	}
	assert.Equal(t, []int{1, 3, 7}, lines)
}

func TestParser_NestedHeadings(t *testing.T) {
	t.Parallel()

	content := "# Top\n\n> # Quoted\n\n- # Listed\n"
	found := headings(parse(t, FlavorCommonMark, content).Root)
	require.Len(t, found, 3)

	assert.Equal(t, mdast.NodeDocument, found[0].Parent.Kind)
	assert.Equal(t, mdast.NodeBlockquote, found[1].Parent.Kind)
	assert.Equal(t, mdast.NodeListItem, found[2].Parent.Kind)

	assert.Equal(t, mdast.Position{Line: 3, Column: 3}, found[1].SourcePosition().Start())
	assert.Equal(t, mdast.Position{Line: 5, Column: 3}, found[2].SourcePosition().Start())
}

func TestParser_FrontMatter(t *testing.T) {
	t.Parallel()

	content := "---\ntitle: Guide\n---\n# Body\n"
	snapshot := parse(t, FlavorCommonMark, content)

	assert.Equal(t, "Guide", snapshot.FrontMatter["title"])
	assert.Equal(t, content, string(snapshot.Content), "snapshot keeps the original bytes")

	require.Equal(t, 1, snapshot.Root.ChildCount(), "front matter must not produce nodes")
	heading := snapshot.Root.FirstChild
	assert.Equal(t, mdast.NodeHeading, heading.Kind)
	assert.Equal(t, 4, heading.SourcePosition().StartLine)
}

func TestParser_InvalidFrontMatterIgnored(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, FlavorCommonMark, "---\n- a\n- b\n---\n# Body\n")
	assert.Nil(t, snapshot.FrontMatter)
	assert.Len(t, headings(snapshot.Root), 1)
}

func TestParser_GFMTable(t *testing.T) {
	t.Parallel()

	content := "| a | b |\n|---|---|\n| 1 | 2 |\n"

	gfm := parse(t, FlavorGFM, content)
	assert.NotNil(t, mdast.FindFirst(gfm.Root, func(n *mdast.Node) bool { return n.Kind == mdast.NodeTable }))

	plain := parse(t, FlavorCommonMark, content)
	assert.Nil(t, mdast.FindFirst(plain.Root, func(n *mdast.Node) bool { return n.Kind == mdast.NodeTable }))
}

func TestParser_BlockPositions(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, FlavorCommonMark, "# T\n\nfirst line\nsecond line\n")
	para := snapshot.Root.LastChild
	require.Equal(t, mdast.NodeParagraph, para.Kind)
	require.NotNil(t, para.Position)
	assert.Equal(t, 3, para.Position.StartLine)
	assert.Equal(t, 4, para.Position.EndLine)
	assert.Equal(t, "first line\nsecond line", string(para.Text()))
}

func TestParser_Deterministic(t *testing.T) {
	t.Parallel()

	content := "# A\n\n## B\n\n> # C\n"
	first := headings(parse(t, FlavorGFM, content).Root)
	second := headings(parse(t, FlavorGFM, content).Root)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, *first[i].Position, *second[i].Position)
	}
}

func TestParser_SourceNodesArePositioned(t *testing.T) {
	t.Parallel()

	content := "# A\n" +
		"\n***\n" +
		"\n- a\n-\n- b\n" +
		"\n>\n" +
		"\n![](x.png) and [](/u) and <https://example.com>\n" +
		"\n```go\n```\n" +
		"\n| a | b |\n|---|---|\n|   | 2 |\n" +
		"\n- [ ] task\n" +
		"\n___\n"

	for _, flavor := range []string{FlavorCommonMark, FlavorGFM} {
		snapshot := parse(t, flavor, content)
		for node := range mdast.All(snapshot.Root) {
			assert.False(t, node.IsGenerated(), "%s: %s node has no position", flavor, node.Kind)
		}
	}
}

func TestParser_SegmentlessNodePositions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		flavor   string
		content  string
		kind     mdast.NodeKind
		index    int
		wantLine int
		wantCol  int
		wantText string
	}{
		{"thematic break", FlavorCommonMark, "# A\n\n***\n", mdast.NodeThematicBreak, 0, 3, 1, "***"},
		{"spaced thematic break", FlavorCommonMark, "Text\n\n  - - -\n", mdast.NodeThematicBreak, 0, 3, 3, "- - -"},
		{"second thematic break", FlavorCommonMark, "***\n\nText\n\n___\n", mdast.NodeThematicBreak, 1, 5, 1, "___"},
		{"empty list item", FlavorCommonMark, "- a\n-\n- b\n", mdast.NodeListItem, 1, 2, 1, "-"},
		{"empty block quote", FlavorCommonMark, "Intro\n\n>\n", mdast.NodeBlockquote, 0, 3, 1, ">"},
		{"empty fenced code", FlavorCommonMark, "```\n```\n", mdast.NodeCodeBlock, 0, 1, 1, "```\n```"},
		{"empty alt image", FlavorCommonMark, "See ![](x.png) here\n", mdast.NodeImage, 0, 1, 5, "![](x.png)"},
		{"empty label link", FlavorCommonMark, "See [](/u) here\n", mdast.NodeLink, 0, 1, 5, "[](/u)"},
		{"autolink", FlavorCommonMark, "Go to <https://example.com>.\n", mdast.NodeLink, 0, 1, 7, "<https://example.com>"},
		{"task checkbox", FlavorGFM, "- [x] done\n", mdast.NodeRaw, 0, 1, 3, "[x]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nodes := mdast.FindByKind(parse(t, tt.flavor, tt.content).Root, tt.kind)
			require.Greater(t, len(nodes), tt.index)

			node := nodes[tt.index]
			require.NotNil(t, node.Position)
			assert.Equal(t, tt.wantLine, node.Position.StartLine)
			assert.Equal(t, tt.wantCol, node.Position.StartColumn)
			assert.Equal(t, tt.wantText, string(node.Text()))
		})
	}
}
