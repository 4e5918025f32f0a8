package frontmatter

import (
	"context"
	"strings"

	"github.com/yaklabco/headcheck/pkg/mdast"
)

// TitleTransformer inserts a generated depth-1 heading at the top of the
// document when the front matter carries a non-empty value under Key.
// The heading has no source position, so rules that skip generated nodes
// never report it.
type TitleTransformer struct {
	Key string
}

// Name identifies the transformer in logs.
func (t TitleTransformer) Name() string {
	return "front-matter-title"
}

// Transform implements lint.Transformer.
func (t TitleTransformer) Transform(_ context.Context, file *mdast.FileSnapshot) error {
	if t.Key == "" || file == nil || file.Root == nil || file.FrontMatter == nil {
		return nil
	}

	title, ok := file.FrontMatter[t.Key].(string)
	if !ok || strings.TrimSpace(title) == "" {
		return nil
	}

	heading := mdast.NewGeneratedHeading(1)
	heading.File = file
	mdast.PrependChild(file.Root, heading)

	return nil
}
