// Package goldmark provides a Parser implementation using the goldmark library.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/headcheck/internal/logging"
	"github.com/yaklabco/headcheck/pkg/frontmatter"
	"github.com/yaklabco/headcheck/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser implements lint.Parser using goldmark.
// A Parser is safe for concurrent use.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts raw Markdown bytes into a fully-populated FileSnapshot.
//
// A leading YAML front matter block is decoded into FrontMatter and hidden
// from goldmark, so its delimiters never parse as thematic breaks or setext
// underlines. Line numbers are unaffected.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := mdast.NewFileSnapshot(path, bytes.Clone(content))

	source := snapshot.Content
	if block, ok := frontmatter.Split(snapshot.Content); ok {
		source = frontmatter.Mask(snapshot.Content, block)

		values, err := block.Parse()
		if err != nil {
			logging.FromContext(ctx).Debug("ignoring front matter",
				logging.FieldPath, path,
				logging.FieldError, err,
			)
		} else {
			snapshot.FrontMatter = values
		}
	}

	gmDoc := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot.Root = newMapper(snapshot, source).mapDocument(gmDoc)
	mdast.SetFile(snapshot.Root, snapshot)

	return snapshot, nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return goldmark.New(opts...)
}
