package lint

import (
	"context"

	"github.com/yaklabco/headcheck/pkg/mdast"
)

// Parser parses Markdown content into a FileSnapshot.
//
// Implementations (e.g., parser/goldmark) must be deterministic for a given
// (flavor, path, content) tuple and free of I/O and global state.
type Parser interface {
	// Parse converts raw Markdown bytes into a fully-populated FileSnapshot.
	//
	// The returned FileSnapshot must satisfy:
	//   - snapshot.Path == path
	//   - bytes.Equal(snapshot.Content, content)
	//   - snapshot.Root != nil && snapshot.Root.Kind == mdast.NodeDocument
	//   - All nodes have node.File == snapshot
	//
	// On error no partial snapshot is returned.
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}

// Transformer rewrites a parsed tree before rules run.
// Nodes a transformer inserts should carry no Position.
type Transformer interface {
	Name() string
	Transform(ctx context.Context, file *mdast.FileSnapshot) error
}
