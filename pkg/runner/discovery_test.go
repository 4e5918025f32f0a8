package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/headcheck/pkg/runner"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"README.md":             "# a\n",
		"docs/guide.markdown":   "# b\n",
		"docs/deep/notes.MD":    "# c\n",
		"docs/image.png":        "",
		"vendor/lib/README.md":  "# d\n",
		".hidden/secret.md":     "# e\n",
		"docs/.draft.md":        "# f\n",
		"node_modules/x/doc.md": "# g\n",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults skip hidden entries",
			want: []string{
				"README.md",
				"docs/deep/notes.MD",
				"docs/guide.markdown",
				"node_modules/x/doc.md",
				"vendor/lib/README.md",
			},
		},
		{
			name: "exclude globs prune directories",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**", "**/node_modules/**"}},
			want: []string{"README.md", "docs/deep/notes.MD", "docs/guide.markdown"},
		},
		{
			name: "include globs restrict matches",
			opts: runner.Options{IncludeGlobs: []string{"docs/**"}},
			want: []string{"docs/deep/notes.MD", "docs/guide.markdown"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".markdown"}},
			want: []string{"docs/guide.markdown"},
		},
		{
			name: "overlapping paths are deduplicated",
			opts: runner.Options{Paths: []string{"docs", "docs/guide.markdown", "."}, ExcludeGlobs: []string{"vendor", "node_modules"}},
			want: []string{"README.md", "docs/deep/notes.MD", "docs/guide.markdown"},
		},
		{
			name: "explicit hidden file is kept",
			opts: runner.Options{Paths: []string{"docs/.draft.md"}},
			want: []string{"docs/.draft.md"},
		},
		{
			name: "explicit file with other extension is dropped",
			opts: runner.Options{Paths: []string{"docs/image.png"}},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			writeTree(t, root, tree)

			opts := tt.opts
			opts.WorkingDir = root

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relAll(t, root, files))
		})
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"nope"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat nope")
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"README.md", "*.md", true},
		{"docs/README.md", "*.md", true},
		{"docs/README.md", "docs/*.md", true},
		{"docs/deep/README.md", "docs/*.md", false},
		{"vendor", "vendor/**", true},
		{"vendor/a/b.md", "vendor/**", true},
		{"src/vendor/a.md", "vendor/**", false},
		{"src/vendor/a.md", "**/vendor/**", true},
		{"a/b/c/CHANGELOG.md", "**/CHANGELOG.md", true},
		{"CHANGELOG.md", "**/CHANGELOG.md", true},
		{"docs/a/b/x.md", "docs/**/x.md", true},
		{"docs/x.md", "docs/**/x.md", true},
		{"site/x.md", "docs/**/x.md", false},
		{"anything/at/all.md", "**", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, runner.MatchGlob(tt.path, tt.pattern))
		})
	}
}
