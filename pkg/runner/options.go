// Package runner discovers Markdown files and lints them concurrently.
package runner

import "github.com/yaklabco/headcheck/pkg/config"

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// glob patterns. If empty, the process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) considered
	// Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching files when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs caps the number of concurrent workers; <= 0 means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
