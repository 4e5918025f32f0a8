package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/headcheck/internal/logging"
)

// Discover finds Markdown files matching opts.
// It returns sorted, deduplicated absolute paths. A path named explicitly
// is linted even if hidden, but still honours extensions and globs.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	disc := &discoverer{
		ctx:     ctx,
		workDir: workDir,
		opts:    opts,
		exts:    opts.extensions(),
		seen:    make(map[string]struct{}),
	}

	for _, input := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := input
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if info.IsDir() {
			if err := disc.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}
		disc.consider(absPath)
	}

	slices.Sort(disc.files)

	logging.FromContext(ctx).Debug("discovered files",
		logging.FieldFilesDiscovered, len(disc.files),
		logging.FieldWorkingDir, workDir,
	)

	return disc.files, nil
}

type discoverer struct {
	ctx     context.Context //nolint:containedctx // Scoped to a single Discover call.
	workDir string
	opts    Options
	exts    []string
	seen    map[string]struct{}
	files   []string
}

func (d *discoverer) consider(path string) {
	if !d.matches(path) {
		return
	}
	if _, dup := d.seen[path]; dup {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || matchesAny(d.rel(path), d.opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.symlink(path)
		}

		d.consider(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a symlink met during a walk. File links are linted under
// their own path; directory links are walked through their target only when
// FollowSymlinks is set. Broken links are skipped.
func (d *discoverer) symlink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // Broken symlinks are skipped.
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // Unreadable targets are skipped.
	}

	if !info.IsDir() {
		d.consider(path)
		return nil
	}
	if !d.opts.FollowSymlinks {
		return nil
	}
	return d.walk(target)
}

func (d *discoverer) matches(path string) bool {
	if !hasExtension(path, d.exts) {
		return false
	}

	rel := d.rel(path)
	if matchesAny(rel, d.opts.ExcludeGlobs) {
		return false
	}
	if len(d.opts.IncludeGlobs) > 0 && !matchesAny(rel, d.opts.IncludeGlobs) {
		return false
	}
	return true
}

func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

func hasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

func matchesAny(relPath string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return MatchGlob(relPath, pattern)
	})
}

// MatchGlob reports whether relPath matches pattern. Besides filepath.Match
// syntax it understands "**" segments: "vendor/**" matches everything under
// vendor, "**/x.md" matches x.md at any depth. A pattern without a slash
// also matches against the base name.
func MatchGlob(relPath, pattern string) bool {
	relPath = filepath.ToSlash(relPath)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchSegments(strings.Split(relPath, "/"), strings.Split(pattern, "/"))
	}

	if ok, _ := filepath.Match(pattern, relPath); ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		ok, _ := filepath.Match(pattern, filepath.Base(relPath))
		return ok
	}
	return false
}

// matchSegments matches path segments against pattern segments, where a
// "**" segment consumes zero or more path segments.
func matchSegments(path, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := range len(path) + 1 {
				if matchSegments(path[i:], rest) {
					return true
				}
			}
			return false
		}

		if len(path) == 0 {
			return false
		}
		if ok, _ := filepath.Match(pattern[0], path[0]); !ok {
			return false
		}
		path, pattern = path[1:], pattern[1:]
	}
	return len(path) == 0
}
