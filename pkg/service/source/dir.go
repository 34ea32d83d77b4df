package source

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/domain/model"
)

// Dir enumerates report files under a directory matched by a glob pattern,
// optionally recursing into subdirectories. A file that cannot be read is
// logged and skipped; it never fails the enumeration.
type Dir struct {
	root      string
	pattern   string
	recursive bool
}

// NewDir creates a new directory source
func NewDir(root, pattern string, recursive bool) *Dir {
	if pattern == "" {
		pattern = "*.md"
	}
	return &Dir{
		root:      root,
		pattern:   pattern,
		recursive: recursive,
	}
}

// Entries returns one entry per readable matching file, sorted by path for a
// deterministic default order.
func (d *Dir) Entries(ctx context.Context) ([]model.SourceEntry, error) {
	paths, err := d.matchPaths()
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	logger := ctxlog.From(ctx)
	entries := make([]model.SourceEntry, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("Skipping unreadable report source",
				"path", path,
				"error", err,
			)
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable report source",
				"path", path,
				"error", err,
			)
			continue
		}

		entries = append(entries, model.SourceEntry{
			Name:       filepath.Base(path),
			Text:       string(data),
			ModifiedAt: info.ModTime(),
		})
	}

	return entries, nil
}

func (d *Dir) matchPaths() ([]string, error) {
	if !d.recursive {
		paths, err := filepath.Glob(filepath.Join(d.root, d.pattern))
		if err != nil {
			return nil, goerr.Wrap(err, "invalid source pattern",
				goerr.V("pattern", d.pattern))
		}
		return paths, nil
	}

	var paths []string
	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subdirectory: skip it, keep walking
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		matched, err := filepath.Match(d.pattern, entry.Name())
		if err != nil {
			return goerr.Wrap(err, "invalid source pattern",
				goerr.V("pattern", d.pattern))
		}
		if matched {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to walk report directory",
			goerr.V("root", d.root))
	}
	return paths, nil
}
