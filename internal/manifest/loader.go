package manifest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"loadorder/pkg/logging"
)

// Loader discovers and parses manifest files.
type Loader struct {
	// Concurrency caps the number of files parsed at once. Zero means
	// runtime.NumCPU().
	Concurrency int

	// Ignore holds base-name glob patterns of files skipped while walking
	// directories. Files named explicitly are never ignored.
	Ignore []string
}

// NewLoader returns a Loader parsing up to concurrency files at once.
func NewLoader(concurrency int) *Loader {
	return &Loader{Concurrency: concurrency}
}

// Discover expands paths into manifest files. Directories are walked
// recursively in lexical order, skipping hidden directories and files of
// unknown type. Files named explicitly must be of a known type. Each file is
// returned once, in discovery order.
func (l *Loader) Discover(paths ...string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		files = append(files, clean)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read source %s: %w", root, err)
		}
		if !info.IsDir() {
			if _, ok := KindOf(root); !ok {
				return nil, fmt.Errorf("%s: %w", root, ErrUnsupported)
			}
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if _, ok := KindOf(path); ok && !l.ignored(d.Name()) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk source %s: %w", root, err)
		}
	}

	logging.Debug("ManifestLoader", "Discovered %d manifest files in %d sources", len(files), len(paths))
	return files, nil
}

func (l *Loader) ignored(name string) bool {
	for _, pattern := range l.Ignore {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Load discovers the manifests under paths and parses them concurrently.
// Units are returned in discovery order, so the result does not depend on
// scheduling.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*Unit, error) {
	files, err := l.Discover(paths...)
	if err != nil {
		return nil, err
	}
	return l.ParseAll(ctx, files)
}

// ParseAll parses files concurrently and returns their units in file order.
// The first failure cancels the remaining work.
func (l *Loader) ParseAll(ctx context.Context, files []string) ([]*Unit, error) {
	limit := l.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	units := make([]*Unit, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			u, err := ParseFile(file)
			if err != nil {
				return err
			}
			units[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logging.Error("ManifestLoader", err, "Failed to load manifests")
		return nil, err
	}

	logging.Info("ManifestLoader", "Loaded %d units", len(units))
	return units, nil
}
