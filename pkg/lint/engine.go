package lint

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/leapstack-labs/stylist/pkg/source"
	"golang.org/x/sync/errgroup"
)

// Engine checks files against a set of styles.
type Engine struct {
	factory *source.Factory
	styles  []*Style
	logger  *slog.Logger
}

// NewEngine creates an engine reading files through factory. A nil factory
// uses the default extension map.
func NewEngine(factory *source.Factory, logger *slog.Logger, styles ...*Style) *Engine {
	if factory == nil {
		factory = source.NewFactory()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{factory: factory, styles: styles, logger: logger}
}

// Styles returns the styles applied to every file.
func (e *Engine) Styles() []*Style { return e.styles }

// Factory returns the source factory used to read files.
func (e *Engine) Factory() *source.Factory { return e.factory }

// Check reads a file, applies every style to it and returns the sorted
// issues, each attached to path.
func (e *Engine) Check(path string) ([]Issue, error) {
	e.logger.Info("examining", "path", path)

	src, err := e.factory.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, style := range e.styles {
		found, err := style.Check(src)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", path, err)
		}
		for _, issue := range found {
			issues = append(issues, issue.WithFile(path))
		}
	}
	SortIssues(issues)
	return issues, nil
}

// CheckAll checks files concurrently, at most workers at a time, and merges
// the results into one sorted list. Zero or fewer workers means one per
// CPU. The first failure cancels the remaining work.
func (e *Engine) CheckAll(ctx context.Context, paths []string, workers int) ([]Issue, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([][]Issue, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			issues, err := e.Check(path)
			if err != nil {
				return err
			}
			results[i] = issues
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var issues []Issue
	for _, r := range results {
		issues = append(issues, r...)
	}
	SortIssues(issues)
	return issues, nil
}

// Collect expands the given paths into the files to check. Files named
// directly are kept whatever their extension. Directories are walked and
// only files with a registered extension are kept.
func (e *Engine) Collect(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() && e.factory.Handles(p) {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
		sort.Strings(found)
		e.logger.Debug("collected sources", "dir", path, "count", len(found))
		files = append(files, found...)
	}
	return files, nil
}
