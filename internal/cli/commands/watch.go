package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/stylist/pkg/lint"
)

// watchDebounce collects bursts of file events into one re-check.
const watchDebounce = 200 * time.Millisecond

// watch checks args once, then again whenever a file the engine handles is
// written or created below them, until ctx is cancelled.
func watch(ctx context.Context, cmdCtx *CommandContext, eng *lint.Engine, args []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dirs, err := watchDirs(args)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	recheck := func() error {
		_, err := checkOnce(ctx, cmdCtx, eng, args)
		return err
	}
	if err := recheck(); err != nil {
		return err
	}
	cmdCtx.Logger.Info("watching for changes", "dirs", len(dirs))

	var debounce *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !eng.Factory().Handles(event.Name) {
				continue
			}
			cmdCtx.Logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			if err := recheck(); err != nil {
				cmdCtx.Renderer.Warning(err.Error())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Warn("watch error", "error", err)
		}
	}
}

// watchDirs returns the directories to watch for args: every directory
// below a directory argument, hidden ones excepted, and the directory
// holding each file argument.
func watchDirs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			seen[filepath.Dir(arg)] = true
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != arg && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			seen[path] = true
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs, nil
}
