package manifest

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"loadorder/pkg/logging"
)

// DefaultDebounce is used when a Watcher is created with a zero interval.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reports changes to manifest files under a set of sources.
//
// Bursts of filesystem events are coalesced: the callback runs once the
// sources have been quiet for the debounce interval, with every manifest path
// touched during the burst.
type Watcher struct {
	mu sync.Mutex

	// sources are the files and directories being watched
	sources []string

	// files holds sources that are single files; only their own events count
	files map[string]struct{}

	// debounceInterval is how long to wait for additional changes
	debounceInterval time.Duration

	watcher *fsnotify.Watcher
	timer   *time.Timer
	pending map[string]struct{}
	fire    chan struct{}
}

// NewWatcher creates a watcher for sources.
func NewWatcher(sources []string, debounceInterval time.Duration) *Watcher {
	if debounceInterval == 0 {
		debounceInterval = DefaultDebounce
	}
	return &Watcher{
		sources:          sources,
		files:            make(map[string]struct{}),
		debounceInterval: debounceInterval,
		pending:          make(map[string]struct{}),
		fire:             make(chan struct{}, 1),
	}
}

// Run watches until ctx is done. onChange is called from Run's goroutine,
// never concurrently with itself.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	w.mu.Lock()
	w.watcher = watcher
	w.mu.Unlock()

	if err := w.setupWatches(); err != nil {
		return err
	}
	logging.Info("ManifestWatcher", "Watching %d sources for manifest changes", len(w.sources))

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleFsEvent(event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error("ManifestWatcher", err, "Filesystem watcher error")

		case <-w.fire:
			if changed := w.takePending(); len(changed) > 0 {
				logging.Debug("ManifestWatcher", "Detected changes in %d manifests", len(changed))
				onChange(changed)
			}
		}
	}
}

// setupWatches adds a watch for every source directory and its
// subdirectories. File sources are watched through their parent directory.
func (w *Watcher) setupWatches() error {
	for _, src := range w.sources {
		info, err := os.Stat(src)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			w.mu.Lock()
			w.files[filepath.Clean(src)] = struct{}{}
			w.mu.Unlock()
			if err := w.watcher.Add(filepath.Dir(src)); err != nil {
				return err
			}
			continue
		}
		if err := w.addTree(src); err != nil {
			return err
		}
	}
	return nil
}

// addTree watches dir and every non-hidden directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		logging.Debug("ManifestWatcher", "Watching directory: %s", path)
		return w.watcher.Add(path)
	})
}

// handleFsEvent processes a single filesystem event.
func (w *Watcher) handleFsEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && w.underDirectorySource(event.Name) {
			if err := w.addTree(event.Name); err != nil {
				logging.Warn("ManifestWatcher", "Failed to watch new directory %s: %v", event.Name, err)
			}
			return
		}
	}

	if _, ok := KindOf(event.Name); !ok {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if !w.relevant(event.Name) {
		return
	}
	w.debounce(filepath.Clean(event.Name))
}

// relevant reports whether path is an explicit file source or lies under a
// directory source.
func (w *Watcher) relevant(path string) bool {
	w.mu.Lock()
	_, ok := w.files[filepath.Clean(path)]
	w.mu.Unlock()
	return ok || w.underDirectorySource(path)
}

func (w *Watcher) underDirectorySource(path string) bool {
	path = filepath.Clean(path)
	for _, src := range w.sources {
		w.mu.Lock()
		_, isFile := w.files[filepath.Clean(src)]
		w.mu.Unlock()
		if isFile {
			continue
		}
		rel, err := filepath.Rel(filepath.Clean(src), path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// debounce records path and restarts the quiet-period timer.
func (w *Watcher) debounce(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceInterval, func() {
		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) takePending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	sort.Strings(changed)
	w.pending = make(map[string]struct{})
	return changed
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
