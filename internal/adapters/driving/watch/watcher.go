// Package watch processes data download packages dropped into a folder.
// Researchers collecting packages offline point it at a shared directory and
// every new archive is extracted as soon as it has been fully written.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/donation-cli/internal/logger"
)

// Defaults.
const (
	DefaultSettle = 2 * time.Second
	DefaultRate   = 1.0
	DefaultBurst  = 1

	queueSize = 64
)

// Handler processes one archive.
type Handler func(ctx context.Context, path string) error

// Options configures a Watcher.
type Options struct {
	// Settle is how long a file must stay unchanged before it is processed.
	Settle time.Duration
	// Rate limits processed archives per second.
	Rate float64
	// Burst is the number of archives processed without waiting.
	Burst int
	// Existing processes archives already in the directory on start.
	Existing bool
}

// Watcher hands settled archives in a directory to a Handler, one at a time.
type Watcher struct {
	dir     string
	handler Handler
	opts    Options
	limiter *rate.Limiter

	mu        sync.Mutex
	processed int
	failed    int
}

// New creates a watcher for dir.
func New(dir string, handler Handler, opts Options) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch: handler is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch: %s is not a directory", dir)
	}

	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}
	if opts.Rate <= 0 {
		opts.Rate = DefaultRate
	}
	if opts.Burst <= 0 {
		opts.Burst = DefaultBurst
	}

	return &Watcher{
		dir:     dir,
		handler: handler,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.Rate), opts.Burst),
	}, nil
}

// Run watches until ctx is cancelled. Handler errors are logged and do not
// stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for archives", w.dir)

	queue := make(chan string, queueSize)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.work(ctx, queue)
	}()
	defer wg.Wait()
	defer close(queue)

	if w.opts.Existing {
		existing, err := w.existing()
		if err != nil {
			return err
		}
		for _, p := range existing {
			select {
			case queue <- p:
			case <-ctx.Done():
				return nil
			}
		}
	}

	done := make(chan struct{})
	defer close(done)
	settle := newSettler(w.opts.Settle, done)
	defer settle.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if p, ok := handleEvent(ev); ok {
				settle.touch(p)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case s := <-settle.ready:
			if !settle.settled(s) {
				continue
			}
			select {
			case queue <- s.path:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// firing is a timer delivery for the generation of path it was armed for.
type firing struct {
	path string
	gen  uint64
}

// settler debounces events per path. Every touch arms a fresh timer and
// bumps the path's generation, so a timer that fired before being replaced
// delivers a stale firing which settled rejects. Only the Run goroutine may
// call touch, settled and stop.
type settler struct {
	delay  time.Duration
	ready  chan firing
	done   <-chan struct{}
	timers map[string]*time.Timer
	gens   map[string]uint64
}

func newSettler(delay time.Duration, done <-chan struct{}) *settler {
	return &settler{
		delay:  delay,
		ready:  make(chan firing),
		done:   done,
		timers: make(map[string]*time.Timer),
		gens:   make(map[string]uint64),
	}
}

func (s *settler) touch(path string) {
	if t, ok := s.timers[path]; ok {
		t.Stop()
	}
	s.gens[path]++
	f := firing{path: path, gen: s.gens[path]}
	s.timers[path] = time.AfterFunc(s.delay, func() {
		select {
		case s.ready <- f:
		case <-s.done:
		}
	})
}

// settled reports whether f is the latest firing for its path, and forgets
// the path if so.
func (s *settler) settled(f firing) bool {
	if gen, ok := s.gens[f.path]; !ok || gen != f.gen {
		return false
	}
	delete(s.timers, f.path)
	delete(s.gens, f.path)
	return true
}

func (s *settler) stop() {
	for _, t := range s.timers {
		t.Stop()
	}
}

func (w *Watcher) work(ctx context.Context, queue <-chan string) {
	for p := range queue {
		if err := w.limiter.Wait(ctx); err != nil {
			return
		}
		logger.Debug("watch: processing %s", p)
		err := w.handler(ctx, p)

		w.mu.Lock()
		if err != nil {
			w.failed++
		} else {
			w.processed++
		}
		w.mu.Unlock()

		if err != nil {
			logger.Warn("watch: %s: %v", filepath.Base(p), err)
		}
	}
}

// existing lists the archives already present, in name order.
func (w *Watcher) existing() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !IsArchive(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(w.dir, e.Name()))
	}
	return out, nil
}

// Stats returns the number of archives handled successfully and with an error.
func (w *Watcher) Stats() (processed, failed int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.processed, w.failed
}

// handleEvent returns the archive an event refers to. Only creates and
// writes of visible zip files count.
func handleEvent(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return "", false
	}
	if !IsArchive(filepath.Base(ev.Name)) {
		return "", false
	}
	info, err := os.Stat(ev.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return ev.Name, true
}

// IsArchive reports whether name is a visible zip file name.
func IsArchive(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".zip")
}
