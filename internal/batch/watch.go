package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig configures Watch
type WatchConfig struct {
	Dir         string
	Debounce    time.Duration // coalesce bursts of writes to the same file
	InitialScan bool          // emit supported files already in Dir
}

// Watch emits the paths of supported files created or written in a
// directory. Paths are sent once writes to them have paused for the
// debounce interval. Both channels are closed when ctx is done.
func Watch(ctx context.Context, cfg WatchConfig) (<-chan string, <-chan error, error) {
	if cfg.Dir == "" {
		return nil, nil, errors.New("no directory to watch")
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%s is not a directory", cfg.Dir)
	}

	var initial []string
	if cfg.InitialScan {
		if initial, err = Collect([]string{cfg.Dir}); err != nil {
			return nil, nil, err
		}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(cfg.Dir); err != nil {
		w.Close()
		return nil, nil, fmt.Errorf("watching %s: %w", cfg.Dir, err)
	}

	evCh := make(chan string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(evCh)
		defer close(errCh)
		defer w.Close()

		send := func(path string) bool {
			select {
			case evCh <- path:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for _, p := range initial {
			if !send(p) {
				return
			}
		}

		pending := map[string]struct{}{}
		var timer *time.Timer
		var tick <-chan time.Time

		arm := func() {
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(cfg.Debounce)
			tick = timer.C
		}

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if !Supported(e.Name) || e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				if cfg.Debounce <= 0 {
					if !send(e.Name) {
						return
					}
					continue
				}
				pending[e.Name] = struct{}{}
				arm()
			case <-tick:
				tick = nil
				for p := range pending {
					delete(pending, p)
					if _, err := os.Stat(p); err != nil {
						continue
					}
					if !send(p) {
						return
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Error("Watcher error", "error", err)
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	return evCh, errCh, nil
}
