package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Holder provides thread-safe access to configuration with hot reload
// support. Rate limit rules are the main hot-reloadable section; server and
// database changes still need a restart.
type Holder struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	onChange []func(*Config)
	stopCh   chan struct{}
}

// NewHolder creates a holder and loads the initial configuration.
func NewHolder(path string, logger zerolog.Logger) (*Holder, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	return &Holder{
		config: cfg,
		path:   absPath,
		logger: logger,
		stopCh: make(chan struct{}),
	}, nil
}

// Get returns the current configuration (thread-safe).
func (h *Holder) Get() *Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.config
}

// OnChange registers a callback invoked after a successful reload.
func (h *Holder) OnChange(fn func(*Config)) {
	h.onChange = append(h.onChange, fn)
}

// Reload reloads the configuration from disk. A load failure keeps the old
// configuration.
func (h *Holder) Reload() error {
	newCfg, err := Load(h.path)
	if err != nil {
		h.logger.Error().Err(err).Msg("config reload failed, keeping old config")
		return err
	}

	h.mu.Lock()
	h.config = newCfg
	h.mu.Unlock()

	for _, fn := range h.onChange {
		fn(newCfg)
	}

	h.logger.Info().Str("path", h.path).Msg("configuration reloaded")
	return nil
}

// Watch starts watching the config file for changes. Editors typically
// replace the file, so the watch is on the directory and filtered by name.
func (h *Holder) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	h.watcher = watcher

	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config dir: %w", err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != h.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := h.Reload(); err != nil && !strings.Contains(err.Error(), "no such file") {
					h.logger.Warn().Err(err).Msg("hot reload skipped")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				h.logger.Error().Err(err).Msg("config watcher error")
			case <-h.stopCh:
				return
			}
		}
	}()

	return nil
}

// Close stops the watcher.
func (h *Holder) Close() error {
	close(h.stopCh)
	if h.watcher != nil {
		return h.watcher.Close()
	}
	return nil
}
