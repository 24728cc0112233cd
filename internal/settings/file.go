package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/cnharrison/jsonview/internal/fsutil"
	"github.com/cnharrison/jsonview/internal/logging"
)

// FileName is the settings file inside the config directory.
const FileName = "settings.yaml"

// DefaultPath returns the settings file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "jsonview", FileName), nil
}

// FileStore keeps settings in a YAML file. Changes made by other processes are
// picked up by Watch.
type FileStore struct {
	notifier

	path string

	mu   sync.Mutex
	last Settings
}

// NewFileStore creates a store backed by path. The file need not exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) read() (Settings, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", f.path, err)
	}
	return s, nil
}

// Get implements Store. A missing file yields the defaults.
func (f *FileStore) Get(ctx context.Context, defaults Settings) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return defaults, err
	}
	s, err := f.read()
	if err != nil {
		return defaults, err
	}

	f.mu.Lock()
	f.last = s
	f.mu.Unlock()

	return s.WithDefaults(defaults), nil
}

// Set implements Store.
func (f *FileStore) Set(ctx context.Context, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	old, err := f.read()
	if err != nil {
		old = Settings{}
	}
	old = old.WithDefaults(Defaults())

	f.mu.Lock()
	f.last = s
	f.mu.Unlock()

	if err := fsutil.WriteFile(ctx, f.path, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	f.notify(Diff(old, s))
	return nil
}

// Watch reloads the file whenever it changes on disk and notifies subscribers of
// the difference. It blocks until ctx is done.
func (f *FileStore) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	// The directory is watched rather than the file because atomic saves
	// replace the inode.
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger := logging.FromContext(ctx)
	name := filepath.Base(f.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			f.reload(logger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("settings watch error", "err", err)
		}
	}
}

func (f *FileStore) reload(logger *log.Logger) {
	s, err := f.read()
	if err != nil {
		logger.Warn("ignoring unreadable settings", "path", f.path, "err", err)
		return
	}

	s = s.WithDefaults(Defaults())

	f.mu.Lock()
	old := f.last.WithDefaults(Defaults())
	f.last = s
	f.mu.Unlock()

	f.notify(Diff(old, s))
}
