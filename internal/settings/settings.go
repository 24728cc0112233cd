// Package settings persists the viewer's user preferences and notifies
// subscribers when they change.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cnharrison/jsonview/internal/theme"
)

const (
	KeyTheme    = "theme"
	KeyFontSize = "fontSize"

	DefaultTheme    = "dark"
	DefaultFontSize = 16

	MinFontSize = 8
	MaxFontSize = 48
)

// ErrInvalid is wrapped by validation failures.
var ErrInvalid = errors.New("invalid settings")

// Settings are the recognised preference keys.
type Settings struct {
	Theme    string `yaml:"theme"`
	FontSize int    `yaml:"fontSize"`
}

// Defaults returns the hard-coded defaults used whenever the store cannot help.
func Defaults() Settings {
	return Settings{Theme: DefaultTheme, FontSize: DefaultFontSize}
}

// WithDefaults fills zero-valued keys from defaults.
func (s Settings) WithDefaults(defaults Settings) Settings {
	if s.Theme == "" {
		s.Theme = defaults.Theme
	}
	if s.FontSize == 0 {
		s.FontSize = defaults.FontSize
	}
	return s
}

// Validate checks that the theme is known and the font size is usable.
func (s Settings) Validate() error {
	if !theme.Exists(s.Theme) {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalid, s.Theme)
	}
	if s.FontSize < MinFontSize || s.FontSize > MaxFontSize {
		return fmt.Errorf("%w: font size %d outside %d-%d", ErrInvalid, s.FontSize, MinFontSize, MaxFontSize)
	}
	return nil
}

// Change is the old and new value of one key.
type Change struct {
	Old any
	New any
}

// Changes maps a key to its change.
type Changes map[string]Change

// Diff reports the keys whose values differ between old and updated.
func Diff(old, updated Settings) Changes {
	changes := Changes{}
	if old.Theme != updated.Theme {
		changes[KeyTheme] = Change{Old: old.Theme, New: updated.Theme}
	}
	if old.FontSize != updated.FontSize {
		changes[KeyFontSize] = Change{Old: old.FontSize, New: updated.FontSize}
	}
	return changes
}

// Apply returns s with the new values of changes applied.
func (s Settings) Apply(changes Changes) Settings {
	if c, ok := changes[KeyTheme]; ok {
		if v, ok := c.New.(string); ok && v != "" {
			s.Theme = v
		}
	}
	if c, ok := changes[KeyFontSize]; ok {
		if v, ok := c.New.(int); ok && v != 0 {
			s.FontSize = v
		}
	}
	return s
}

// Store is a key-value preference store with change notification.
type Store interface {
	// Get returns the stored settings with missing keys taken from defaults.
	Get(ctx context.Context, defaults Settings) (Settings, error)
	// Set stores the settings and notifies subscribers of what changed.
	Set(ctx context.Context, s Settings) error
	// Subscribe registers fn for change notifications until cancel is called.
	Subscribe(fn func(Changes)) (cancel func())
}

// notifier fans change diffs out to subscribers. It is safe for concurrent use
// because file watches deliver from their own goroutine.
type notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Changes)
}

func (n *notifier) Subscribe(fn func(Changes)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func(Changes))
	}
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify(changes Changes) {
	if len(changes) == 0 {
		return
	}
	n.mu.Lock()
	subs := make([]func(Changes), 0, len(n.subs))
	for _, fn := range n.subs {
		subs = append(subs, fn)
	}
	n.mu.Unlock()

	for _, fn := range subs {
		fn(changes)
	}
}
