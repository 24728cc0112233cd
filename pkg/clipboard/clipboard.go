// Package clipboard writes text to the system clipboard, trying the native
// clipboard, then command-line utilities, then the OSC 52 terminal escape.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnavailable is returned when no backend accepted the text.
var ErrUnavailable = errors.New("clipboard unavailable")

// Backend is one way of reaching a clipboard.
type Backend interface {
	Name() string
	Write(ctx context.Context, text string) error
}

// Clipboard tries its backends in order until one succeeds.
type Clipboard struct {
	backends []Backend
}

// New creates a clipboard over the given backends.
func New(backends ...Backend) *Clipboard {
	return &Clipboard{backends: backends}
}

// Default returns the native clipboard, the command chain and an OSC 52
// fallback written to the controlling terminal.
func Default() *Clipboard {
	return New(System{}, Commands{}, OSC52{Out: os.Stdout})
}

// Write copies text and reports which backend took it.
func (c *Clipboard) Write(ctx context.Context, text string) (string, error) {
	var errs []error
	for _, b := range c.backends {
		if err := b.Write(ctx, text); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		return b.Name(), nil
	}
	return "", fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}

// CopyToClipboard copies text using Default.
func CopyToClipboard(text string) error {
	_, err := Default().Write(context.Background(), text)
	return err
}

// System uses the platform clipboard.
type System struct{}

func (System) Name() string { return "system" }

func (System) Write(_ context.Context, text string) error {
	if clipboard.Unsupported {
		return errors.New("no native clipboard")
	}
	return clipboard.WriteAll(text)
}

// Commands pipes the text into the first clipboard utility that runs.
type Commands struct {
	// Candidates overrides the default utility list.
	Candidates [][]string
}

var defaultCommands = [][]string{
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"pbcopy"}, // macOS
	{"clip"},   // Windows
}

func (Commands) Name() string { return "command" }

func (c Commands) Write(ctx context.Context, text string) error {
	candidates := c.Candidates
	if candidates == nil {
		candidates = defaultCommands
	}

	names := make([]string, 0, len(candidates))
	for _, args := range candidates {
		names = append(names, args[0])
		cmd := exec.CommandContext(ctx, args[0], args[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no clipboard utility found (tried %s)", strings.Join(names, ", "))
}

// OSC52 asks the terminal to set its clipboard.
type OSC52 struct {
	Out io.Writer
}

func (OSC52) Name() string { return "osc52" }

func (o OSC52) Write(_ context.Context, text string) error {
	if o.Out == nil {
		return errors.New("no terminal")
	}
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if strings.HasPrefix(os.Getenv("TERM"), "screen") {
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(o.Out)
	return err
}
