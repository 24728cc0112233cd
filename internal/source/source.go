// Package source loads the document body and its declared content type from a
// file, standard input, or an HTTP(S) URL.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/cnharrison/jsonview/internal/export"
)

// MaxBodySize caps how much is read from any source.
const MaxBodySize = 64 << 20

// StdinName selects standard input.
const StdinName = "-"

var (
	// ErrEmptyInput is returned when the source holds only whitespace.
	ErrEmptyInput = errors.New("empty input")
	// ErrNoInput is returned when no argument is given and stdin is a terminal.
	ErrNoInput = errors.New("no input: pass a file, a URL, or pipe data on stdin")
)

// Document is a loaded body.
type Document struct {
	Body        string
	ContentType string
	Location    string
}

// Loader reads documents. The zero value is usable.
type Loader struct {
	Client *http.Client
	Stdin  io.Reader
	// StdinIsTerminal overrides the isatty check, mainly for tests.
	StdinIsTerminal func() bool
}

// Load resolves arg as a URL, "-" or a file path. An empty arg reads stdin when
// it is piped.
func (l *Loader) Load(ctx context.Context, arg string) (*Document, error) {
	var (
		doc *Document
		err error
	)
	switch {
	case isURL(arg):
		doc, err = l.fetch(ctx, arg)
	case arg == "" || arg == StdinName:
		if arg == "" && l.stdinIsTerminal() {
			return nil, ErrNoInput
		}
		doc, err = l.readStdin()
	default:
		doc, err = readFile(arg)
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(doc.Body) == "" {
		return nil, fmt.Errorf("%s: %w", doc.Location, ErrEmptyInput)
	}
	return doc, nil
}

func isURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

func (l *Loader) stdinIsTerminal() bool {
	if l.StdinIsTerminal != nil {
		return l.StdinIsTerminal()
	}
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (l *Loader) readStdin() (*Document, error) {
	in := l.Stdin
	if in == nil {
		in = os.Stdin
	}
	body, err := io.ReadAll(io.LimitReader(in, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return &Document{Body: string(body), Location: "stdin"}, nil
}

func readFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Document{
		Body:        string(body),
		ContentType: contentTypeForPath(path),
		Location:    export.FileLocation(path),
	}, nil
}

// contentTypeForPath is the declared type a file server would send for path.
func contentTypeForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		return "application/json"
	}
	return mime.TypeByExtension(ext)
}

func (l *Loader) fetch(ctx context.Context, rawURL string) (*Document, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, */*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetch %s: %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return &Document{
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		Location:    resp.Request.URL.String(),
	}, nil
}
