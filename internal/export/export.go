package export

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cnharrison/jsonview/internal/fsutil"
)

const (
	defaultBase   = "data"
	fallbackTitle = "JSON - Document"
	localHost     = "local"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9-_]+`)

// SmartFilename derives a download name from the document location: the last
// percent-encoded path segment, or the host when the path is empty, sanitised
// and given a .json suffix.
func SmartFilename(location string) string {
	base := defaultBase
	if u, err := url.Parse(location); err == nil {
		segments := strings.FieldsFunc(u.EscapedPath(), func(r rune) bool { return r == '/' })
		switch {
		case len(segments) > 0:
			base = segments[len(segments)-1]
		case u.Hostname() != "":
			base = u.Hostname()
		}
	}

	sanitized := strings.Trim(unsafeFilenameChars.ReplaceAllString(base, "-"), "-")
	if sanitized == "" {
		sanitized = defaultBase
	}
	return sanitized + ".json"
}

// PageTitle returns "JSON - <host><path>" for the document location.
func PageTitle(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return fallbackTitle
	}

	host := u.Hostname()
	if host == "" {
		host = localHost
	}
	path := u.Path
	if path == "/" {
		path = ""
	}
	return "JSON - " + host + path
}

// ShouldReplaceTitle reports whether an existing title is generic enough to
// replace with PageTitle.
func ShouldReplaceTitle(current string) bool {
	return current == "" || current == "Application/JSON" || strings.Contains(current, "localhost")
}

// FileLocation turns a local path into a file URL so it can be titled and named
// like a fetched document.
func FileLocation(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// Download writes text into dir under SmartFilename(location) and returns the path.
func Download(ctx context.Context, dir, location, text string) (string, error) {
	if dir == "" {
		dir = DownloadDir()
	}
	path := filepath.Join(dir, SmartFilename(location))
	if err := fsutil.WriteFile(ctx, path, []byte(text)); err != nil {
		return "", fmt.Errorf("download %s: %w", path, err)
	}
	return path, nil
}

// DownloadDir returns ~/Downloads when it exists, otherwise the working directory.
func DownloadDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, "Downloads")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "."
}

// OpenInEditor writes content to a temp file, opens it in $EDITOR and returns
// the content after the editor exits.
func OpenInEditor(ctx context.Context, content, extension string) (string, error) {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	tmpFile, err := os.CreateTemp("", "jsonview-*."+extension)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(content); err != nil {
		_ = tmpFile.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return "", errors.New("empty editor command")
	}
	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], tmpFile.Name())...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run %s: %w", fields[0], err)
	}

	edited, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("read edited file: %w", err)
	}
	return string(edited), nil
}
