package format

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// indent is the fixed indentation of the canonical document
const indent = "  "

var (
	// ErrPathNotFound is returned by Query when the path matches nothing.
	ErrPathNotFound = errors.New("path not found")
	// ErrInvalidJSON is returned by Canonicalize for text that does not parse.
	ErrInvalidJSON = errors.New("invalid json")
)

// ContentFormatter detects JSON bodies and produces their canonical form
type ContentFormatter struct {
	printer *message.Printer
}

// NewContentFormatter creates a new content formatter
func NewContentFormatter() *ContentFormatter {
	return &ContentFormatter{
		printer: message.NewPrinter(language.English),
	}
}

// IsLikelyJSON reports whether a body should be treated as JSON: the declared
// content type mentions json, or the trimmed body opens with { or [ and parses.
func (f *ContentFormatter) IsLikelyJSON(content, contentType string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return false
	}
	if strings.Contains(strings.ToLower(contentType), "json") {
		return true
	}
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return false
	}
	return gjson.Valid(trimmed)
}

// DetectContentType returns "json" for JSON bodies and otherwise a short label
// derived from the declared or sniffed MIME type, for display only.
func (f *ContentFormatter) DetectContentType(content, mimeType string) string {
	if f.IsLikelyJSON(content, mimeType) {
		return "json"
	}

	lowerMime := strings.ToLower(mimeType)
	if lowerMime == "" && content != "" {
		lowerMime = http.DetectContentType([]byte(content))
	}
	switch {
	case strings.Contains(lowerMime, "html"):
		return "html"
	case strings.Contains(lowerMime, "xml"):
		return "xml"
	case strings.Contains(lowerMime, "javascript") || strings.Contains(lowerMime, "ecmascript"):
		return "javascript"
	case strings.Contains(lowerMime, "css"):
		return "css"
	case strings.HasPrefix(lowerMime, "text/") || lowerMime == "":
		return "text"
	default:
		return "binary"
	}
}

// FormatJSON parses content and re-serializes it with 2-space indentation. Text that does not
// parse is returned unmodified. Formatting its own output is a no-op.
func (f *ContentFormatter) FormatJSON(content string) string {
	formatted, err := f.Canonicalize(content)
	if err != nil {
		return content
	}
	return formatted
}

// Canonicalize is FormatJSON with the parse error exposed.
func (f *ContentFormatter) Canonicalize(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if !gjson.Valid(trimmed) {
		return "", fmt.Errorf("canonicalize: %w", ErrInvalidJSON)
	}
	var b strings.Builder
	b.Grow(len(trimmed) * 2)
	writeValue(&b, gjson.Parse(trimmed), 0)
	return b.String(), nil
}

// Minify strips all insignificant whitespace from a JSON document.
func (f *ContentFormatter) Minify(content string) string {
	return string(pretty.Ugly([]byte(content)))
}

// Query selects the value at a gjson path and returns its raw JSON text.
func (f *ContentFormatter) Query(content, path string) (string, error) {
	if path == "" {
		return content, nil
	}
	result := gjson.Get(content, path)
	if !result.Exists() {
		return "", fmt.Errorf("query %q: %w", path, ErrPathNotFound)
	}
	return result.Raw, nil
}

// CountLines counts \n-delimited lines; empty text has none.
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}

// FormatLineCount renders a toolbar label such as "1 line" or "12,345 lines".
func (f *ContentFormatter) FormatLineCount(count int) string {
	formatted := f.printer.Sprintf("%d", count)
	if count == 1 {
		return formatted + " line"
	}
	return formatted + " lines"
}
