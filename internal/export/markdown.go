package export

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// maxPreviewLines caps the fenced body in a markdown summary.
const maxPreviewLines = 200

// Report is the document information a markdown summary is built from.
type Report struct {
	Location    string
	ContentType string
	Formatted   string
	LineCount   int
	FoldCount   int
	IsJSON      bool
}

// GenerateMarkdownSummary renders a markdown report describing the document:
// where it came from, its shape, and the formatted body.
func GenerateMarkdownSummary(r Report) string {
	var summary strings.Builder

	summary.WriteString(fmt.Sprintf("# %s\n\n", PageTitle(r.Location)))

	summary.WriteString("## Document\n\n")
	summary.WriteString(fmt.Sprintf("- **Source:** `%s`\n", r.Location))
	if r.ContentType != "" {
		summary.WriteString(fmt.Sprintf("- **Content-Type:** %s\n", r.ContentType))
	}
	summary.WriteString(fmt.Sprintf("- **Lines:** %d\n", r.LineCount))
	if r.IsJSON {
		summary.WriteString(fmt.Sprintf("- **Foldable sections:** %d\n", r.FoldCount))
	}
	summary.WriteString("\n")

	if r.IsJSON {
		writeStructure(&summary, r.Formatted)
	}

	lang := "json"
	if !r.IsJSON {
		lang = "text"
	}
	body, truncated := previewLines(r.Formatted, maxPreviewLines)
	summary.WriteString("## Body\n\n")
	summary.WriteString("```" + lang + "\n")
	summary.WriteString(body)
	summary.WriteString("\n```\n")
	if truncated > 0 {
		summary.WriteString(fmt.Sprintf("\n_%d more lines omitted._\n", truncated))
	}

	return summary.String()
}

func writeStructure(b *strings.Builder, formatted string) {
	root := gjson.Parse(formatted)
	switch {
	case root.IsObject():
		b.WriteString("## Top-level keys\n\n")
		b.WriteString("| Key | Type | Preview |\n")
		b.WriteString("|-----|------|---------|\n")
		root.ForEach(func(key, value gjson.Result) bool {
			b.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n", key.String(), kindOf(value), preview(value)))
			return true
		})
		b.WriteString("\n")
	case root.IsArray():
		items := root.Array()
		b.WriteString("## Top-level array\n\n")
		b.WriteString(fmt.Sprintf("- **Items:** %d\n", len(items)))
		if len(items) > 0 {
			b.WriteString(fmt.Sprintf("- **First item:** %s\n", kindOf(items[0])))
		}
		b.WriteString("\n")
	}
}

func kindOf(v gjson.Result) string {
	switch {
	case v.IsObject():
		return fmt.Sprintf("object (%d keys)", len(v.Map()))
	case v.IsArray():
		return fmt.Sprintf("array (%d items)", len(v.Array()))
	}
	switch v.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	default:
		return "null"
	}
}

func preview(v gjson.Result) string {
	if v.IsObject() || v.IsArray() {
		return ""
	}
	text := strings.ReplaceAll(v.Raw, "|", `\|`)
	if len(text) > 40 {
		text = text[:37] + "..."
	}
	return "`" + text + "`"
}

func previewLines(text string, limit int) (string, int) {
	lines := strings.Split(text, "\n")
	if len(lines) <= limit {
		return text, 0
	}
	return strings.Join(lines[:limit], "\n"), len(lines) - limit
}
