// Package theme holds the color tables shared by the HTML page and the terminal
// viewer.
package theme

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultID is used for unknown theme identifiers.
const DefaultID = "dark"

// Colors are the ten named colors of a theme, as #rrggbb.
type Colors struct {
	Background           string
	Foreground           string
	LineNumberColor      string
	LineNumberBackground string
	JSONKey              string
	JSONString           string
	JSONNumber           string
	JSONBoolean          string
	JSONNull             string
	JSONBrace            string
}

// Theme is a named color table.
type Theme struct {
	ID     string
	Name   string
	Colors Colors
	// SyntaxStyle names the chroma style used for raw non-JSON bodies.
	SyntaxStyle string
}

var themes = map[string]Theme{
	"dark": {
		ID:          "dark",
		Name:        "One Dark",
		SyntaxStyle: "monokai",
		Colors: Colors{
			Background:           "#1e1e1e",
			Foreground:           "#d4d4d4",
			LineNumberColor:      "#858585",
			LineNumberBackground: "#252526",
			JSONKey:              "#9cdcfe",
			JSONString:           "#ce9178",
			JSONNumber:           "#b5cea8",
			JSONBoolean:          "#569cd6",
			JSONNull:             "#569cd6",
			JSONBrace:            "#d4d4d4",
		},
	},
	"light": {
		ID:          "light",
		Name:        "One Light",
		SyntaxStyle: "github",
		Colors: Colors{
			Background:           "#fafafa",
			Foreground:           "#383a42",
			LineNumberColor:      "#a0a1a7",
			LineNumberBackground: "#f0f0f1",
			JSONKey:              "#e45649",
			JSONString:           "#50a14f",
			JSONNumber:           "#986801",
			JSONBoolean:          "#4078f2",
			JSONNull:             "#4078f2",
			JSONBrace:            "#383a42",
		},
	},
}

// Get returns the theme for id, falling back to the dark theme.
func Get(id string) Theme {
	if t, ok := themes[id]; ok {
		return t
	}
	return themes[DefaultID]
}

// Exists reports whether id names a known theme.
func Exists(id string) bool {
	_, ok := themes[id]
	return ok
}

// IDs lists the known theme identifiers in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(themes))
	for id := range themes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CSS produces the CSS variable block and token classes for a theme at the given
// font size in pixels.
func CSS(t Theme, fontSize int) string {
	c := t.Colors
	vars := fmt.Sprintf(`  --bg: %s;
  --fg: %s;
  --line-number-color: %s;
  --line-number-bg: %s;
  --json-key: %s;
  --json-string: %s;
  --json-number: %s;
  --json-boolean: %s;
  --json-null: %s;
  --json-brace: %s;
`, c.Background, c.Foreground, c.LineNumberColor, c.LineNumberBackground,
		c.JSONKey, c.JSONString, c.JSONNumber, c.JSONBoolean, c.JSONNull, c.JSONBrace)

	var b strings.Builder
	b.WriteString("html {\n")
	b.WriteString(vars)
	fmt.Fprintf(&b, "  background: %s;\n}\n", c.Background)
	fmt.Fprintf(&b, "body {\n  background: %s;\n  color: %s;\n}\n", c.Background, c.Foreground)
	b.WriteString("#json-format-viewer {\n")
	b.WriteString(vars)
	fmt.Fprintf(&b, "  font-size: %dpx;\n  background: %s;\n  color: %s;\n}\n", fontSize, c.Background, c.Foreground)
	b.WriteString(`.json-key { color: var(--json-key); }
.json-string { color: var(--json-string); }
.json-number { color: var(--json-number); }
.json-boolean { color: var(--json-boolean); }
.json-null { color: var(--json-null); }
.json-brace { color: var(--json-brace); }
`)
	return b.String()
}
