package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rivo/tview"
)

// highlightRaw colours text for a TextView with dynamic colors. language is a
// content kind from format.DetectContentType; binary bodies are only escaped.
func highlightRaw(text, language, styleName string) string {
	if language == "binary" {
		return tview.Escape(text)
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return tview.Escape(text)
	}

	var b strings.Builder
	var run strings.Builder
	current := ""
	flush := func() {
		if run.Len() == 0 {
			return
		}
		escaped := tview.Escape(run.String())
		if current == "" {
			b.WriteString(escaped)
		} else {
			b.WriteString("[" + current + "]" + escaped + "[-]")
		}
		run.Reset()
	}

	for _, token := range iterator.Tokens() {
		colour := ""
		if entry := style.Get(token.Type); entry.Colour.IsSet() {
			colour = entry.Colour.String()
		}
		if colour != current {
			flush()
			current = colour
		}
		run.WriteString(token.Value)
	}
	flush()
	return b.String()
}

// extensionFor maps a content kind to a file extension for the editor.
func extensionFor(language string) string {
	switch language {
	case "json":
		return "json"
	case "html":
		return "html"
	case "xml":
		return "xml"
	case "javascript":
		return "js"
	case "css":
		return "css"
	default:
		return "txt"
	}
}
