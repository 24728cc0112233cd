package ui

import (
	"testing"

	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
)

func TestHighlightRaw(t *testing.T) {
	out := highlightRaw(`<p class="x">hi</p>`, "html", "monokai")
	assert.Contains(t, out, "[#", "tags are coloured")
	assert.Contains(t, out, "hi")
}

func TestHighlightRawEscapesBrackets(t *testing.T) {
	out := highlightRaw("see [red] here", "text", "github")
	assert.NotContains(t, out, "see [red] here")
	assert.Contains(t, out, tview.Escape("[red]"))
}

func TestHighlightRawBinary(t *testing.T) {
	text := "\x00\x01[x]"
	assert.Equal(t, tview.Escape(text), highlightRaw(text, "binary", "monokai"))
}

func TestHighlightRawUnknownStyle(t *testing.T) {
	out := highlightRaw(`{"a": 1}`, "json", "no-such-style")
	assert.Contains(t, out, "1")
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		language string
		want     string
	}{
		{"json", "json"},
		{"html", "html"},
		{"xml", "xml"},
		{"javascript", "js"},
		{"css", "css"},
		{"text", "txt"},
		{"binary", "txt"},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			assert.Equal(t, tt.want, extensionFor(tt.language))
		})
	}
}
