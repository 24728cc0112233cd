package page

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnharrison/jsonview/internal/format"
	"github.com/cnharrison/jsonview/internal/session"
	"github.com/cnharrison/jsonview/internal/theme"
)

const body = `{"name":"jsonview","tags":["a","b"],"home":"https://example.com/x"}`

func newSession(t *testing.T, text string) *session.Session {
	t.Helper()
	formatter := format.NewContentFormatter()
	return session.New(session.NewDocument(text, "application/json", formatter), formatter)
}

func TestDOMStartsAsBuiltMarkup(t *testing.T) {
	s := newSession(t, body)
	doc := s.Document()

	dom := NewDOM(doc.Rendered, doc.Folds)
	assert.Equal(t, doc.Rendered.HTML, dom.HTML())

	s.Apply(s.NewViewer(), dom)
	assert.Equal(t, doc.Rendered.HTML, dom.HTML(), "applying the expanded state changes nothing")
}

func TestDOMCollapseExpandRoundTrip(t *testing.T) {
	s := newSession(t, body)
	doc := s.Document()
	dom := NewDOM(doc.Rendered, doc.Folds)
	viewer := s.NewViewer()
	s.Apply(viewer, dom)
	before := dom.HTML()

	require.True(t, s.ToggleFold(3))
	s.Apply(viewer, dom)
	collapsed := dom.HTML()
	assert.Contains(t, collapsed, `<div class="json-line is-collapsed" data-line-no="3">`)
	assert.Contains(t, collapsed, `data-fold-start="3" aria-label="Expand section" aria-expanded="false"`)
	assert.Contains(t, collapsed, `<div class="json-line" data-line-no="4" style="display: none">`)
	assert.Equal(t, []int{1, 2, 3, 7, 8}, dom.VisibleLines())

	require.True(t, s.ToggleFold(3))
	s.Apply(viewer, dom)
	assert.Equal(t, before, dom.HTML())
}

func TestDOMCollapseAllExpandAll(t *testing.T) {
	s := newSession(t, body)
	doc := s.Document()
	dom := NewDOM(doc.Rendered, doc.Folds)
	viewer := s.NewViewer()
	before := dom.HTML()

	s.CollapseAll()
	s.Apply(viewer, dom)
	assert.Equal(t, []int{1}, dom.VisibleLines())
	line, ok := dom.Line(1)
	require.True(t, ok)
	assert.True(t, line.Collapsed)

	s.ExpandAll()
	s.Apply(viewer, dom)
	assert.Equal(t, before, dom.HTML())
}

func TestRenderFormatted(t *testing.T) {
	s := newSession(t, body)
	s.ToggleFold(3)

	out, err := Render(s, Options{
		Location: "https://api.example.com/v1/pkg",
		Theme:    theme.Get("light"),
		FontSize: 14,
	})
	require.NoError(t, err)

	assert.Contains(t, out, "<title>JSON - api.example.com/v1/pkg</title>")
	assert.Contains(t, out, `<span id="json-formtr-line-count">8 lines</span>`)
	assert.Contains(t, out, `style="--line-number-width: calc(22px + 1ch)"`)
	assert.Contains(t, out, "--bg: #fafafa;")
	assert.Contains(t, out, "font-size: 14px;")
	assert.Contains(t, out, `data-action="collapse-all">Collapse all</button>`)
	assert.Contains(t, out, `data-action="toggle">Raw</button>`)
	assert.Contains(t, out, `<div class="json-line is-collapsed" data-line-no="3">`)
	assert.Contains(t, out, `<a href="https://example.com/x" class="json-link" target="_blank" rel="noopener noreferrer">`)
	assert.NotContains(t, out, `<div class="json-formtr-toast`)
}

func TestRenderRaw(t *testing.T) {
	s := newSession(t, body)
	s.ToggleRaw()

	out, err := Render(s, Options{Title: "Package API", Theme: theme.Get("dark"), FontSize: 16, Toast: "Copied formatted JSON"})
	require.NoError(t, err)

	assert.Contains(t, out, "<title>Package API</title>")
	assert.Contains(t, out, `<pre id="json-format-viewer" class="raw">{&#34;name&#34;:&#34;jsonview&#34;`)
	assert.Contains(t, out, `data-action="collapse-all" disabled>Collapse all</button>`)
	assert.Contains(t, out, `data-action="toggle">Formatted</button>`)
	assert.Contains(t, out, `<span id="json-formtr-line-count">1 line</span>`)
	assert.Contains(t, out, `<div class="json-formtr-toast show">Copied formatted JSON</div>`)
	assert.NotContains(t, out, `<span class="json-line-number">`)
}

func TestRenderIndent(t *testing.T) {
	s := newSession(t, body)

	out, err := Render(s, Options{Theme: theme.Get("dark"), FontSize: 16, IndentHTML: true})
	require.NoError(t, err)
	assert.Contains(t, out, "<title>")
	assert.Greater(t, strings.Count(out, "\n"), 20)
}
