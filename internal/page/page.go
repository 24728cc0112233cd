// Package page renders a session as a standalone HTML document with the viewer
// markup, theme CSS and toolbar.
package page

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/yosssi/gohtml"

	"github.com/cnharrison/jsonview/internal/export"
	"github.com/cnharrison/jsonview/internal/render"
	"github.com/cnharrison/jsonview/internal/session"
	"github.com/cnharrison/jsonview/internal/theme"
)

//go:embed base.css
var baseCSS string

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style id="json-formtr-base-css">{{.BaseCSS}}</style>
<style id="json-formtr-theme-css">{{.ThemeCSS}}</style>
</head>
<body>
<div id="json-formtr-toolbar"><div class="json-toolbar-left"><span id="json-formtr-line-count">{{.LineCount}}</span></div><div class="json-toolbar-right">
{{- range .Buttons}}<button class="json-toolbar-btn" type="button" data-action="{{.Action}}"{{if .Disabled}} disabled{{end}}>{{.Label}}</button>{{end -}}
</div></div>
{{if .Raw}}<pre id="json-format-viewer" class="raw">{{.RawText}}</pre>{{else}}<div id="json-format-viewer" style="--line-number-width: {{.Gutter}}">{{.Lines}}</div>{{end}}
{{if .Toast}}<div class="json-formtr-toast show">{{.Toast}}</div>{{end}}
</body>
</html>
`))

// Options control page rendering.
type Options struct {
	// Location is the document URL used for the title.
	Location string
	// Title is the existing page title; it is replaced only when generic.
	Title    string
	Theme    theme.Theme
	FontSize int
	// Toast is shown in the toast container when set.
	Toast string
	// IndentHTML pretty-prints the markup for reading. Line whitespace is not
	// preserved, so the result is not meant for display.
	IndentHTML bool
}

type button struct {
	Action   string
	Label    string
	Disabled bool
}

type pageData struct {
	Title     string
	BaseCSS   template.CSS
	ThemeCSS  template.CSS
	LineCount string
	Buttons   []button
	Raw       bool
	RawText   string
	Gutter    template.CSS
	Lines     template.HTML
	Toast     string
}

// Render produces the page for sess with its current mode and fold state applied.
func Render(sess *session.Session, opts Options) (string, error) {
	doc := sess.Document()

	title := opts.Title
	if export.ShouldReplaceTitle(title) {
		title = export.PageTitle(opts.Location)
	}

	foldsEnabled := sess.FoldControlsEnabled()
	data := pageData{
		Title:     title,
		BaseCSS:   template.CSS(baseCSS),
		ThemeCSS:  template.CSS(theme.CSS(opts.Theme, opts.FontSize)),
		LineCount: sess.LineCountLabel(),
		Buttons: []button{
			{Action: "copy", Label: "Copy"},
			{Action: "download", Label: "Download"},
			{Action: "collapse-all", Label: "Collapse all", Disabled: !foldsEnabled},
			{Action: "expand-all", Label: "Expand all", Disabled: !foldsEnabled},
			{Action: "toggle", Label: sess.ToggleLabel()},
		},
		Raw:   sess.ShowingRaw(),
		Toast: opts.Toast,
	}

	if data.Raw {
		data.RawText = doc.Original
	} else {
		dom := NewDOM(doc.Rendered, doc.Folds)
		sess.Apply(sess.NewViewer(), dom)
		data.Lines = template.HTML(dom.HTML())
		data.Gutter = template.CSS(render.GutterWidth(doc.LineCount()))
	}

	var b strings.Builder
	if err := pageTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}

	out := b.String()
	if opts.IndentHTML {
		out = gohtml.Format(out)
	}
	return out, nil
}
