// Package session holds the view-model of one rendered JSON body: the immutable
// document and the presentation state layered over it.
package session

import (
	"strings"

	"github.com/cnharrison/jsonview/internal/format"
	"github.com/cnharrison/jsonview/internal/render"
)

// Document is the canonical form of one input body. It is computed once and
// never edited; line numbers are fixed for its lifetime.
type Document struct {
	Original    string
	ContentType string
	IsJSON      bool
	Formatted   string
	Lines       []string
	Folds       render.FoldIndex
	Rendered    render.Formatted
}

// NewDocument formats body and builds its fold index and line HTML. Bodies that
// are not JSON keep Formatted equal to the trimmed original and get no folds.
func NewDocument(body, contentType string, formatter *format.ContentFormatter) *Document {
	original := strings.TrimSpace(body)
	doc := &Document{
		Original:    original,
		ContentType: contentType,
		IsJSON:      formatter.IsLikelyJSON(original, contentType),
	}

	doc.Formatted = original
	if doc.IsJSON {
		doc.Formatted = formatter.FormatJSON(original)
		doc.Folds = render.ComputeFoldRanges(doc.Formatted)
	} else {
		doc.Folds = render.FoldIndex{}
	}
	doc.Lines = strings.Split(doc.Formatted, "\n")
	doc.Rendered = render.BuildFormattedHTML(doc.Formatted, doc.Folds)
	return doc
}

// LineCount returns the number of formatted lines.
func (d *Document) LineCount() int {
	return d.Rendered.LineCount
}
