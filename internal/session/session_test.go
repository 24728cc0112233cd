package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnharrison/jsonview/internal/format"
	"github.com/cnharrison/jsonview/internal/view"
)

const body = `{"a":1,"b":[1,2],"c":{"d":"https://example.com"}}`

func newSession(t *testing.T, text, contentType string) *Session {
	t.Helper()
	formatter := format.NewContentFormatter()
	return New(NewDocument(text, contentType, formatter), formatter)
}

func TestNewDocument(t *testing.T) {
	formatter := format.NewContentFormatter()
	doc := NewDocument("  "+body+"\n", "application/json", formatter)

	assert.True(t, doc.IsJSON)
	assert.Equal(t, body, doc.Original)
	assert.Equal(t, 10, doc.LineCount())
	assert.Len(t, doc.Lines, 10)
	assert.Equal(t, []int{1, 3, 7}, doc.Folds.Starts())
	assert.Len(t, doc.Rendered.LineHTML, 10)
}

func TestNewDocumentNonJSON(t *testing.T) {
	formatter := format.NewContentFormatter()
	doc := NewDocument("<html>\n</html>\n", "text/html", formatter)

	assert.False(t, doc.IsJSON)
	assert.Equal(t, "<html>\n</html>", doc.Formatted)
	assert.Empty(t, doc.Folds)
}

func TestSessionRawToggle(t *testing.T) {
	s := newSession(t, body, "")

	assert.False(t, s.ShowingRaw())
	assert.Equal(t, "Raw", s.ToggleLabel())
	assert.Equal(t, "10 lines", s.LineCountLabel())
	assert.True(t, s.FoldControlsEnabled())

	require.True(t, s.ToggleFold(3))
	assert.True(t, s.ToggleRaw())
	assert.Equal(t, "Formatted", s.ToggleLabel())
	assert.Equal(t, "1 line", s.LineCountLabel())
	assert.False(t, s.FoldControlsEnabled())
	assert.False(t, s.ToggleFold(7), "folds cannot change while raw")
	assert.False(t, s.CollapseAll())

	assert.False(t, s.ToggleRaw())
	assert.True(t, s.FoldState().IsCollapsed(3), "fold state survives the round trip")
}

func TestSessionNonJSONStaysRaw(t *testing.T) {
	s := newSession(t, "plain text", "text/plain")

	assert.True(t, s.ShowingRaw())
	assert.True(t, s.ToggleRaw())
	assert.False(t, s.FoldControlsEnabled())
	assert.Equal(t, "plain text", s.MinifiedText())
}

func TestSessionNoFolds(t *testing.T) {
	s := newSession(t, `[]`, "")

	assert.False(t, s.FoldControlsEnabled())
	assert.False(t, s.CollapseAll())
	assert.False(t, s.ExpandAll())
	assert.False(t, s.ToggleFold(1))
}

func TestSessionCollapseAllExpandAll(t *testing.T) {
	s := newSession(t, body, "")

	require.True(t, s.CollapseAll())
	assert.Equal(t, []int{1, 3, 7}, s.FoldState().Collapsed())
	require.True(t, s.ExpandAll())
	assert.Zero(t, s.FoldState().Len())
}

func TestSessionCopy(t *testing.T) {
	s := newSession(t, body, "")

	assert.Equal(t, s.Document().Formatted, s.CopyText())
	assert.Equal(t, body, s.MinifiedText())

	s.ToggleFold(3)
	text, ok := s.CopySelection([]view.SelectionRange{view.LineSpan{Start: 3, End: 3}})
	require.True(t, ok)
	assert.Equal(t, "  \"b\": [\n    1,\n    2\n  ],", text)

	s.ToggleRaw()
	_, ok = s.CopySelection([]view.SelectionRange{view.LineSpan{Start: 3, End: 3}})
	assert.False(t, ok, "raw selections use the native copy")
}

func TestSessionRevealLine(t *testing.T) {
	s := newSession(t, body, "")
	require.True(t, s.CollapseAll())

	assert.False(t, s.RevealLine(1), "a fold's first line stays visible")
	assert.True(t, s.RevealLine(8))
	assert.Equal(t, []int{3}, s.FoldState().Collapsed())
	assert.False(t, s.RevealLine(8), "already visible")
}
