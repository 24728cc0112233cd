package theme

import (
	"github.com/gdamore/tcell/v2"

	"github.com/cnharrison/jsonview/internal/render"
)

// Palette is a theme resolved to terminal colors.
type Palette struct {
	Background tcell.Color
	Foreground tcell.Color
	LineNumber tcell.Color
	Gutter     tcell.Color
	kinds      map[render.TokenKind]tcell.Color
}

// NewPalette converts a theme's hex colors to tcell colors.
func NewPalette(t Theme) Palette {
	c := t.Colors
	return Palette{
		Background: tcell.GetColor(c.Background),
		Foreground: tcell.GetColor(c.Foreground),
		LineNumber: tcell.GetColor(c.LineNumberColor),
		Gutter:     tcell.GetColor(c.LineNumberBackground),
		kinds: map[render.TokenKind]tcell.Color{
			render.KindKey:     tcell.GetColor(c.JSONKey),
			render.KindString:  tcell.GetColor(c.JSONString),
			render.KindNumber:  tcell.GetColor(c.JSONNumber),
			render.KindBoolean: tcell.GetColor(c.JSONBoolean),
			render.KindNull:    tcell.GetColor(c.JSONNull),
			render.KindBrace:   tcell.GetColor(c.JSONBrace),
		},
	}
}

// ColorFor returns the color of a token kind; plain text uses the foreground.
func (p Palette) ColorFor(kind render.TokenKind) tcell.Color {
	if color, ok := p.kinds[kind]; ok {
		return color
	}
	return p.Foreground
}
