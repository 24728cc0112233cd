package render

import "strings"

// HighlightLine escapes one line of formatted JSON and wraps its tokens in the
// json-* spans. String values are linkified; keys never are. An empty line
// renders as a zero-width space so it keeps its height.
func HighlightLine(line string) string {
	if line == "" {
		return zeroWidthSpace
	}

	var b strings.Builder
	b.Grow(len(line) * 2)
	for _, tok := range Tokenize(line) {
		escaped := Escape(tok.Text)
		if tok.Kind == KindPlain {
			b.WriteString(escaped)
			continue
		}
		if tok.Kind == KindString {
			escaped = Linkify(escaped)
		}
		b.WriteString(`<span class="`)
		b.WriteString(tok.Kind.Class())
		b.WriteString(`">`)
		b.WriteString(escaped)
		b.WriteString("</span>")
	}
	return b.String()
}
