package render

import "strings"

// zeroWidthSpace stands in for empty lines so they keep their height
const zeroWidthSpace = "\u200b"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape makes raw text safe to embed in HTML. Quote characters become &quot;,
// which is the delimiter every later pass looks for.
func Escape(text string) string {
	return htmlEscaper.Replace(text)
}
