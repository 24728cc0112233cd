package render

import (
	"regexp"
	"strings"
)

const escapedQuote = "&quot;"

// urlPattern stops at whitespace or a quote. Inner quotes are already &quot; here,
// so the '"' exclusion only matters for unescaped callers.
var urlPattern = regexp.MustCompile(`(?:https?|ftp)://[^\s"]+|mailto:[^\s"]+`)

// Linkify wraps URL-shaped substrings of an escaped JSON string literal in anchor
// tags. Anything that is not a full &quot;...&quot; literal is returned unchanged.
func Linkify(escaped string) string {
	if len(escaped) < 2*len(escapedQuote) ||
		!strings.HasPrefix(escaped, escapedQuote) ||
		!strings.HasSuffix(escaped, escapedQuote) {
		return escaped
	}

	inner := escaped[len(escapedQuote) : len(escaped)-len(escapedQuote)]
	linked := urlPattern.ReplaceAllStringFunc(inner, linkURL)
	return escapedQuote + linked + escapedQuote
}

func linkURL(candidate string) string {
	url, rest := splitAtEscapedQuote(candidate)
	trimmed := trimURL(url)
	if trimmed == "" {
		return candidate
	}
	trailing := url[len(trimmed):] + rest
	href := strings.ReplaceAll(trimmed, "&amp;", "&")

	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(href)
	b.WriteString(`" class="json-link" target="_blank" rel="noopener noreferrer">`)
	b.WriteString(trimmed)
	b.WriteString("</a>")
	b.WriteString(trailing)
	return b.String()
}

// splitAtEscapedQuote ends a URL at an escaped quote (\" in the JSON source)
// inside the literal.
func splitAtEscapedQuote(candidate string) (string, string) {
	idx := strings.Index(candidate, escapedQuote)
	if idx < 0 {
		return candidate, ""
	}
	if idx > 0 && candidate[idx-1] == '\\' {
		idx--
	}
	return candidate[:idx], candidate[idx:]
}

// trimURL strips trailing punctuation, and closing brackets only while they are
// unbalanced, so "foo_(bar)." keeps its parenthesis but loses the period.
func trimURL(url string) string {
	balance := map[byte]int{}
	for i := 0; i < len(url); i++ {
		switch url[i] {
		case '(', '[', '{':
			balance[url[i]]++
		case ')':
			balance['(']--
		case ']':
			balance['[']--
		case '}':
			balance['{']--
		}
	}

	trimmed := url
	for len(trimmed) > 0 {
		last := trimmed[len(trimmed)-1]
		switch last {
		case ')', ']', '}':
			open := openerFor(last)
			if balance[open] >= 0 {
				return trimmed
			}
			balance[open]++
		case '.', ',', '!', '?', ';', ':', '"', '\'':
		default:
			return trimmed
		}
		trimmed = trimmed[:len(trimmed)-1]
	}
	return trimmed
}

func openerFor(closer byte) byte {
	switch closer {
	case ')':
		return '('
	case ']':
		return '['
	default:
		return '{'
	}
}
