package render

// TokenKind identifies the syntactic role of a run of characters on one line.
type TokenKind int

const (
	KindPlain TokenKind = iota
	KindKey
	KindString
	KindNumber
	KindBoolean
	KindNull
	KindBrace
)

// Class returns the CSS class used for the kind, or "" for plain text.
func (k TokenKind) Class() string {
	switch k {
	case KindKey:
		return "json-key"
	case KindString:
		return "json-string"
	case KindNumber:
		return "json-number"
	case KindBoolean:
		return "json-boolean"
	case KindNull:
		return "json-null"
	case KindBrace:
		return "json-brace"
	default:
		return ""
	}
}

// Token is a run of raw (unescaped) text with a single kind.
type Token struct {
	Kind TokenKind
	Text string
}

// Tokenize splits one line of formatted JSON into tokens. It never fails: text it
// does not recognise (separators, the "..." of a fold summary, stray characters)
// comes back as plain runs, and concatenating all token texts yields the input.
// Numbers, booleans and null are only classified as object values, after a
// colon; array elements stay plain.
func Tokenize(line string) []Token {
	var tokens []Token
	plainStart := -1

	flushPlain := func(end int) {
		if plainStart >= 0 && end > plainStart {
			tokens = append(tokens, Token{Kind: KindPlain, Text: line[plainStart:end]})
		}
		plainStart = -1
	}
	emit := func(kind TokenKind, start, end int) {
		flushPlain(start)
		tokens = append(tokens, Token{Kind: kind, Text: line[start:end]})
	}

	i := 0
	for i < len(line) {
		ch := line[i]
		switch {
		case ch == '"':
			end := scanString(line, i)
			kind := KindString
			if followedByColon(line, end) {
				kind = KindKey
			}
			emit(kind, i, end)
			i = end
		case ch == '{' || ch == '}' || ch == '[' || ch == ']':
			emit(KindBrace, i, i+1)
			i++
		case (ch == '-' || isDigit(ch)) && precededByColon(line, i):
			if end := scanNumber(line, i); end > i {
				emit(KindNumber, i, end)
				i = end
				continue
			}
			if plainStart < 0 {
				plainStart = i
			}
			i++
		case (ch == 't' || ch == 'f' || ch == 'n') && precededByColon(line, i):
			if word, kind := scanLiteral(line, i); word != "" {
				emit(kind, i, i+len(word))
				i += len(word)
				continue
			}
			if plainStart < 0 {
				plainStart = i
			}
			i++
		default:
			if plainStart < 0 {
				plainStart = i
			}
			i++
		}
	}
	flushPlain(len(line))
	return tokens
}

// scanString returns the index just past the closing quote of the string literal
// starting at start, or len(line) when the literal is unterminated.
func scanString(line string, start int) int {
	escaped := false
	for i := start + 1; i < len(line); i++ {
		switch {
		case escaped:
			escaped = false
		case line[i] == '\\':
			escaped = true
		case line[i] == '"':
			return i + 1
		}
	}
	return len(line)
}

func followedByColon(line string, pos int) bool {
	for pos < len(line) && (line[pos] == ' ' || line[pos] == '\t') {
		pos++
	}
	return pos < len(line) && line[pos] == ':'
}

// precededByColon reports whether the last non-blank character before pos is ':'.
func precededByColon(line string, pos int) bool {
	for pos > 0 && (line[pos-1] == ' ' || line[pos-1] == '\t') {
		pos--
	}
	return pos > 0 && line[pos-1] == ':'
}

// scanNumber matches -?digits(.digits)?([eE][+-]?digits)? and returns the end
// index, or start when nothing number-shaped begins there.
func scanNumber(line string, start int) int {
	i := start
	if i < len(line) && line[i] == '-' {
		i++
	}
	digits := i
	for i < len(line) && isDigit(line[i]) {
		i++
	}
	if i == digits {
		return start
	}
	if i+1 < len(line) && line[i] == '.' && isDigit(line[i+1]) {
		i++
		for i < len(line) && isDigit(line[i]) {
			i++
		}
	}
	if i < len(line) && (line[i] == 'e' || line[i] == 'E') {
		j := i + 1
		if j < len(line) && (line[j] == '+' || line[j] == '-') {
			j++
		}
		if j < len(line) && isDigit(line[j]) {
			for j < len(line) && isDigit(line[j]) {
				j++
			}
			i = j
		}
	}
	if i < len(line) && isWordChar(line[i]) {
		return start
	}
	return i
}

func scanLiteral(line string, start int) (string, TokenKind) {
	if start > 0 && isWordChar(line[start-1]) {
		return "", KindPlain
	}
	for _, lit := range []struct {
		word string
		kind TokenKind
	}{
		{"true", KindBoolean},
		{"false", KindBoolean},
		{"null", KindNull},
	} {
		end := start + len(lit.word)
		if end > len(line) || line[start:end] != lit.word {
			continue
		}
		if end < len(line) && isWordChar(line[end]) {
			continue
		}
		return lit.word, lit.kind
	}
	return "", KindPlain
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWordChar(ch byte) bool {
	return isDigit(ch) || ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
