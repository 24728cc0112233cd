package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;Tom &amp; Jerry&#39;s&lt;/a&gt;", Escape(`<a href="x">Tom & Jerry's</a>`))
	assert.Equal(t, "plain", Escape("plain"))
}

func TestLinkify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "balanced parenthesis kept, period trailing",
			in:   Escape(`"see https://example.com/foo_(bar)."`),
			want: `&quot;see <a href="https://example.com/foo_(bar)" class="json-link" target="_blank" rel="noopener noreferrer">https://example.com/foo_(bar)</a>.&quot;`,
		},
		{
			name: "unbalanced closer trimmed",
			in:   Escape(`"(https://example.com/x)"`),
			want: `&quot;(<a href="https://example.com/x" class="json-link" target="_blank" rel="noopener noreferrer">https://example.com/x</a>)&quot;`,
		},
		{
			name: "ampersand decoded in href only",
			in:   Escape(`"https://example.com/?a=1&b=2"`),
			want: `&quot;<a href="https://example.com/?a=1&b=2" class="json-link" target="_blank" rel="noopener noreferrer">https://example.com/?a=1&amp;b=2</a>&quot;`,
		},
		{
			name: "mailto",
			in:   Escape(`"mailto:dev@example.com!"`),
			want: `&quot;<a href="mailto:dev@example.com" class="json-link" target="_blank" rel="noopener noreferrer">mailto:dev@example.com</a>!&quot;`,
		},
		{
			name: "escaped quote ends the url",
			in:   Escape(`"say \"https://example.com\" twice"`),
			want: `&quot;say \&quot;<a href="https://example.com" class="json-link" target="_blank" rel="noopener noreferrer">https://example.com</a>\&quot; twice&quot;`,
		},
		{
			name: "no url",
			in:   Escape(`"nothing here"`),
			want: `&quot;nothing here&quot;`,
		},
		{
			name: "not a string literal",
			in:   "https://example.com",
			want: "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Linkify(tt.in))
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Token
	}{
		{
			name: "key and string",
			line: `  "name": "jsonview",`,
			want: []Token{
				{KindPlain, "  "},
				{KindKey, `"name"`},
				{KindPlain, ": "},
				{KindString, `"jsonview"`},
				{KindPlain, ","},
			},
		},
		{
			name: "number with exponent",
			line: `  "n": -1.5e+10`,
			want: []Token{
				{KindPlain, "  "},
				{KindKey, `"n"`},
				{KindPlain, ": "},
				{KindNumber, "-1.5e+10"},
			},
		},
		{
			name: "literals",
			line: `  "t": true, "f": false, "z": null`,
			want: []Token{
				{KindPlain, "  "},
				{KindKey, `"t"`},
				{KindPlain, ": "},
				{KindBoolean, "true"},
				{KindPlain, ", "},
				{KindKey, `"f"`},
				{KindPlain, ": "},
				{KindBoolean, "false"},
				{KindPlain, ", "},
				{KindKey, `"z"`},
				{KindPlain, ": "},
				{KindNull, "null"},
			},
		},
		{
			name: "array scalars stay plain",
			line: `  [true, false, null, -2]`,
			want: []Token{
				{KindPlain, "  "},
				{KindBrace, "["},
				{KindPlain, "true, false, null, -2"},
				{KindBrace, "]"},
			},
		},
		{
			name: "escaped quote inside key",
			line: `"a\"b": {`,
			want: []Token{
				{KindKey, `"a\"b"`},
				{KindPlain, ": "},
				{KindBrace, "{"},
			},
		},
		{
			name: "array string element",
			line: `    "item"`,
			want: []Token{
				{KindPlain, "    "},
				{KindString, `"item"`},
			},
		},
		{
			name: "fold summary",
			line: `  "b": [ ... ],`,
			want: []Token{
				{KindPlain, "  "},
				{KindKey, `"b"`},
				{KindPlain, ": "},
				{KindBrace, "["},
				{KindPlain, " ... "},
				{KindBrace, "]"},
				{KindPlain, ","},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.line)
			assert.Equal(t, tt.want, got)

			var joined strings.Builder
			for _, tok := range got {
				joined.WriteString(tok.Text)
			}
			assert.Equal(t, tt.line, joined.String())
		})
	}
}

func TestHighlightLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "empty line",
			line: "",
			want: "\u200b",
		},
		{
			name: "key value",
			line: `  "a": 1,`,
			want: `  <span class="json-key">&quot;a&quot;</span>: <span class="json-number">1</span>,`,
		},
		{
			name: "keys are not linkified",
			line: `  "https://k.example": "https://v.example"`,
			want: `  <span class="json-key">&quot;https://k.example&quot;</span>: <span class="json-string">&quot;<a href="https://v.example" class="json-link" target="_blank" rel="noopener noreferrer">https://v.example</a>&quot;</span>`,
		},
		{
			name: "html in string escaped",
			line: `  "<b>"`,
			want: `  <span class="json-string">&quot;&lt;b&gt;&quot;</span>`,
		},
		{
			name: "braces",
			line: `}`,
			want: `<span class="json-brace">}</span>`,
		},
		{
			name: "array number element",
			line: "    1,",
			want: "    1,",
		},
		{
			name: "array boolean element",
			line: "    true,",
			want: "    true,",
		},
		{
			name: "array null element",
			line: "    null",
			want: "    null",
		},
		{
			name: "colon with no space",
			line: `"n":-3`,
			want: `<span class="json-key">&quot;n&quot;</span>:<span class="json-number">-3</span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HighlightLine(tt.line))
		})
	}
}

func TestComputeFoldRangesRoundTrip(t *testing.T) {
	folds := ComputeFoldRanges("{\"a\":1,\n\"b\":[\n1,\n2\n]\n}")

	require.Len(t, folds, 2)
	outer, ok := folds.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 6, outer.EndLine)
	assert.Equal(t, byte('{'), outer.Open)

	inner, ok := folds.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, 5, inner.EndLine)
	assert.Equal(t, byte('['), inner.Open)
	assert.Equal(t, byte(']'), inner.Close)
	assert.Equal(t, `"b":[ ... ]`, CollapsedSummaryText(`"b":[`, "]", '[', ']'))
}

func TestComputeFoldRangesFormatted(t *testing.T) {
	formatted := "{\n  \"a\": 1,\n  \"b\": [\n    1,\n    2\n  ],\n  \"c\": {}\n}"
	folds := ComputeFoldRanges(formatted)

	assert.Equal(t, []int{1, 3}, folds.Starts())
	inner := folds[3]
	assert.Equal(t, 6, inner.EndLine)
	assert.Equal(t,
		`  <span class="json-key">&quot;b&quot;</span>: <span class="json-brace">[</span> ... <span class="json-brace">]</span>,`,
		inner.CollapsedHTML)
	assert.Equal(t, `{ ... }`, CollapsedSummaryText("{", "}", '{', '}'))

	for start, r := range folds {
		assert.Equal(t, start, r.StartLine)
		assert.GreaterOrEqual(t, r.EndLine, r.StartLine+2)
	}

	enclosing, ok := folds.Enclosing(4)
	require.True(t, ok)
	assert.Equal(t, 3, enclosing.StartLine)
	enclosing, ok = folds.Enclosing(7)
	require.True(t, ok)
	assert.Equal(t, 1, enclosing.StartLine)
	_, ok = folds.Enclosing(9)
	assert.False(t, ok)
}

func TestComputeFoldRangesEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		starts []int
	}{
		{name: "single line", text: `{"a": 1, "b": 2}`, starts: []int{}},
		{name: "two lines", text: "[\n]", starts: []int{}},
		{name: "brackets in strings ignored", text: "{\n  \"x\": \"[{\\\"\",\n  \"y\": 1\n}", starts: []int{1}},
		{name: "unmatched closer ignored", text: "]\n{\n  \"a\": 1\n}", starts: []int{2}},
		{name: "first open on a line wins", text: "[{\n  \"a\": 1\n}]", starts: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.starts, ComputeFoldRanges(tt.text).Starts())
		})
	}
}

func TestFirstOpenOnLineClaimsFold(t *testing.T) {
	folds := ComputeFoldRanges("[{\n  \"a\": 1\n}]")
	r := folds[1]
	assert.Equal(t, byte('{'), r.Open, "the inner object closes first and claims the line")
	assert.Equal(t, 3, r.EndLine)
}

func TestCollapsedSummaryUsesLastOpener(t *testing.T) {
	assert.Equal(t, `"x": {"y": [ ... ]`, CollapsedSummaryText(`"x": {"y": [`, "]", '[', ']'))
	assert.Equal(t, `"k[": [ ... ],`, CollapsedSummaryText(`"k[": [ trailing`, "  ],  ", '[', ']'))
}

func TestBuildFormattedHTML(t *testing.T) {
	formatted := "{\n  \"a\": [\n    1\n  ]\n}"
	folds := ComputeFoldRanges(formatted)
	out := BuildFormattedHTML(formatted, folds)

	assert.Equal(t, 5, out.LineCount)
	require.Len(t, out.LineHTML, 5)
	assert.Equal(t, `<span class="json-brace">{</span>`, out.LineHTML[0])

	assert.True(t, strings.HasPrefix(out.HTML,
		`<div class="json-line" data-line-no="1"><span class="json-line-number">`+
			`<button class="json-fold-toggle" type="button" data-fold-start="1" aria-label="Collapse section" aria-expanded="true"></button>`+
			`<span class="json-line-num">1</span></span><span class="json-line-content"><span class="json-brace">{</span></span></div>`))
	assert.Contains(t, out.HTML,
		`<div class="json-line" data-line-no="3"><span class="json-line-number"><span class="json-fold-spacer" aria-hidden="true"></span>`)
	assert.Equal(t, 5, strings.Count(out.HTML, `class="json-line"`))
	assert.Equal(t, 2, strings.Count(out.HTML, "json-fold-toggle"))
}

func TestWriteLineState(t *testing.T) {
	var b strings.Builder
	WriteLine(&b, Line{No: 4, Content: "x", HasFold: true, Collapsed: true, Hidden: true})
	assert.Equal(t,
		`<div class="json-line is-collapsed" data-line-no="4" style="display: none"><span class="json-line-number">`+
			`<button class="json-fold-toggle is-collapsed" type="button" data-fold-start="4" aria-label="Expand section" aria-expanded="false"></button>`+
			`<span class="json-line-num">4</span></span><span class="json-line-content">x</span></div>`,
		b.String())
}

func TestGutterWidth(t *testing.T) {
	assert.Equal(t, "calc(22px + 1ch)", GutterWidth(9))
	assert.Equal(t, "calc(22px + 4ch)", GutterWidth(1204))
}

func BenchmarkHighlightLine(b *testing.B) {
	line := `    "homepage": "https://example.com/docs?page=1&lang=en", "count": 12345, "ok": true`
	for i := 0; i < b.N; i++ {
		HighlightLine(line)
	}
}

func BenchmarkComputeFoldRanges(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("[\n")
	for i := 0; i < 1000; i++ {
		sb.WriteString("  {\n    \"id\": 1,\n    \"tags\": [\n      \"a\"\n    ]\n  },\n")
	}
	sb.WriteString("  {}\n]")
	text := sb.String()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeFoldRanges(text)
	}
}
