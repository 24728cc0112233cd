package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// writeValue serializes v the way a parse followed by a two-space indented
// stringify would: objects keep the first position of each key with the last
// value given for it, numbers print in shortest form.
func writeValue(b *strings.Builder, v gjson.Result, depth int) {
	switch {
	case v.IsObject():
		writeObject(b, v, depth)
	case v.IsArray():
		writeArray(b, v, depth)
	case v.Type == gjson.String:
		writeString(b, v.String())
	case v.Type == gjson.Number:
		b.WriteString(formatNumber(v.Raw))
	case v.Type == gjson.True:
		b.WriteString("true")
	case v.Type == gjson.False:
		b.WriteString("false")
	default:
		b.WriteString("null")
	}
}

func writeObject(b *strings.Builder, v gjson.Result, depth int) {
	var keys []string
	values := map[string]gjson.Result{}
	v.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if _, seen := values[k]; !seen {
			keys = append(keys, k)
		}
		values[k] = value
		return true
	})

	if len(keys) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(",\n")
		}
		writeIndent(b, depth+1)
		writeString(b, k)
		b.WriteString(": ")
		writeValue(b, values[k], depth+1)
	}
	b.WriteString("\n")
	writeIndent(b, depth)
	b.WriteString("}")
}

func writeArray(b *strings.Builder, v gjson.Result, depth int) {
	items := v.Array()
	if len(items) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteString("[\n")
	for i, item := range items {
		if i > 0 {
			b.WriteString(",\n")
		}
		writeIndent(b, depth+1)
		writeValue(b, item, depth+1)
	}
	b.WriteString("\n")
	writeIndent(b, depth)
	b.WriteString("]")
}

func writeIndent(b *strings.Builder, depth int) {
	for range depth {
		b.WriteString(indent)
	}
}

// writeString quotes s with the minimal escapes: quote, backslash, the short
// control escapes and \u00xx for the remaining control characters.
func writeString(b *strings.Builder, s string) {
	const hex = "0123456789abcdef"
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hex[c>>4])
				b.WriteByte(hex[c&0xf])
				continue
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
}

// formatNumber prints a JSON number as the shortest decimal that round-trips
// through a float64: plain digits up to 21 integer places, exponent form for
// very large or very small magnitudes. Values that overflow become null.
func formatNumber(raw string) string {
	f, _ := strconv.ParseFloat(raw, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "null"
	}
	if f == 0 {
		return "0"
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	// d.ddde±x
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, expText, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expText)
	digits := strings.Replace(mantissa, ".", "", 1)
	k := len(digits)
	n := exp + 1

	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}

	out := sign + digits[:1]
	if k > 1 {
		out += "." + digits[1:]
	}
	if n-1 >= 0 {
		return out + "e+" + strconv.Itoa(n-1)
	}
	return out + "e-" + strconv.Itoa(1-n)
}
