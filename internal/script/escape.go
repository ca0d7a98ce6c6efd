package script

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Quote renders s as a double-quoted JavaScript string literal.
//
// Beyond the escapes required by the grammar (backslash, double quote), it
// escapes all C0 control characters and the line separators U+2028/U+2029,
// which terminate a line in JavaScript source even though they are valid in
// JSON strings. The result is safe to splice into both OmniJS and JXA source.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028':
			sb.WriteString(`\u2028`)
		case '\u2029':
			sb.WriteString(`\u2029`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// QuoteDate renders t as a JavaScript Date constructor call, or null for the
// zero time. OmniFocus accepts RFC 3339 timestamps in Date construction.
func QuoteDate(t time.Time) string {
	if t.IsZero() {
		return "null"
	}
	return fmt.Sprintf("new Date(%s)", Quote(t.Format(time.RFC3339)))
}

// Bool renders b as a JavaScript boolean literal.
func Bool(b bool) string {
	return strconv.FormatBool(b)
}

// Int renders n as a JavaScript number literal.
func Int(n int) string {
	return strconv.Itoa(n)
}

// StringArray renders items as a JavaScript array of string literals.
func StringArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = Quote(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
