package script

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  `""`,
		},
		{
			name:  "plain text",
			input: "Buy milk",
			want:  `"Buy milk"`,
		},
		{
			name:  "double quotes",
			input: `say "hello"`,
			want:  `"say \"hello\""`,
		},
		{
			name:  "backslash",
			input: `C:\temp`,
			want:  `"C:\\temp"`,
		},
		{
			name:  "backslash before quote",
			input: `\"`,
			want:  `"\\\""`,
		},
		{
			name:  "newline",
			input: "line one\nline two",
			want:  `"line one\nline two"`,
		},
		{
			name:  "carriage return and tab",
			input: "a\r\tb",
			want:  `"a\r\tb"`,
		},
		{
			name:  "control character",
			input: "a\x00b",
			want:  `"a\u0000b"`,
		},
		{
			name:  "vertical tab",
			input: "a\x0bb",
			want:  `"a\u000bb"`,
		},
		{
			name:  "line separator",
			input: "a\u2028b",
			want:  `"a\u2028b"`,
		},
		{
			name:  "paragraph separator",
			input: "a\u2029b",
			want:  `"a\u2029b"`,
		},
		{
			name:  "unicode passes through",
			input: "Déjà vu ✓",
			want:  `"Déjà vu ✓"`,
		},
		{
			name:  "script injection attempt",
			input: `"); app.quit(); ("`,
			want:  `"\"); app.quit(); (\""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quote(tt.input)
			if got != tt.want {
				t.Errorf("Quote(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// TestQuoteRoundTrip verifies that quoted values decode back to the original
// string under JSON rules, since every escape Quote emits is also valid JSON.
func TestQuoteRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		`quotes " and \ slashes`,
		"multi\nline\nnote\twith tabs",
		"control \x01\x02\x1f chars",
		"separators \u2028 and \u2029",
		"emoji 🎯 and accents éàü",
	}

	for _, input := range inputs {
		quoted := Quote(input)
		var decoded string
		if err := json.Unmarshal([]byte(quoted), &decoded); err != nil {
			t.Errorf("Quote(%q) produced invalid JSON literal %s: %v", input, quoted, err)
			continue
		}
		if decoded != input {
			t.Errorf("round trip of %q: got %q", input, decoded)
		}
	}
}

func TestQuoteDate(t *testing.T) {
	if got := QuoteDate(time.Time{}); got != "null" {
		t.Errorf("QuoteDate(zero) = %q, want null", got)
	}

	ts := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	got := QuoteDate(ts)
	want := `new Date("2026-03-15T09:30:00Z")`
	if got != want {
		t.Errorf("QuoteDate() = %q, want %q", got, want)
	}
}

func TestBoolAndInt(t *testing.T) {
	if got := Bool(true); got != "true" {
		t.Errorf("Bool(true) = %q", got)
	}
	if got := Bool(false); got != "false" {
		t.Errorf("Bool(false) = %q", got)
	}
	if got := Int(-42); got != "-42" {
		t.Errorf("Int(-42) = %q", got)
	}
}

func TestStringArray(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{
			name:  "nil",
			input: nil,
			want:  "[]",
		},
		{
			name:  "single",
			input: []string{"home"},
			want:  `["home"]`,
		},
		{
			name:  "multiple with escapes",
			input: []string{"work", `urgent "now"`},
			want:  `["work", "urgent \"now\""]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StringArray(tt.input); got != tt.want {
				t.Errorf("StringArray(%v) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuoteNeverEmitsRawNewline(t *testing.T) {
	inputs := []string{"a\nb", "a\rb", "a\u2028b", "a\u2029b"}
	for _, input := range inputs {
		quoted := Quote(input)
		if strings.ContainsAny(quoted, "\n\r") || strings.ContainsRune(quoted, '\u2028') || strings.ContainsRune(quoted, '\u2029') {
			t.Errorf("Quote(%q) contains a raw line terminator: %q", input, quoted)
		}
	}
}
