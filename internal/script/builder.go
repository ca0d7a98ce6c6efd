package script

import (
	"fmt"
	"strings"
)

// Builder assembles an OmniJS script body line by line.
// The zero value is ready to use.
type Builder struct {
	sb     strings.Builder
	indent int
}

// Line appends a single line at the current indentation level.
func (b *Builder) Line(s string) *Builder {
	for i := 0; i < b.indent; i++ {
		b.sb.WriteString("  ")
	}
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
	return b
}

// Linef appends a formatted line at the current indentation level.
func (b *Builder) Linef(format string, args ...any) *Builder {
	return b.Line(fmt.Sprintf(format, args...))
}

// In increases the indentation level for subsequent lines.
func (b *Builder) In() *Builder {
	b.indent++
	return b
}

// Out decreases the indentation level for subsequent lines.
func (b *Builder) Out() *Builder {
	if b.indent > 0 {
		b.indent--
	}
	return b
}

// String returns the accumulated script body.
func (b *Builder) String() string {
	return b.sb.String()
}

// Envelope wraps an OmniJS body into the uniform result protocol. The body
// must end by returning the data value for the operation; exceptions thrown
// inside it (including deliberate throws for missing objects) are captured as
// {"ok":false,"error":...} rather than aborting the script.
func Envelope(body string) string {
	var sb strings.Builder
	sb.WriteString("JSON.stringify((() => {\n")
	sb.WriteString("  try {\n")
	sb.WriteString("    const run = () => {\n")
	sb.WriteString(body)
	sb.WriteString("    };\n")
	sb.WriteString("    return {ok: true, data: run()};\n")
	sb.WriteString("  } catch (err) {\n")
	sb.WriteString("    return {ok: false, error: String(err && err.message ? err.message : err)};\n")
	sb.WriteString("  }\n")
	sb.WriteString("})())\n")
	return sb.String()
}

// WrapJXA embeds an OmniJS body into the JXA harness executed by osascript.
//
// The harness targets OmniFocus and hands the body to the application's own
// JavaScript interpreter via evaluateJavascript. osascript prints the value
// of the final expression, so the harness simply returns what the body
// produced; bodies are expected to end in JSON.stringify(...).
func WrapJXA(body string) string {
	var sb strings.Builder
	sb.WriteString("const app = Application(\"OmniFocus\");\n")
	sb.WriteString("app.includeStandardAdditions = true;\n")
	sb.WriteString("app.evaluateJavascript(")
	sb.WriteString(Quote(body))
	sb.WriteString(");\n")
	return sb.String()
}
