package script

import (
	"strings"
	"testing"
)

func TestBuilder(t *testing.T) {
	var b Builder
	b.Line("const task = new Task(\"x\");")
	b.Line("if (task) {").In()
	b.Linef("task.flagged = %s;", Bool(true))
	b.Out().Line("}")

	want := "const task = new Task(\"x\");\n" +
		"if (task) {\n" +
		"  task.flagged = true;\n" +
		"}\n"
	if got := b.String(); got != want {
		t.Errorf("Builder output:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuilderOutAtZero(t *testing.T) {
	var b Builder
	b.Out().Line("x")
	if got := b.String(); got != "x\n" {
		t.Errorf("Out() below zero changed indentation: %q", got)
	}
}

func TestEnvelope(t *testing.T) {
	body := "      return {count: flattenedTasks.length};\n"
	wrapped := Envelope(body)

	if !strings.HasPrefix(wrapped, "JSON.stringify((() => {") {
		t.Errorf("Envelope missing JSON.stringify prelude:\n%s", wrapped)
	}
	if !strings.Contains(wrapped, body) {
		t.Errorf("Envelope lost the body:\n%s", wrapped)
	}
	if !strings.Contains(wrapped, "return {ok: true, data: run()};") {
		t.Errorf("Envelope missing success branch:\n%s", wrapped)
	}
	if !strings.Contains(wrapped, "return {ok: false, error:") {
		t.Errorf("Envelope missing error branch:\n%s", wrapped)
	}
}

func TestWrapJXA(t *testing.T) {
	body := "JSON.stringify({ok: true})"
	wrapped := WrapJXA(body)

	if !strings.Contains(wrapped, `Application("OmniFocus")`) {
		t.Errorf("WrapJXA missing application target:\n%s", wrapped)
	}
	if !strings.Contains(wrapped, "app.evaluateJavascript(") {
		t.Errorf("WrapJXA missing evaluateJavascript call:\n%s", wrapped)
	}
	if !strings.Contains(wrapped, Quote(body)) {
		t.Errorf("WrapJXA did not quote the body:\n%s", wrapped)
	}
}

// TestWrapJXABodyWithQuotes verifies that a body containing string literals
// survives the second layer of quoting intact.
func TestWrapJXABodyWithQuotes(t *testing.T) {
	body := `const t = flattenedTasks.byName("Buy \"fancy\" milk");` + "\n" +
		`JSON.stringify({name: t.name})`
	wrapped := WrapJXA(body)

	// The body must appear exactly once, as a single quoted literal.
	if strings.Count(wrapped, "evaluateJavascript") != 1 {
		t.Fatalf("expected exactly one evaluateJavascript call:\n%s", wrapped)
	}
	if !strings.Contains(wrapped, Quote(body)) {
		t.Errorf("quoted body not found in wrapper:\n%s", wrapped)
	}
}
