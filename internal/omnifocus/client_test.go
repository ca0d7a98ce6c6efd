package omnifocus

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

// fakeRunner substitutes the osascript subprocess with canned output and
// records the last script source for content assertions.
type fakeRunner struct {
	stdout string
	stderr string
	err    error
	src    string
}

func (f *fakeRunner) run(_ context.Context, src string) (string, string, error) {
	f.src = src
	return f.stdout, f.stderr, f.err
}

// newTestClient builds a client around a fake runner without touching PATH.
func newTestClient(r *fakeRunner) *Client {
	return &Client{ctx: context.Background(), run: r, timeout: DefaultTimeout}
}

// envelope wraps a data payload in the script result protocol.
func envelope(data string) string {
	return `{"ok":true,"data":` + data + `}`
}

// TestExecutionRecorder tests that the hook sees one call per run with the
// outcome and the full source size
func TestExecutionRecorder(t *testing.T) {
	r := &fakeRunner{stdout: envelope("[]")}
	c := newTestClient(r)

	var statuses []string
	var sizes []int
	WithExecutionRecorder(func(_ context.Context, status string, scriptBytes int) {
		statuses = append(statuses, status)
		sizes = append(sizes, scriptBytes)
	})(c)

	if _, err := c.ListPerspectives(); err != nil {
		t.Fatalf("ListPerspectives() unexpected error = %v", err)
	}

	r.stdout = `{"ok":false,"error":"boom"}`
	if _, err := c.ListPerspectives(); err == nil {
		t.Fatal("ListPerspectives() expected error, got nil")
	}

	if len(statuses) != 2 || statuses[0] != "success" || statuses[1] != "error" {
		t.Errorf("recorded statuses = %v, want [success error]", statuses)
	}
	if len(sizes) != 2 || sizes[0] != len(r.src) {
		t.Errorf("recorded sizes = %v, want first entry %d", sizes, len(r.src))
	}
}

type captureLogger struct {
	msgs []string
	args [][]interface{}
}

func (l *captureLogger) Debug(msg string, args ...interface{}) {
	l.msgs = append(l.msgs, msg)
	l.args = append(l.args, args)
}
func (l *captureLogger) Info(string, ...interface{})  {}
func (l *captureLogger) Warn(string, ...interface{})  {}
func (l *captureLogger) Error(string, ...interface{}) {}

// TestClientLogsScriptRuns tests the debug trace emitted per osascript run
func TestClientLogsScriptRuns(t *testing.T) {
	c := newTestClient(&fakeRunner{stdout: envelope("[]")})
	log := &captureLogger{}
	WithLogger(log)(c)

	if _, err := c.ListPerspectives(); err != nil {
		t.Fatalf("ListPerspectives() unexpected error = %v", err)
	}

	if len(log.msgs) != 1 || log.msgs[0] != "osascript run" {
		t.Fatalf("logged messages = %v, want one osascript run entry", log.msgs)
	}
	got := log.args[0]
	if len(got) < 4 || got[0] != "op" || got[1] != "perspective.list" {
		t.Errorf("logged args = %v, want op perspective.list first", got)
	}
}

// TestRunScriptEnvelope tests decoding of the uniform script result protocol
func TestRunScriptEnvelope(t *testing.T) {
	tests := []struct {
		name      string
		stdout    string
		stderr    string
		runErr    error
		wantErr   bool
		errString string
	}{
		{
			name:    "successful result",
			stdout:  envelope(`{"value":1}`) + "\n",
			wantErr: false,
		},
		{
			name:      "script reported error",
			stdout:    `{"ok":false,"error":"task not found: abc"}`,
			wantErr:   true,
			errString: "task not found: abc",
		},
		{
			name:      "empty output",
			stdout:    "\n",
			wantErr:   true,
			errString: "script produced no output",
		},
		{
			name:      "malformed output",
			stdout:    "execution error: OmniFocus got an error",
			wantErr:   true,
			errString: "failed to decode script output",
		},
		{
			name:      "subprocess failure",
			stderr:    "osascript: unable to connect",
			runErr:    errors.New("exit status 1"),
			wantErr:   true,
			errString: "osascript failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(&fakeRunner{stdout: tt.stdout, stderr: tt.stderr, err: tt.runErr})

			data, err := c.runScript("test.op", "return 1;")

			if tt.wantErr {
				if err == nil {
					t.Errorf("runScript() expected error containing %q, got nil", tt.errString)
				} else if !strings.Contains(err.Error(), tt.errString) {
					t.Errorf("runScript() error = %v, want error containing %q", err, tt.errString)
				}
				return
			}

			if err != nil {
				t.Errorf("runScript() unexpected error = %v", err)
				return
			}
			if string(data) != `{"value":1}` {
				t.Errorf("runScript() data = %s, want %s", data, `{"value":1}`)
			}
		})
	}
}

// TestRunScriptStderrInError tests that subprocess stderr reaches the error
func TestRunScriptStderrInError(t *testing.T) {
	c := newTestClient(&fakeRunner{
		stderr: "execution error: Application isn't running. (-600)",
		err:    errors.New("exit status 1"),
	})

	_, err := c.runScript("task.list", "return [];")
	if err == nil {
		t.Fatal("runScript() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "-600") {
		t.Errorf("runScript() error = %v, want stderr included", err)
	}

	var opErr *Error
	if !errors.As(err, &opErr) {
		t.Fatalf("runScript() error type = %T, want *Error", err)
	}
	if opErr.Op != "task.list" {
		t.Errorf("runScript() op = %v, want task.list", opErr.Op)
	}
}

// TestRunScriptTimeout tests the deadline error message
func TestRunScriptTimeout(t *testing.T) {
	slow := &slowRunner{delay: 50 * time.Millisecond}
	c := &Client{ctx: context.Background(), run: slow, timeout: time.Millisecond}

	_, err := c.runScript("database.dump", "return {};")
	if err == nil {
		t.Fatal("runScript() expected timeout error, got nil")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("runScript() error = %v, want timeout message", err)
	}
}

type slowRunner struct {
	delay time.Duration
}

func (r *slowRunner) run(ctx context.Context, _ string) (string, string, error) {
	select {
	case <-ctx.Done():
		return "", "", ctx.Err()
	case <-time.After(r.delay):
		return envelope("{}"), "", nil
	}
}

// TestRunScriptWrapsSource tests that the executed source carries the JXA
// harness and the embedded body
func TestRunScriptWrapsSource(t *testing.T) {
	r := &fakeRunner{stdout: envelope("{}")}
	c := newTestClient(r)

	if _, err := c.runScript("test.op", "return inbox.length;"); err != nil {
		t.Fatalf("runScript() unexpected error = %v", err)
	}

	for _, want := range []string{
		`Application("OmniFocus")`,
		"evaluateJavascript",
		"return inbox.length;",
	} {
		if !strings.Contains(r.src, want) {
			t.Errorf("runScript() source missing %q", want)
		}
	}
}

// TestRunJSONDecode tests payload decoding into caller types
func TestRunJSONDecode(t *testing.T) {
	tests := []struct {
		name      string
		stdout    string
		wantErr   bool
		errString string
	}{
		{
			name:    "valid payload",
			stdout:  envelope(`{"id":"abc","name":"Buy milk"}`),
			wantErr: false,
		},
		{
			name:      "type mismatch",
			stdout:    envelope(`["not","an","object"]`),
			wantErr:   true,
			errString: "failed to decode",
		},
		{
			name:      "missing data",
			stdout:    `{"ok":true}`,
			wantErr:   true,
			errString: "script returned no data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(&fakeRunner{stdout: tt.stdout})

			var task Task
			err := c.runJSON("task.get", "return t;", &task)

			if tt.wantErr {
				if err == nil {
					t.Errorf("runJSON() expected error containing %q, got nil", tt.errString)
				} else if !strings.Contains(err.Error(), tt.errString) {
					t.Errorf("runJSON() error = %v, want error containing %q", err, tt.errString)
				}
				return
			}

			if err != nil {
				t.Errorf("runJSON() unexpected error = %v", err)
				return
			}
			if task.ID != "abc" || task.Name != "Buy milk" {
				t.Errorf("runJSON() task = %+v, want id=abc name=Buy milk", task)
			}
		})
	}
}

// TestError tests the Error type formatting and unwrapping
func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "error with stderr",
			err: &Error{
				Op:     "task.add",
				Stderr: "execution error",
				Err:    os.ErrNotExist,
			},
			contains: []string{"omnifocus task.add", "does not exist", "execution error"},
		},
		{
			name: "error without stderr",
			err: &Error{
				Op:  "database.dump",
				Err: os.ErrPermission,
			},
			contains: []string{"omnifocus database.dump", "permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()

			for _, substr := range tt.contains {
				if !strings.Contains(errStr, substr) {
					t.Errorf("Error() = %v, want to contain %v", errStr, substr)
				}
			}

			if tt.err.Unwrap() != tt.err.Err {
				t.Errorf("Unwrap() = %v, want %v", tt.err.Unwrap(), tt.err.Err)
			}
		})
	}
}

// TestTruncate tests output truncation in decode errors
func TestTruncate(t *testing.T) {
	if got := truncate("short", 200); got != "short" {
		t.Errorf("truncate() = %v, want short", got)
	}
	long := strings.Repeat("x", 300)
	got := truncate(long, 200)
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate() length = %d, want 203 with ellipsis", len(got))
	}
}
