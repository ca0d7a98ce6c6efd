package omnifocus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"omnibridge/internal/logging"
	"omnibridge/internal/script"
)

// DefaultTimeout bounds a single osascript invocation. Database dumps on
// large libraries are the slowest operation and stay well under this.
const DefaultTimeout = 60 * time.Second

// runner executes a complete JXA source text and returns its stdout and
// stderr. It exists so tests can substitute canned subprocess output.
type runner interface {
	run(ctx context.Context, src string) (stdout, stderr string, err error)
}

// osascriptRunner runs scripts through the macOS osascript interpreter.
type osascriptRunner struct {
	path string
}

func (r *osascriptRunner) run(ctx context.Context, src string) (string, string, error) {
	cmd := exec.CommandContext(ctx, r.path, "-l", "JavaScript", "-e", src)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	return stdout.String(), stderr.String(), err
}

// ExecutionRecorder observes a completed osascript run. Status is "success"
// or "error"; scriptBytes is the size of the full JXA source passed to the
// interpreter.
type ExecutionRecorder func(ctx context.Context, status string, scriptBytes int)

// Client provides access to the OmniFocus database via Omni Automation.
type Client struct {
	ctx      context.Context
	run      runner
	timeout  time.Duration
	recorder ExecutionRecorder
	log      logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-operation timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithExecutionRecorder installs a hook that is invoked once per osascript
// run, for metrics.
func WithExecutionRecorder(r ExecutionRecorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// WithLogger installs a logger that traces each script run at debug level.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a new OmniFocus client. It verifies that osascript is
// available, which also rules out non-macOS hosts up front.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	path, err := exec.LookPath("osascript")
	if err != nil {
		if runtime.GOOS != "darwin" {
			return nil, &Error{
				Op:  "initialize",
				Err: fmt.Errorf("osascript not found: OmniFocus automation requires macOS (running on %s)", runtime.GOOS),
			}
		}
		return nil, &Error{
			Op:  "initialize",
			Err: fmt.Errorf("osascript not found in PATH: %w", err),
		}
	}

	c := &Client{
		ctx:     ctx,
		run:     &osascriptRunner{path: path},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// scriptEnvelope is the uniform result protocol every script emits.
type scriptEnvelope struct {
	OK    bool            `json:"ok"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// runScript executes an OmniJS body and returns the raw data payload.
// The body must follow the script.Envelope contract: it ends by returning
// the operation's data value.
func (c *Client) runScript(op, body string) (data json.RawMessage, err error) {
	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()

	src := script.WrapJXA(script.Envelope(body))
	if c.recorder != nil || c.log != nil {
		start := time.Now()
		defer func() {
			status := "success"
			if err != nil {
				status = "error"
			}
			if c.recorder != nil {
				c.recorder(ctx, status, len(src))
			}
			if c.log != nil {
				c.log.Debug("osascript run",
					"op", op, "status", status,
					"bytes", len(src), "duration", time.Since(start))
			}
		}()
	}

	stdout, stderr, err := c.run.run(ctx, src)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &Error{
				Op:     op,
				Stderr: strings.TrimSpace(stderr),
				Err:    fmt.Errorf("operation timed out after %s", c.timeout),
			}
		}
		return nil, &Error{
			Op:     op,
			Stderr: strings.TrimSpace(stderr),
			Err:    fmt.Errorf("osascript failed: %w", err),
		}
	}

	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return nil, &Error{
			Op:     op,
			Stderr: strings.TrimSpace(stderr),
			Err:    fmt.Errorf("script produced no output"),
		}
	}

	var env scriptEnvelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return nil, &Error{
			Op:  op,
			Err: fmt.Errorf("failed to decode script output %q: %w", truncate(trimmed, 200), err),
		}
	}

	if !env.OK {
		// Errors raised inside OmniFocus are surfaced verbatim.
		return nil, &Error{
			Op:  op,
			Err: fmt.Errorf("%s", env.Error),
		}
	}

	return env.Data, nil
}

// runJSON executes an OmniJS body and decodes its data payload into v.
func (c *Client) runJSON(op, body string, v any) error {
	data, err := c.runScript(op, body)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	if len(data) == 0 {
		return &Error{
			Op:  op,
			Err: fmt.Errorf("script returned no data"),
		}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &Error{
			Op:  op,
			Err: fmt.Errorf("failed to decode %s result: %w", op, err),
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
