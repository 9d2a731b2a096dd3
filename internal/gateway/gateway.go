package gateway

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner abstracts spawning the external CLI so the retry policy can be
// tested without a real binary.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner spawns the real process and folds stderr into the error so
// the auth heuristic can see the tool's failure text.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, detail)
		}
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}

	return stdout.Bytes(), nil
}

// AuthError indicates the external tool rejected our session. It is never
// retried and aborts the whole run.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failure from external tool (re-login required): %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Options tune a single Execute call. Zero values fall back to the
// gateway defaults.
type Options struct {
	Retries int
	Delay   time.Duration
	JSON    bool // append --json to request machine-readable output
}

// Gateway invokes the external social-media CLI with a bounded retry
// policy: fixed delay, no backoff, no jitter.
type Gateway struct {
	tool    string
	runner  Runner
	retries int
	delay   time.Duration
}

// New creates a gateway for the given CLI binary.
func New(tool string, retries int, delay time.Duration) *Gateway {
	return &Gateway{
		tool:    tool,
		runner:  execRunner{},
		retries: retries,
		delay:   delay,
	}
}

// NewWithRunner is like New but with an injected runner, for tests.
func NewWithRunner(tool string, retries int, delay time.Duration, runner Runner) *Gateway {
	return &Gateway{
		tool:    tool,
		runner:  runner,
		retries: retries,
		delay:   delay,
	}
}

// Execute runs `<tool> <subcommand> [args...] [--json]` and returns raw
// stdout. Transient failures are retried up to the attempt limit; an
// authentication failure aborts immediately with *AuthError.
func (g *Gateway) Execute(ctx context.Context, subcommand string, args []string, opts Options) (string, error) {
	retries := opts.Retries
	if retries <= 0 {
		retries = g.retries
	}
	delay := opts.Delay
	if delay <= 0 {
		delay = g.delay
	}

	cmdArgs := append([]string{subcommand}, args...)
	if opts.JSON {
		cmdArgs = append(cmdArgs, "--json")
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		out, err := g.runner.Run(ctx, g.tool, cmdArgs...)
		if err == nil {
			return string(out), nil
		}

		if isAuthFailure(err) {
			logrus.Errorf("Authentication failure from %s, not retrying: %v", g.tool, err)
			return "", &AuthError{Err: err}
		}

		lastErr = err
		logrus.Warnf("%s %s attempt %d/%d failed: %v", g.tool, subcommand, attempt, retries, err)

		if attempt < retries {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return "", fmt.Errorf("%s %s failed after %d attempts: %w", g.tool, subcommand, retries, lastErr)
}

// isAuthFailure is a substring heuristic over the tool's failure text.
// Kept deliberately in sync with the tool's error wording; the structured
// kind callers see is *AuthError.
func isAuthFailure(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "auth") || strings.Contains(msg, "cookie")
}
