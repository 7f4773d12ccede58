package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Sentinel errors returned by Output. Callers that care about the failure
// class (chiefly for Denied vs Unavailable) match with errors.Is.
var (
	// ErrNotFound means the executable is not on PATH.
	ErrNotFound = errors.New("executable not found")

	// ErrTimeout means the command exceeded its time budget and was killed.
	ErrTimeout = errors.New("command timed out")

	// ErrExit means the command ran but exited non-zero.
	ErrExit = errors.New("command failed")

	// ErrDenied means the command ran but was refused for lack of
	// privileges. Callers map this to a Denied result so the report shows
	// the elevated-privileges note instead of the generic guidance.
	ErrDenied = errors.New("permission denied")
)

// ExecFunc is the signature of an external-tool invocation. Collectors hold
// one in their Env so tests can substitute canned outputs.
type ExecFunc func(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error)

// Output runs an external command with a hard time budget and returns its
// trimmed standard output. The presence of the executable is checked before
// spawning; exec.CommandContext kills and reaps the process when the budget
// expires, so no invocation can leave an orphan behind.
func Output(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	if _, err := exec.LookPath(name); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if cctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("%w: %s", ErrTimeout, name)
	}
	if err != nil {
		if deniedStderr(stderr.String()) {
			return "", fmt.Errorf("%w: %s", ErrDenied, name)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrExit, name, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// deniedStderr matches the permission-refusal phrasings tools print across
// platforms.
func deniedStderr(s string) bool {
	s = strings.ToLower(s)
	return strings.Contains(s, "permission denied") ||
		strings.Contains(s, "operation not permitted") ||
		strings.Contains(s, "access is denied") ||
		strings.Contains(s, "requires root") ||
		strings.Contains(s, "must be run as root")
}

// OutputSudo runs a command that usually needs root, trying a
// non-interactive sudo first and falling back to a plain invocation. The -n
// flag makes sudo fail immediately instead of prompting, so the timeout
// budget is never spent waiting for a password.
func OutputSudo(ctx context.Context, exec ExecFunc, timeout time.Duration, name string, args ...string) (string, error) {
	sudoArgs := append([]string{"-n", name}, args...)
	if out, err := exec(ctx, timeout, "sudo", sudoArgs...); err == nil && out != "" {
		return out, nil
	}
	return exec(ctx, timeout, name, args...)
}
