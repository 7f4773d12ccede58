package probe

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"
)

func TestOutputNotFound(t *testing.T) {
	_, err := Output(context.Background(), time.Second, "definitely-not-a-real-binary-5a1b")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestOutputTrimsStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX echo binary")
	}
	out, err := Output(context.Background(), time.Second, "echo", "hello")
	if err != nil {
		t.Fatalf("echo: %v", err)
	}
	if out != "hello" {
		t.Errorf("out = %q, want %q", out, "hello")
	}
}

func TestOutputNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX false binary")
	}
	_, err := Output(context.Background(), time.Second, "false")
	if !errors.Is(err, ErrExit) {
		t.Errorf("err = %v, want ErrExit", err)
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrDenied) {
		t.Errorf("exit failure misclassified: %v", err)
	}
}

func TestOutputPermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX shell")
	}
	_, err := Output(context.Background(), time.Second,
		"sh", "-c", "echo 'dmidecode: Permission denied' >&2; exit 1")
	if !errors.Is(err, ErrDenied) {
		t.Errorf("err = %v, want ErrDenied", err)
	}
}

func TestDeniedStderr(t *testing.T) {
	denied := []string{
		"open /dev/mem: Permission denied",
		"Operation not permitted",
		"Access is denied.",
		"/dev/mem: this utility requires root privileges",
	}
	for _, s := range denied {
		if !deniedStderr(s) {
			t.Errorf("deniedStderr(%q) = false, want true", s)
		}
	}
	if deniedStderr("no such file or directory") {
		t.Error("plain failure classified as denied")
	}
}

func TestOutputTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX sleep binary")
	}
	start := time.Now()
	_, err := Output(context.Background(), 50*time.Millisecond, "sleep", "5")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("timeout took %v, expected prompt cancellation", elapsed)
	}
}
