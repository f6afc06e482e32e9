package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

const (
	commandTimeout = 30 * time.Second
	modulePath     = "github.com/timeboxd/timeboxd"

	// Version is stamped into the test binary so --version output is known
	Version = "integration"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// Result is the outcome of one timeboxd invocation
type Result struct {
	Args     []string
	ExitCode int
	Stderr   string
	Stdout   string
}

func (r Result) String() string {
	return fmt.Sprintf("timeboxd %v (exit %d)\nstdout: %s\nstderr: %s", r.Args, r.ExitCode, r.Stdout, r.Stderr)
}

// BuildBinary compiles timeboxd once per test run with Version stamped in.
// Call this from TestMain before running tests.
func BuildBinary() error {
	buildOnce.Do(func() {
		root, err := moduleRoot()
		if err != nil {
			buildErr = err
			return
		}

		dir, err := os.MkdirTemp("", "timeboxd-integration-*")
		if err != nil {
			buildErr = err
			return
		}
		binaryPath = filepath.Join(dir, "timeboxd")

		ldflags := "-X " + modulePath + "/internal/version.Version=" + Version
		cmd := exec.Command("go", "build", "-ldflags", ldflags, "-o", binaryPath, ".")
		cmd.Dir = root
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		buildErr = cmd.Run()
	})
	return buildErr
}

// CleanupBinary removes the compiled binary. Call this from TestMain.
func CleanupBinary() {
	if binaryPath == "" {
		return
	}
	if err := os.RemoveAll(filepath.Dir(binaryPath)); err != nil {
		log.Printf("Warning: failed to remove test binary: %v", err)
	}
}

// Run executes timeboxd with args inside env
func Run(tb testing.TB, env *TestEnvironment, args ...string) Result {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binaryPath, args...)
	cmd.Env = env.Environ()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := Result{Args: args}
	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		tb.Logf("timeboxd %v timed out after %v", args, commandTimeout)
		result.ExitCode = -1
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		tb.Logf("timeboxd %v failed to run: %v", args, err)
		result.ExitCode = -1
	}

	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	return result
}

// moduleRoot walks up from the working directory to the directory holding go.mod
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above the test directory")
		}
		dir = parent
	}
}
