package idle

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/timeboxd/timeboxd/internal/ports"
)

// Source implements ports.IdleSource by asking the platform idle timer
type Source struct {
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

var _ ports.IdleSource = (*Source)(nil)

// NewSource creates an idle source backed by the platform command
func NewSource() *Source {
	return &Source{run: runCommand}
}

// IdleSeconds implements ports.IdleSource
func (s *Source) IdleSeconds(ctx context.Context) (int64, error) {
	return idleSeconds(ctx, s.run)
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// parseHIDIdleTime extracts HIDIdleTime (nanoseconds) from ioreg output
func parseHIDIdleTime(out []byte) (int64, error) {
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, `"HIDIdleTime"`) {
			continue
		}
		_, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		ns, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid HIDIdleTime %q: %w", strings.TrimSpace(value), err)
		}
		return int64(time.Duration(ns) / time.Second), nil
	}
	return 0, fmt.Errorf("HIDIdleTime not found in ioreg output")
}

// parseMillis parses a millisecond count such as xprintidle prints
func parseMillis(out []byte) (int64, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid idle time %q: %w", strings.TrimSpace(string(out)), err)
	}
	return ms / 1000, nil
}
