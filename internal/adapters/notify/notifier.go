package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/timeboxd/timeboxd/internal/logging"
	"github.com/timeboxd/timeboxd/internal/ports"
)

// Notifier implements ports.Notifier with the platform notification command.
// Permission is granted when that command is available.
type Notifier struct {
	lookPath func(file string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier creates a notifier for the current platform
func NewNotifier() *Notifier {
	return &Notifier{
		lookPath: exec.LookPath,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
}

// PermissionGranted implements ports.Notifier
func (n *Notifier) PermissionGranted(ctx context.Context) (bool, error) {
	name, _ := platformCommand("", "")
	if name == "" {
		return false, nil
	}
	if _, err := n.lookPath(name); err != nil {
		return false, nil
	}
	return true, nil
}

// RequestPermission implements ports.Notifier. Command based notifications
// have no prompt, so this re-checks availability.
func (n *Notifier) RequestPermission(ctx context.Context) (bool, error) {
	granted, err := n.PermissionGranted(ctx)
	if err == nil && !granted {
		logging.Logger.Info("Notification command not available on this system")
	}
	return granted, err
}

// Send implements ports.Notifier
func (n *Notifier) Send(ctx context.Context, title, body string) error {
	name, args := platformCommand(title, body)
	if name == "" {
		return fmt.Errorf("no notification command for this platform")
	}
	if err := n.run(ctx, name, args...); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// appleScriptQuote quotes s as an AppleScript string literal
func appleScriptQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
