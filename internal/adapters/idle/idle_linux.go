//go:build linux

package idle

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/timeboxd/timeboxd/internal/domain"
)

func idleSeconds(ctx context.Context, run func(context.Context, string, ...string) ([]byte, error)) (int64, error) {
	if _, err := exec.LookPath("xprintidle"); err != nil {
		return 0, fmt.Errorf("%w: xprintidle not installed", domain.ErrPlatformUnsupported)
	}
	out, err := run(ctx, "xprintidle")
	if err != nil {
		return 0, fmt.Errorf("failed to query xprintidle: %w", err)
	}
	return parseMillis(out)
}
