//go:build darwin

package idle

import (
	"context"
	"fmt"
)

func idleSeconds(ctx context.Context, run func(context.Context, string, ...string) ([]byte, error)) (int64, error) {
	out, err := run(ctx, "ioreg", "-c", "IOHIDSystem")
	if err != nil {
		return 0, fmt.Errorf("failed to query ioreg: %w", err)
	}
	return parseHIDIdleTime(out)
}
