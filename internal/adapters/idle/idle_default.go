//go:build !darwin && !linux

package idle

import (
	"context"

	"github.com/timeboxd/timeboxd/internal/domain"
)

func idleSeconds(ctx context.Context, run func(context.Context, string, ...string) ([]byte, error)) (int64, error) {
	return 0, domain.ErrPlatformUnsupported
}
