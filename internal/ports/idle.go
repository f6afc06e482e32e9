package ports

import "context"

// IdleSource reports how long the system has gone without user input
type IdleSource interface {
	// IdleSeconds returns seconds since the last keyboard or pointer event.
	// Platforms without support return 0 or domain.ErrPlatformUnsupported.
	IdleSeconds(ctx context.Context) (int64, error)
}
