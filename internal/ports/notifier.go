package ports

import "context"

// Notifier delivers system notifications
type Notifier interface {
	PermissionGranted(ctx context.Context) (bool, error)
	RequestPermission(ctx context.Context) (bool, error)
	Send(ctx context.Context, title, body string) error
}
