//go:build !darwin && !linux

package notify

// platformCommand reports no notification support
func platformCommand(title, body string) (string, []string) {
	return "", nil
}
