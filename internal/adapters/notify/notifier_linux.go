//go:build linux

package notify

// platformCommand builds the notify-send invocation for a notification
func platformCommand(title, body string) (string, []string) {
	return "notify-send", []string{"--app-name=timeboxd", title, body}
}
