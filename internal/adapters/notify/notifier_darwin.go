//go:build darwin

package notify

// platformCommand builds the osascript invocation for a notification
func platformCommand(title, body string) (string, []string) {
	script := "display notification " + appleScriptQuote(body) +
		" with title " + appleScriptQuote(title) +
		` sound name "Glass"`
	return "osascript", []string{"-e", script}
}
