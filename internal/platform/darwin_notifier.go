//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

// DarwinNotifier implements Notifier for macOS via osascript.
type DarwinNotifier struct{}

// NewDarwinNotifier creates a new macOS notifier instance.
func NewDarwinNotifier() *DarwinNotifier {
	return &DarwinNotifier{}
}

// NewNotifier creates a new Notifier instance for macOS.
func NewNotifier() Notifier {
	return NewDarwinNotifier()
}

// Notify displays a notification through the Notification Center.
func (n *DarwinNotifier) Notify(title, body string) error {
	script := fmt.Sprintf("display notification %q with title %q",
		escapeAppleScript(body), escapeAppleScript(title))
	return exec.Command("osascript", "-e", script).Run()
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
