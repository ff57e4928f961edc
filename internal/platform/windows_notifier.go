//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

// WindowsNotifier implements Notifier for Windows via a PowerShell toast.
type WindowsNotifier struct{}

// NewWindowsNotifier creates a new Windows notifier instance.
func NewWindowsNotifier() *WindowsNotifier {
	return &WindowsNotifier{}
}

// NewNotifier creates a new Notifier instance for Windows.
func NewNotifier() Notifier {
	return NewWindowsNotifier()
}

// Notify raises a toast notification through the WinRT toast API.
func (n *WindowsNotifier) Notify(title, body string) error {
	script := fmt.Sprintf(`
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$template = @"
<toast><visual><binding template="ToastGeneric"><text>%s</text><text>%s</text></binding></visual></toast>
"@
$xml = New-Object Windows.Data.Xml.Dom.XmlDocument
$xml.LoadXml($template)
$toast = New-Object Windows.UI.Notifications.ToastNotification $xml
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier("Execution Mode").Show($toast)`,
		escapeXML(title), escapeXML(body))

	return exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script).Run()
}

func escapeXML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}
