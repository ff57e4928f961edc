//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

// LinuxNotifier implements Notifier via the org.freedesktop.Notifications
// D-Bus service.
type LinuxNotifier struct {
	appName string
}

// NewLinuxNotifier creates a new Linux notifier instance.
func NewLinuxNotifier() *LinuxNotifier {
	return &LinuxNotifier{appName: "Execution Mode"}
}

// NewNotifier creates a new Notifier instance for Linux.
func NewNotifier() Notifier {
	return NewLinuxNotifier()
}

// Notify sends a desktop notification over the session bus.
func (n *LinuxNotifier) Notify(title, body string) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return err
	}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		n.appName,              // app_name
		uint32(0),              // replaces_id
		"",                     // app_icon
		title,                  // summary
		body,                   // body
		[]string{},             // actions
		map[string]dbus.Variant{}, // hints
		int32(-1),              // expire_timeout, server default
	)
	return call.Err
}
