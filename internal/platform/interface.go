package platform

// Notifier defines the interface for platform-specific desktop notifications.
type Notifier interface {
	Notify(title, body string) error
}
