// Package notify schedules the recurring daily news notification and
// delivers it through a pluggable channel.
package notify

import "context"

// ChannelID identifies the notification channel on every delivery.
const ChannelID = "daily-news"

// Notification is one rendered delivery.
type Notification struct {
	ID      string
	Channel string
	Title   string
	Body    string
}

// Notifier is the delivery backend. RequestPermission may be denied by
// the far side (missing token, revoked chat); a denial is not an error.
type Notifier interface {
	RequestPermission(ctx context.Context) (bool, error)
	Deliver(ctx context.Context, n Notification) error
}
