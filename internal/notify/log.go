package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes deliveries to the log. It is the fallback backend
// when no Telegram credentials are configured and always grants
// permission.
type LogNotifier struct {
	logger *slog.Logger
}

var _ Notifier = (*LogNotifier)(nil)

// NewLogNotifier wires the target logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) RequestPermission(context.Context) (bool, error) {
	return true, nil
}

func (n *LogNotifier) Deliver(_ context.Context, notification Notification) error {
	n.logger.Info("notification",
		"id", notification.ID,
		"channel", notification.Channel,
		"title", notification.Title,
		"body", notification.Body)
	return nil
}
