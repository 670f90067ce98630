// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/dvoss/gitdeck/internal/config"
	"github.com/gen2brain/beeep"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg *config.NotificationConfig
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if n.cfg == nil || !n.cfg.Enabled {
		return nil
	}

	return beeep.Notify(title, message, "")
}

// NotifyScanComplete displays a notification when a commit scan finishes.
func (n *Notifier) NotifyScanComplete(repoName string, added int) error {
	title := "Commit scan complete"
	message := fmt.Sprintf("%s: %d new commits indexed.", repoName, added)
	if added == 0 {
		message = fmt.Sprintf("%s: history is up to date.", repoName)
	}
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
