package notify

import "fyne.io/fyne/v2"

// Sender is the part of fyne.App used to raise system notifications.
type Sender interface {
	SendNotification(notification *fyne.Notification)
}

// Alerts raises a system notification for each completion.
type Alerts struct {
	sender Sender
}

// NewAlerts returns a sink posting through sender, typically the fyne.App.
func NewAlerts(sender Sender) *Alerts {
	return &Alerts{sender: sender}
}

// Notify posts the alert for kind.
func (alerts *Alerts) Notify(kind Kind) {
	if alerts.sender == nil {
		return
	}
	title, content := AlertText(kind)
	alerts.sender.SendNotification(fyne.NewNotification(title, content))
}

// RequestPermission is a no-op; fyne requests consent on first delivery.
func (alerts *Alerts) RequestPermission() error { return nil }

// AlertText returns the notification title and body for kind.
func AlertText(kind Kind) (title, content string) {
	if kind == WorkComplete {
		return "Work Session Complete!", "Time for a break."
	}
	return "Break Complete!", "Ready to focus again."
}
