// Package feedback turns failures and milestones into short
// human-readable notifications. Rendering is not its concern: callers
// inject whatever Notifier their surface provides.
package feedback

import "log"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Notifier shows a user-facing message.
type Notifier interface {
	Notify(severity Severity, message string)
}

// LogNotifier writes notifications to the standard logger. The default
// when no UI notifier is injected.
type LogNotifier struct{}

func (LogNotifier) Notify(severity Severity, message string) {
	log.Printf("[%s] %s", severity, message)
}

// NoopNotifier discards notifications.
type NoopNotifier struct{}

func (NoopNotifier) Notify(Severity, string) {}
