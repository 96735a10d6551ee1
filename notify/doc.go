// Package notify provides notification services for generation events.
//
// Core types:
//   - Notifier: Interface for sending notifications
//   - Event: Notification event with type, message, and metadata
//   - EventType: Type of event (started, completed, failed, released)
//
// Implementations:
//   - SlackNotifier: Sends notifications to Slack webhooks
//   - WebhookNotifier: Sends notifications to generic webhooks
//   - LogNotifier: Logs notifications (for testing/debugging)
//   - MultiNotifier: Combines multiple notifiers
//   - NopNotifier: No-op notifier (for testing)
//
// Generation runs take tens of seconds, so a notifier lets the user
// step away and still learn when the archive is ready.
//
// Example usage:
//
//	notifier := notify.NewSlackNotifier(webhookURL,
//	    notify.WithSlackChannel("#genforge"),
//	)
//	err := notifier.Notify(ctx, notify.Event{
//	    Type:    notify.EventGenerationCompleted,
//	    Message: "cli.zip is ready for download",
//	})
package notify
