package constants

// JetStream streams and subjects
const (
	StreamNotifications     = "NOTIFICATIONS"
	SubjectNotificationPush = "notifications.push"

	ConsumerNotificationWriter = "notification-writer"
)
