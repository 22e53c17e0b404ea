package notifications

// Pusher fans a stored notification out to a user's live sockets
// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/smartlocker/services/notifications Pusher
type Pusher interface {
	NotifyUser(userID string, event string, data interface{}) int
}
