package service

import "context"

// PushMessage is one push notification, addressed either to a device token
// or to a topic. Clients subscribe to the "user-<uid>" topic on sign-in, so
// server-side code can reach a person without tracking device tokens.
type PushMessage struct {
	Token string
	Topic string
	Title string
	Body  string
	Data  map[string]string
}

// UserTopic returns the per-profile topic name.
func UserTopic(uid string) string {
	return "user-" + uid
}

// PushService delivers push notifications. Delivery is best effort and must
// never block or fail the triggering write.
type PushService interface {
	Send(ctx context.Context, message *PushMessage) error
}
