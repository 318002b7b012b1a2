package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes what a notification is about.
type NotificationType string

const (
	NotificationRequestUpdate NotificationType = "request_update"
	NotificationDonation      NotificationType = "donation"
	NotificationCampaign      NotificationType = "campaign"
	NotificationBroadcast     NotificationType = "broadcast"
)

// Notification is one in-app message addressed to a single profile.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UID       string           `json:"uid"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
