// Package notification delivers push notifications over Firebase Cloud
// Messaging.
package notification

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"lifeline/config"
	"lifeline/internal/domain/service"
)

type fcmService struct {
	client *messaging.Client
}

// NewFCMService creates a new push service backed by Firebase Cloud
// Messaging. Returns nil when Firebase is not configured so callers can
// treat push delivery as disabled.
func NewFCMService(ctx context.Context, cfg *config.Config) (service.PushService, error) {
	if cfg.Firebase == nil || cfg.Firebase.ProjectID == "" {
		return nil, nil
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &fcmService{
		client: client,
	}, nil
}

// Send delivers one push notification to a device token or topic.
func (s *fcmService) Send(ctx context.Context, message *service.PushMessage) error {
	msg := &messaging.Message{
		Token: message.Token,
		Topic: message.Topic,
		Notification: &messaging.Notification{
			Title: message.Title,
			Body:  message.Body,
		},
		Data: message.Data,
	}

	if _, err := s.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}
