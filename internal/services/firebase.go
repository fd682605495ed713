package services

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// NewMessagingClient initializes an FCM client for push delivery. Returns
// nil without error when Firebase is not configured; pushes are then
// skipped by the notifier.
func NewMessagingClient(ctx context.Context, projectID, credentialsJSON string) (*messaging.Client, error) {
	if projectID == "" && credentialsJSON == "" {
		return nil, nil
	}

	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, err
	}
	return app.Messaging(ctx)
}
