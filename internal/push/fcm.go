package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type FCMClient struct {
	client *messaging.Client
}

func NewFCMClient(ctx context.Context, credentialsFile string) (*FCMClient, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase init: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}
	return &FCMClient{client: client}, nil
}

func (c *FCMClient) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, error) {
	msg := &messaging.MulticastMessage{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:   data,
		Tokens: tokens,
	}
	resp, err := c.client.SendEachForMulticast(ctx, msg)
	if err != nil {
		return 0, 0, fmt.Errorf("fcm multicast: %w", err)
	}
	return resp.SuccessCount, resp.FailureCount, nil
}
