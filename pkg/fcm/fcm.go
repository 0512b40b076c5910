package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"brf-backend/pkg/logger"
)

var log = logger.Component("fcm")

// Client wraps Firebase Cloud Messaging. A nil *Client is the "push disabled"
// state: callers must check Client != nil before dispatching.
type Client struct {
	messagingClient *messaging.Client
}

// NewClient creates an FCM client from a service-account credentials file.
func NewClient(credentialsFile string) (*Client, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Info("client initialized")
	return &Client{messagingClient: messagingClient}, nil
}

// Message is a single reminder push: title, body, and a data payload the
// web client uses to route clicks.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// SendToDevices multicasts a message to the given device tokens and returns
// the tokens FCM rejected so the caller can prune them.
func (c *Client) SendToDevices(ctx context.Context, tokens []string, msg Message) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	multicast := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: msg.Title,
				Body:  msg.Body,
				Icon:  "icon-192.png",
			},
		},
	}

	response, err := c.messagingClient.SendEachForMulticast(ctx, multicast)
	if err != nil {
		return nil, fmt.Errorf("send multicast: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"success":  response.SuccessCount,
		"failures": response.FailureCount,
	}).Debug("multicast sent")

	var failed []string
	for i, resp := range response.Responses {
		if !resp.Success {
			failed = append(failed, tokens[i])
		}
	}
	return failed, nil
}
