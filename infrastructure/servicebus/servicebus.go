package servicebus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"

	"video-stats-updater/domain/model"
	"video-stats-updater/infrastructure/logger"
)

// NewServiceBus connects to a namespace with the default Azure credential chain.
func NewServiceBus(ctx context.Context, namespace string) (*azservicebus.Client, error) {
	if namespace == "" {
		return nil, errors.New("service bus namespace not configured")
	}
	if !strings.Contains(namespace, ".") {
		namespace += ".servicebus.windows.net"
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}
	return azservicebus.NewClient(namespace, cred, nil)
}

// Sender is the part of *azservicebus.Sender the publisher uses.
type Sender interface {
	SendMessage(ctx context.Context, message *azservicebus.Message, options *azservicebus.SendMessageOptions) error
	Close(ctx context.Context) error
}

// OutcomeSender puts pipeline outcomes on a queue.
type OutcomeSender struct {
	sender Sender
}

// NewOutcomeSender opens a sender for queue on client.
func NewOutcomeSender(client *azservicebus.Client, queue string) (*OutcomeSender, error) {
	sender, err := client.NewSender(queue, nil)
	if err != nil {
		logger.GetLogger().
			WithField("error", err).
			Error("Error while making new sender service bus.")
		return nil, err
	}
	return NewOutcomeSenderWith(sender), nil
}

func NewOutcomeSenderWith(sender Sender) *OutcomeSender {
	return &OutcomeSender{sender: sender}
}

// PublishOutcome sends the outcome as a JSON message keyed by run id.
func (s *OutcomeSender) PublishOutcome(ctx context.Context, outcome model.UpdateOutcome) error {
	body, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}

	contentType := "application/json"
	messageID := outcome.RunID
	subject := string(outcome.State)
	msg := &azservicebus.Message{
		Body:        body,
		ContentType: &contentType,
		MessageID:   &messageID,
		Subject:     &subject,
		ApplicationProperties: map[string]any{
			"videoId": outcome.VideoID,
		},
	}
	if err := s.sender.SendMessage(ctx, msg, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while sending message.")
		return fmt.Errorf("send outcome: %w", err)
	}
	return nil
}

func (s *OutcomeSender) Close(ctx context.Context) {
	if err := s.sender.Close(ctx); err != nil {
		logger.GetLogger().
			WithField("error", err).
			Error("Error while closing sender.")
	}
}
