package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"

	"video-stats-updater/domain/model"
	"video-stats-updater/infrastructure/logger"
)

const topicSetupTimeout = 10 * time.Second

// NewPubSub creates a client for the given project.
func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	if projectID == "" {
		return nil, errors.New("pubsub project id not configured")
	}
	return pubsub.NewClient(ctx, projectID)
}

// OutcomePublisher publishes pipeline outcomes as JSON messages on a topic.
// The topic is resolved on first use; a failed attempt is retried on the
// next publish.
type OutcomePublisher struct {
	client  *pubsub.Client
	topicID string

	mu    sync.Mutex
	topic *pubsub.Topic
}

func NewOutcomePublisher(client *pubsub.Client, topicID string) *OutcomePublisher {
	return &OutcomePublisher{client: client, topicID: topicID}
}

// PublishOutcome sends one outcome and waits for the server id.
func (p *OutcomePublisher) PublishOutcome(ctx context.Context, outcome model.UpdateOutcome) error {
	topic, err := p.ensureTopic(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	msg := &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"runId":   outcome.RunID,
			"videoId": outcome.VideoID,
			"state":   string(outcome.State),
		},
	}

	serverID, err := topic.Publish(ctx, msg).Get(ctx)
	if err != nil {
		return fmt.Errorf("publish outcome: %w", err)
	}
	logger.GetLogger().WithField("serverId", serverID).WithField("runId", outcome.RunID).Debug("Outcome published")
	return nil
}

// Stop flushes pending messages.
func (p *OutcomePublisher) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.topic != nil {
		p.topic.Stop()
	}
}

func (p *OutcomePublisher) ensureTopic(ctx context.Context) (*pubsub.Topic, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.topic != nil {
		return p.topic, nil
	}

	// detached from the request: a canceled request must not fail setup
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), topicSetupTimeout)
	defer cancel()
	topic := p.client.Topic(p.topicID)

	// Create the topic if it doesn't exist.
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check topic %s: %w", p.topicID, err)
	}
	if !exists {
		logger.GetLogger().WithField("topic", p.topicID).Info("Topic doesn't exist - creating it")
		if topic, err = p.client.CreateTopic(ctx, p.topicID); err != nil {
			return nil, fmt.Errorf("create topic %s: %w", p.topicID, err)
		}
	}
	p.topic = topic
	return topic, nil
}
