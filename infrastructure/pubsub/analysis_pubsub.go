package pubsub

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"cloud.google.com/go/pubsub"

	"tubelens/domain/repository"
	"tubelens/infrastructure/logger"
)

// NewPubSub connects to Google Cloud Pub/Sub for the given project.
func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// AnalysisPubSub publishes analysis lifecycle events. Publishing is
// best-effort: a nil client or publish error is logged and swallowed so an
// analysis never fails because the event bus is down.
type AnalysisPubSub struct {
	PubSubClient *pubsub.Client
	TopicName    string
}

func NewAnalysisPubSub(client *pubsub.Client, topicName string) repository.IEvents {
	return &AnalysisPubSub{
		PubSubClient: client,
		TopicName:    topicName,
	}
}

type analysisCompletedEvent struct {
	UserID      string    `json:"user_id"`
	Kind        string    `json:"kind"`
	Subject     string    `json:"subject"`
	CompletedAt time.Time `json:"completed_at"`
}

func (p *AnalysisPubSub) PublishAnalysisCompleted(ctx context.Context, userID, kind, subject string) error {
	if p.PubSubClient == nil {
		logger.GetLogger().Info("PubSub client is nil - skipping analysis event")
		return nil
	}

	payload, err := json.Marshal(analysisCompletedEvent{
		UserID:      userID,
		Kind:        kind,
		Subject:     subject,
		CompletedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	topic := p.PubSubClient.Topic(p.TopicName)

	// Create the topic if it doesn't exist.
	exists, err := topic.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		log.Printf("Topic %v doesn't exist - creating it", p.TopicName)
		if _, err = p.PubSubClient.CreateTopic(ctx, p.TopicName); err != nil {
			return err
		}
	}

	serverId, err := topic.Publish(ctx, &pubsub.Message{Data: payload}).Get(ctx)
	if err != nil {
		return err
	}

	logger.GetLogger().WithField("server ID", serverId).Info("Analysis event published")
	return nil
}
