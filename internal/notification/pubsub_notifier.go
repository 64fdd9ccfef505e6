package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/mempubsub"
)

// PubSubNotifier publishes notices as JSON messages to a gocloud.dev pubsub topic,
// leaving delivery to whatever consumes the topic.
type PubSubNotifier struct {
	topic *pubsub.Topic
}

// NewPubSubNotifier opens the topic at topicURL (for example "mem://notices").
func NewPubSubNotifier(ctx context.Context, topicURL string) (*PubSubNotifier, error) {
	topic, err := pubsub.OpenTopic(ctx, topicURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open notice topic: %w", err)
	}
	return &PubSubNotifier{topic: topic}, nil
}

// Send publishes the notice. The kind is copied into the message metadata so
// consumers can route without decoding the body.
func (p *PubSubNotifier) Send(ctx context.Context, notice Notice) error {
	if err := notice.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to encode notice: %w", err)
	}

	msg := &pubsub.Message{
		Body:     body,
		Metadata: map[string]string{"kind": string(notice.Kind)},
	}
	if err := p.topic.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish notice: %w", err)
	}
	return nil
}

// Close flushes and shuts the topic down.
func (p *PubSubNotifier) Close(ctx context.Context) error {
	return p.topic.Shutdown(ctx)
}
