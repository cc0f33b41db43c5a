package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ChannelBus delivers events in-process over a watermill Go channel pub/sub.
// Used when no external broker is configured.
type ChannelBus struct {
	pubSub *gochannel.GoChannel
}

func NewChannelBus(logger watermill.LoggerAdapter) *ChannelBus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &ChannelBus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, logger),
	}
}

func (b *ChannelBus) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(ToEnvelope(event))
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(event.EventId(), payload)
	msg.Metadata.Set("type", event.EventType())
	msg.SetContext(ctx)

	return b.pubSub.Publish(Subject(event.EventType()), msg)
}

// Subscribe streams events of one type. Consumers must Ack each message.
func (b *ChannelBus) Subscribe(ctx context.Context, eventType string) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, Subject(eventType))
}

func (b *ChannelBus) Close() error {
	return b.pubSub.Close()
}
