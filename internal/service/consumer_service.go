// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"event-discovery-be/internal/dto"
	"event-discovery-be/internal/repository/contract"
	"event-discovery-be/pkg/embedding"
	"event-discovery-be/pkg/rag"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	eventRepository contract.EventRepository
	embeddingClient *embedding.Client
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	eventRepository contract.EventRepository,
	embeddingClient *embedding.Client,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		eventRepository: eventRepository,
		embeddingClient: embeddingClient,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishRefreshEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Refreshing embedding for EventId: %s", payload.EventId)

	event, err := cs.eventRepository.FindOne(ctx, payload.EventId)
	if err != nil {
		log.Printf("[ERROR] Failed to get event %s: %v", payload.EventId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if event == nil {
		log.Printf("[ERROR] Event not found: %s", payload.EventId)
		msg.Ack() // Event deleted? Ack.
		return
	}

	searchText := rag.BuildSearchText(*event)
	if searchText == "" {
		log.Printf("[WARN] Event %s produced empty search text, skipping", payload.EventId)
		msg.Ack()
		return
	}

	// Event texts are one-off, skip the query cache.
	vector, err := cs.embeddingClient.EncodeOne(ctx, searchText, false)
	if err != nil {
		log.Printf("[ERROR] Failed to embed event %s: %v", payload.EventId, err)
		msg.Nack()
		return
	}

	if err := cs.eventRepository.UpdateEmbedding(ctx, event.Id, vector); err != nil {
		log.Printf("[ERROR] Failed to store embedding for event %s: %v", payload.EventId, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Embedding refreshed for EventId: %s (text length: %d)", payload.EventId, len(searchText))
	msg.Ack()
}
