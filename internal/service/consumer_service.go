package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"film-assistant-be/internal/dto"
	"film-assistant-be/internal/pkg/logger"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the upload queue: each message is one document
// fragment to embed and persist.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	chunkService IChunkService
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	chunkService IChunkService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		chunkService: chunkService,
		logger:       log,
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
	var payload dto.PublishChunkFragmentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal fragment message", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite retry.
		msg.Ack()
		return
	}

	chunkID, err := cs.chunkService.Ingest(ctx, payload.Content)
	if err != nil {
		cs.logger.Error("Consumer", "Fragment ingestion failed", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("Consumer", "Fragment ingested", map[string]interface{}{
		"chunk_id": chunkID,
	})
	msg.Ack()
}
