package service

import (
	"context"
	"encoding/json"
	"time"

	"rams-generator-be/internal/dto"
	"rams-generator-be/internal/entity"
	"rams-generator-be/internal/pkg/logger"
	"rams-generator-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService archives generated-document metadata from the in-process
// event bus.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	recordRepo contract.IDocumentRecordRepository
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	recordRepo contract.IDocumentRecordRepository,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		recordRepo: recordRepo,
		logger:     sysLogger,
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
	var payload dto.PublishDocumentGeneratedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	recordID, err := uuid.Parse(payload.DocumentId)
	if err != nil {
		recordID = uuid.New()
	}
	generatedAt := payload.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	record := &entity.DocumentRecord{
		Id:              recordID,
		Source:          payload.Source,
		TaskDescription: payload.TaskDescription,
		SizeBytes:       payload.SizeBytes,
		CreatedAt:       generatedAt,
	}

	if err := cs.recordRepo.Create(ctx, record); err != nil {
		cs.logger.Error("consumer", "Failed to archive document record", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	cs.logger.Info("consumer", "Archived generated document", map[string]interface{}{
		"document_id": payload.DocumentId,
		"source":      payload.Source,
		"size_bytes":  payload.SizeBytes,
	})
	msg.Ack()
}
