package service

import (
	"encoding/json"
	"fmt"

	"rams-generator-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	PublishDocumentGenerated(payload *dto.PublishDocumentGeneratedMessage) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) PublishDocumentGenerated(payload *dto.PublishDocumentGeneratedMessage) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal document generated payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	return ps.publisher.Publish(ps.topicName, msg)
}
