// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/model"
	"ai-videostudio-be/internal/repository"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process media bus: every finished
// generation becomes an inbox notification and a real-time push.
type consumerService struct {
	pubSub           *gochannel.GoChannel
	topicName        string
	notificationRepo repository.NotificationRepository
	delivery         NotificationDelivery
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	notificationRepo repository.NotificationRepository,
	delivery NotificationDelivery,
) IConsumerService {
	return &consumerService{
		pubSub:           pubSub,
		topicName:        topicName,
		notificationRepo: notificationRepo,
		delivery:         delivery,
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
	var payload dto.MediaGeneratedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing generated %s %s for user %s", payload.MediaKind, payload.MediaId, payload.UserId)

	metaMap := map[string]interface{}{
		"url":   payload.URL,
		"model": payload.Model,
	}
	if payload.ProjectId != nil {
		metaMap["project_id"] = payload.ProjectId.String()
	}
	metaJSON, _ := json.Marshal(metaMap)

	mediaID := payload.MediaId
	notif := model.Notification{
		Id:         uuid.New(),
		UserId:     payload.UserId,
		TypeCode:   "MEDIA_GENERATED",
		EntityType: payload.MediaKind,
		EntityId:   &mediaID,
		Title:      notificationTitleFor(payload.MediaKind),
		Message:    fmt.Sprintf("Your %s generated with %s is ready.", payload.MediaKind, payload.Model),
		Metadata:   datatypes.JSON(metaJSON),
		IsRead:     false,
		CreatedAt:  time.Now(),
	}

	if err := cs.notificationRepo.CreateNotification(ctx, &notif); err != nil {
		log.Printf("[ERROR] Failed to save notification for user %s: %v", payload.UserId, err)
		msg.Nack() // Retriable
		return
	}

	if cs.delivery != nil {
		cs.delivery.Send(payload.UserId, notif)
	}

	log.Printf("[SUCCESS] Notified user %s about %s %s", payload.UserId, payload.MediaKind, payload.MediaId)
	msg.Ack()
}

func notificationTitleFor(kind string) string {
	switch kind {
	case "video":
		return "Your video is ready"
	case "audio":
		return "Your audio is ready"
	default:
		return "Your image is ready"
	}
}
