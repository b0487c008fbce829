package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-videostudio-be/internal/model"
	"ai-videostudio-be/internal/pkg/logger"
	"ai-videostudio-be/internal/repository"
	"ai-videostudio-be/pkg/events"
	pktNats "ai-videostudio-be/pkg/nats" // Renamed to avoid collision

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

// notificationText is the inbox copy for one event type. Placeholders
// like {plan} are filled from the event payload.
type notificationText struct {
	Title   string
	Message string
}

var notificationTexts = map[string]notificationText{
	events.TypeCreditsGranted:  {"Credits Added", "{credits} credits ({plan}) have been added to your account."},
	events.TypeUserRegistered:  {"Welcome!", "Your account is ready. Generate your first clip to get started."},
	events.TypeUserLogin:       {"New Sign-In", "New sign-in from {device} at {time}."},
	events.TypePasswordChanged: {"Password Changed", "Your password was changed. If this wasn't you, reset it now."},
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	// Subscribe to all events with a durable consumer
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// Strip "events." prefix from type if present (NATS subject includes stream name)
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	// System broadcasts are pushed to every connected client and never
	// written to individual inboxes.
	if typeCode == events.TypeSystemBroadcast {
		if s.delivery != nil {
			payload := event.Payload()
			title, _ := payload["title"].(string)
			message, _ := payload["message"].(string)
			s.delivery.Broadcast(s.buildNotification(uuid.Nil, typeCode, notificationText{Title: title, Message: message}, event))
		}
		return nil
	}

	text, ok := notificationTexts[typeCode]
	if !ok {
		s.logger.Info("NotificationService", fmt.Sprintf("No inbox copy for event '%s', skipping", typeCode), nil)
		return nil
	}

	userID, ok := payloadUserID(event.Payload())
	if !ok {
		s.logger.Warn("NotificationService", fmt.Sprintf("No user_id in payload for event %s", typeCode), nil)
		return nil
	}

	notif := s.buildNotification(userID, typeCode, text, event)

	if err := s.repo.CreateNotification(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userID), map[string]interface{}{"error": err})
		return err // NATS will retry if we return error
	}

	if s.delivery != nil {
		s.delivery.Send(userID, notif)
	}

	return nil
}

// payloadUserID tolerates both string and uuid.UUID values; publishers
// are not consistent about which they put in the map.
func payloadUserID(payload map[string]interface{}) (uuid.UUID, bool) {
	switch v := payload["user_id"].(type) {
	case string:
		uid, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, false
		}
		return uid, true
	case uuid.UUID:
		return v, true
	default:
		return uuid.Nil, false
	}
}

func (s *NotificationService) buildNotification(userID uuid.UUID, typeCode string, text notificationText, event events.Event) model.Notification {
	// Simple template engine
	msg := text.Message
	payload := event.Payload()

	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		valStr := fmt.Sprintf("%v", v)
		msg = strings.ReplaceAll(msg, placeholder, valStr)
	}

	entityType := ""
	var entityID *uuid.UUID

	if et, ok := payload["entity_type"].(string); ok {
		entityType = et
	}
	if eidStr, ok := payload["entity_id"].(string); ok {
		if eid, err := uuid.Parse(eidStr); err == nil {
			entityID = &eid
		}
	}

	metaMap := make(map[string]interface{})
	for k, v := range payload {
		metaMap[k] = v
	}
	if entityType != "" && entityID != nil {
		metaMap["action_url"] = fmt.Sprintf("/%ss/%s", entityType, entityID.String())
	}
	metaJSON, _ := json.Marshal(metaMap)

	return model.Notification{
		Id:         uuid.New(),
		UserId:     userID,
		TypeCode:   typeCode,
		Title:      text.Title,
		Message:    msg,
		Metadata:   datatypes.JSON(metaJSON),
		EntityType: entityType,
		EntityId:   entityID,
		CreatedAt:  time.Now(),
		IsRead:     false,
	}
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks a notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
