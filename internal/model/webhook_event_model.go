package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WebhookEvent records every billing webhook delivery so retries from the
// payment provider never grant credits twice.
type WebhookEvent struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DedupeKey  string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	EventName  string         `gorm:"type:varchar(100);not null"`
	UserId     *uuid.UUID     `gorm:"type:uuid;index"`
	VariantId  *int           `gorm:""`
	Credits    int            `gorm:"not null;default:0"`
	Processed  bool           `gorm:"default:false"`
	RawPayload datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}
