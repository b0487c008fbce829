// FILE: internal/entity/studio_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type VoiceCharacter struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	Name            string
	ProviderVoiceId string
	PreviewURL      *string
	SamplePath      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Integration struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Provider  string
	Label     string
	ApiKey    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Project struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Timeline  map[string]interface{}
	CreatedAt time.Time
	UpdatedAt time.Time
}

type WebhookEvent struct {
	Id         uuid.UUID
	DedupeKey  string
	EventName  string
	UserId     *uuid.UUID
	VariantId  *int
	Credits    int
	Processed  bool
	RawPayload []byte
	CreatedAt  time.Time
}

type Notification struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	TypeCode   string
	EntityType string
	EntityId   *uuid.UUID
	Title      string
	Message    string
	Metadata   map[string]interface{}
	IsRead     bool
	ReadAt     *time.Time
	CreatedAt  time.Time
}
