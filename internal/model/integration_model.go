package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Integration holds a user's own provider API key. The key is stored as-is
// but is never serialized back out through the API layer.
type Integration struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index:idx_integrations_user_provider,priority:1"`
	Provider  string         `gorm:"type:varchar(50);not null;index:idx_integrations_user_provider,priority:2"`
	Label     string         `gorm:"type:varchar(255)"`
	ApiKey    string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Integration) TableName() string {
	return "integrations"
}
