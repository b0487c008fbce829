package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoiceCharacter struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name            string         `gorm:"type:varchar(255);not null"`
	ProviderVoiceId string         `gorm:"type:varchar(255);not null"`
	PreviewURL      *string        `gorm:"type:text"`
	SamplePath      *string        `gorm:"type:text"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (VoiceCharacter) TableName() string {
	return "voice_characters"
}
