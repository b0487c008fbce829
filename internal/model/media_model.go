package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserImage struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProjectId    *uuid.UUID     `gorm:"type:uuid;index"`
	ClipId       *string        `gorm:"type:varchar(100)"`
	URL          string         `gorm:"type:text;not null"`
	EphemeralURL *string        `gorm:"type:text"`
	StoragePath  *string        `gorm:"type:text"`
	Bucket       *string        `gorm:"type:varchar(100)"`
	Prompt       string         `gorm:"type:text"`
	Model        string         `gorm:"type:varchar(100);not null"`
	AspectRatio  *string        `gorm:"type:varchar(20)"`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (UserImage) TableName() string {
	return "user_images"
}

type UserVideo struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProjectId    *uuid.UUID     `gorm:"type:uuid;index"`
	ClipId       *string        `gorm:"type:varchar(100)"`
	URL          string         `gorm:"type:text;not null"`
	EphemeralURL *string        `gorm:"type:text"`
	StoragePath  *string        `gorm:"type:text"`
	Bucket       *string        `gorm:"type:varchar(100)"`
	Prompt       string         `gorm:"type:text"`
	Model        string         `gorm:"type:varchar(100);not null"`
	DurationSec  *int           `gorm:""`
	AspectRatio  *string        `gorm:"type:varchar(20)"`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (UserVideo) TableName() string {
	return "user_videos"
}

// UserAsset covers uploaded and generated files that are neither images nor
// videos in the library sense: audio tracks, transcripts, lip-sync sources.
type UserAsset struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProjectId    *uuid.UUID     `gorm:"type:uuid;index"`
	ClipId       *string        `gorm:"type:varchar(100)"`
	Kind         string         `gorm:"type:varchar(50);not null;index"` // audio | transcript | upload
	URL          string         `gorm:"type:text;not null"`
	EphemeralURL *string        `gorm:"type:text"`
	StoragePath  *string        `gorm:"type:text"`
	Bucket       *string        `gorm:"type:varchar(100)"`
	Name         string         `gorm:"type:varchar(255)"`
	ContentType  *string        `gorm:"type:varchar(100)"`
	SizeBytes    *int64         `gorm:""`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (UserAsset) TableName() string {
	return "user_assets"
}
