// FILE: internal/entity/media_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type AssetKind string

const (
	AssetKindAudio      AssetKind = "audio"
	AssetKindTranscript AssetKind = "transcript"
	AssetKindUpload     AssetKind = "upload"
)

type UserImage struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	ProjectId    *uuid.UUID
	ClipId       *string
	URL          string
	EphemeralURL *string
	StoragePath  *string
	Bucket       *string
	Prompt       string
	Model        string
	AspectRatio  *string
	Metadata     map[string]interface{}
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserVideo struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	ProjectId    *uuid.UUID
	ClipId       *string
	URL          string
	EphemeralURL *string
	StoragePath  *string
	Bucket       *string
	Prompt       string
	Model        string
	DurationSec  *int
	AspectRatio  *string
	Metadata     map[string]interface{}
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserAsset struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	ProjectId    *uuid.UUID
	ClipId       *string
	Kind         AssetKind
	URL          string
	EphemeralURL *string
	StoragePath  *string
	Bucket       *string
	Name         string
	ContentType  *string
	SizeBytes    *int64
	Metadata     map[string]interface{}
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
