// FILE: internal/dto/library_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserImageResponse struct {
	Id             uuid.UUID  `json:"id"`
	URL            string     `json:"url"`
	StorageSuccess bool       `json:"storageSuccess"`
	Prompt         string     `json:"prompt"`
	Model          string     `json:"model"`
	AspectRatio    string     `json:"aspect_ratio,omitempty"`
	ProjectId      *uuid.UUID `json:"project_id,omitempty"`
	ClipId         string     `json:"clip_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type UserVideoResponse struct {
	Id             uuid.UUID  `json:"id"`
	URL            string     `json:"url"`
	StorageSuccess bool       `json:"storageSuccess"`
	Prompt         string     `json:"prompt"`
	Model          string     `json:"model"`
	Duration       int        `json:"duration,omitempty"`
	AspectRatio    string     `json:"aspect_ratio,omitempty"`
	ProjectId      *uuid.UUID `json:"project_id,omitempty"`
	ClipId         string     `json:"clip_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type UserAssetResponse struct {
	Id             uuid.UUID  `json:"id"`
	Kind           string     `json:"kind"`
	URL            string     `json:"url"`
	StorageSuccess bool       `json:"storageSuccess"`
	Name           string     `json:"name"`
	ContentType    string     `json:"content_type,omitempty"`
	SizeBytes      int64      `json:"size_bytes,omitempty"`
	ProjectId      *uuid.UUID `json:"project_id,omitempty"`
	ClipId         string     `json:"clip_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type CreateAssetRequest struct {
	Kind      string     `json:"kind" validate:"required,oneof=audio transcript upload"`
	URL       string     `json:"url" validate:"required,url"`
	Name      string     `json:"name" validate:"required,min=1,max=255"`
	ProjectId *uuid.UUID `json:"project_id"`
	ClipId    *string    `json:"clip_id"`
}

type ListQuery struct {
	Page      int        `query:"page" validate:"omitempty,min=1"`
	Limit     int        `query:"limit" validate:"omitempty,min=1,max=100"`
	ProjectId *uuid.UUID `query:"project_id"`
}
