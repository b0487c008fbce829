// FILE: internal/dto/studio_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type VoiceCharacterResponse struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	VoiceId    string    `json:"voice_id"`
	PreviewURL string    `json:"preview_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateVoiceRequest struct {
	Name string `form:"name" validate:"required,min=1,max=255"`
}

// IntegrationResponse deliberately has no api_key field; stored keys are
// write-only through the API.
type IntegrationResponse struct {
	Id        uuid.UUID `json:"id"`
	Provider  string    `json:"provider"`
	Label     string    `json:"label,omitempty"`
	KeyHint   string    `json:"key_hint"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateIntegrationRequest struct {
	Provider string `json:"provider" validate:"required,oneof=openai fal elevenlabs gemini"`
	Label    string `json:"label" validate:"omitempty,max=255"`
	ApiKey   string `json:"api_key" validate:"required,min=8"`
}

type ProjectResponse struct {
	Id        uuid.UUID              `json:"id"`
	Title     string                 `json:"title"`
	Timeline  map[string]interface{} `json:"timeline,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type CreateProjectRequest struct {
	Title    string                 `json:"title" validate:"required,min=1,max=255"`
	Timeline map[string]interface{} `json:"timeline"`
}

type UpdateProjectRequest struct {
	Title    string                 `json:"title" validate:"omitempty,min=1,max=255"`
	Timeline map[string]interface{} `json:"timeline"`
}

type NotificationResponse struct {
	Id        uuid.UUID              `json:"id"`
	TypeCode  string                 `json:"type_code"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	IsRead    bool                   `json:"is_read"`
	CreatedAt time.Time              `json:"created_at"`
}
