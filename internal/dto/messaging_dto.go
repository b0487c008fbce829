// FILE: internal/dto/messaging_dto.go
package dto

import "github.com/google/uuid"

// MediaGeneratedMessage flows over the in-process bus from the generation
// services to the notification consumer.
type MediaGeneratedMessage struct {
	UserId    uuid.UUID  `json:"user_id"`
	MediaId   uuid.UUID  `json:"media_id"`
	MediaKind string     `json:"media_kind"` // image | video | audio
	URL       string     `json:"url"`
	Model     string     `json:"model"`
	ProjectId *uuid.UUID `json:"project_id,omitempty"`
}
