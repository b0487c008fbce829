package contract

import (
	"context"

	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/repository/specification"

	"github.com/google/uuid"
)

type VoiceRepository interface {
	Create(ctx context.Context, voice *entity.VoiceCharacter) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VoiceCharacter, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VoiceCharacter, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type IntegrationRepository interface {
	Create(ctx context.Context, integration *entity.Integration) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Integration, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Integration, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	Update(ctx context.Context, project *entity.Project) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type WebhookEventRepository interface {
	// Create fails with a duplicate-key error when the dedupe key was already
	// recorded; callers treat that as "seen before".
	Create(ctx context.Context, event *entity.WebhookEvent) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WebhookEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
}
