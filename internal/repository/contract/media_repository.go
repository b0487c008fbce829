package contract

import (
	"context"

	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ImageRepository interface {
	Create(ctx context.Context, image *entity.UserImage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserImage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserImage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type VideoRepository interface {
	Create(ctx context.Context, video *entity.UserVideo) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserVideo, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserVideo, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AssetRepository interface {
	Create(ctx context.Context, asset *entity.UserAsset) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserAsset, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserAsset, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
