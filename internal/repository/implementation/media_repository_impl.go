package implementation

import (
	"context"
	"errors"

	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/mapper"
	"ai-videostudio-be/internal/model"
	"ai-videostudio-be/internal/repository/contract"
	"ai-videostudio-be/internal/repository/scope"
	"ai-videostudio-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func applySpecs(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

type ImageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MediaMapper
}

func NewImageRepository(db *gorm.DB) contract.ImageRepository {
	return &ImageRepositoryImpl{
		db:     db,
		mapper: mapper.NewMediaMapper(),
	}
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *entity.UserImage) error {
	m := r.mapper.ImageToModel(image)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*image = *r.mapper.ImageToEntity(m)
	return nil
}

func (r *ImageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserImage, error) {
	var m model.UserImage
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ImageToEntity(&m), nil
}

func (r *ImageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserImage, error) {
	var ms []*model.UserImage
	query := applySpecs(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.ImagesToEntities(ms), nil
}

func (r *ImageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecs(r.db.WithContext(ctx).Model(&model.UserImage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ImageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserImage{}).Error
}

type VideoRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MediaMapper
}

func NewVideoRepository(db *gorm.DB) contract.VideoRepository {
	return &VideoRepositoryImpl{
		db:     db,
		mapper: mapper.NewMediaMapper(),
	}
}

func (r *VideoRepositoryImpl) Create(ctx context.Context, video *entity.UserVideo) error {
	m := r.mapper.VideoToModel(video)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*video = *r.mapper.VideoToEntity(m)
	return nil
}

func (r *VideoRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserVideo, error) {
	var m model.UserVideo
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.VideoToEntity(&m), nil
}

func (r *VideoRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserVideo, error) {
	var ms []*model.UserVideo
	query := applySpecs(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.VideosToEntities(ms), nil
}

func (r *VideoRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecs(r.db.WithContext(ctx).Model(&model.UserVideo{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *VideoRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserVideo{}).Error
}

type AssetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MediaMapper
}

func NewAssetRepository(db *gorm.DB) contract.AssetRepository {
	return &AssetRepositoryImpl{
		db:     db,
		mapper: mapper.NewMediaMapper(),
	}
}

func (r *AssetRepositoryImpl) Create(ctx context.Context, asset *entity.UserAsset) error {
	m := r.mapper.AssetToModel(asset)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*asset = *r.mapper.AssetToEntity(m)
	return nil
}

func (r *AssetRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserAsset, error) {
	var m model.UserAsset
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AssetToEntity(&m), nil
}

func (r *AssetRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserAsset, error) {
	var ms []*model.UserAsset
	query := applySpecs(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.AssetsToEntities(ms), nil
}

func (r *AssetRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecs(r.db.WithContext(ctx).Model(&model.UserAsset{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AssetRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserAsset{}).Error
}
