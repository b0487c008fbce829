package implementation

import (
	"context"
	"errors"

	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/mapper"
	"ai-videostudio-be/internal/model"
	"ai-videostudio-be/internal/repository/contract"
	"ai-videostudio-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoiceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StudioMapper
}

func NewVoiceRepository(db *gorm.DB) contract.VoiceRepository {
	return &VoiceRepositoryImpl{
		db:     db,
		mapper: mapper.NewStudioMapper(),
	}
}

func (r *VoiceRepositoryImpl) Create(ctx context.Context, voice *entity.VoiceCharacter) error {
	m := r.mapper.VoiceToModel(voice)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*voice = *r.mapper.VoiceToEntity(m)
	return nil
}

func (r *VoiceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VoiceCharacter, error) {
	var m model.VoiceCharacter
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.VoiceToEntity(&m), nil
}

func (r *VoiceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VoiceCharacter, error) {
	var ms []*model.VoiceCharacter
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.VoicesToEntities(ms), nil
}

func (r *VoiceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecs(r.db.WithContext(ctx).Model(&model.VoiceCharacter{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *VoiceRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.VoiceCharacter{}).Error
}

type IntegrationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StudioMapper
}

func NewIntegrationRepository(db *gorm.DB) contract.IntegrationRepository {
	return &IntegrationRepositoryImpl{
		db:     db,
		mapper: mapper.NewStudioMapper(),
	}
}

func (r *IntegrationRepositoryImpl) Create(ctx context.Context, integration *entity.Integration) error {
	m := r.mapper.IntegrationToModel(integration)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*integration = *r.mapper.IntegrationToEntity(m)
	return nil
}

func (r *IntegrationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Integration, error) {
	var m model.Integration
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.IntegrationToEntity(&m), nil
}

func (r *IntegrationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Integration, error) {
	var ms []*model.Integration
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.IntegrationsToEntities(ms), nil
}

func (r *IntegrationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecs(r.db.WithContext(ctx).Model(&model.Integration{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *IntegrationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Integration{}).Error
}

type ProjectRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StudioMapper
}

func NewProjectRepository(db *gorm.DB) contract.ProjectRepository {
	return &ProjectRepositoryImpl{
		db:     db,
		mapper: mapper.NewStudioMapper(),
	}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *entity.Project) error {
	m := r.mapper.ProjectToModel(project)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*project = *r.mapper.ProjectToEntity(m)
	return nil
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, project *entity.Project) error {
	m := r.mapper.ProjectToModel(project)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*project = *r.mapper.ProjectToEntity(m)
	return nil
}

func (r *ProjectRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error) {
	var m model.Project
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ProjectToEntity(&m), nil
}

func (r *ProjectRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Project, error) {
	var ms []*model.Project
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.ProjectsToEntities(ms), nil
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{}).Error
}

type WebhookEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StudioMapper
}

func NewWebhookEventRepository(db *gorm.DB) contract.WebhookEventRepository {
	return &WebhookEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewStudioMapper(),
	}
}

func (r *WebhookEventRepositoryImpl) Create(ctx context.Context, event *entity.WebhookEvent) error {
	m := r.mapper.WebhookEventToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.WebhookEventToEntity(m)
	return nil
}

func (r *WebhookEventRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WebhookEvent, error) {
	var m model.WebhookEvent
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.WebhookEventToEntity(&m), nil
}

func (r *WebhookEventRepositoryImpl) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.WebhookEvent{}).
		Where("id = ?", id).
		UpdateColumn("processed", true).Error
}
