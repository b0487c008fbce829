package mapper

import (
	"gorm.io/datatypes"

	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/model"
)

type StudioMapper struct{}

func NewStudioMapper() *StudioMapper {
	return &StudioMapper{}
}

func (m *StudioMapper) VoiceToEntity(v *model.VoiceCharacter) *entity.VoiceCharacter {
	if v == nil {
		return nil
	}
	return &entity.VoiceCharacter{
		Id:              v.Id,
		UserId:          v.UserId,
		Name:            v.Name,
		ProviderVoiceId: v.ProviderVoiceId,
		PreviewURL:      v.PreviewURL,
		SamplePath:      v.SamplePath,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func (m *StudioMapper) VoiceToModel(v *entity.VoiceCharacter) *model.VoiceCharacter {
	if v == nil {
		return nil
	}
	return &model.VoiceCharacter{
		Id:              v.Id,
		UserId:          v.UserId,
		Name:            v.Name,
		ProviderVoiceId: v.ProviderVoiceId,
		PreviewURL:      v.PreviewURL,
		SamplePath:      v.SamplePath,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func (m *StudioMapper) VoicesToEntities(vs []*model.VoiceCharacter) []*entity.VoiceCharacter {
	entities := make([]*entity.VoiceCharacter, len(vs))
	for i, v := range vs {
		entities[i] = m.VoiceToEntity(v)
	}
	return entities
}

func (m *StudioMapper) IntegrationToEntity(in *model.Integration) *entity.Integration {
	if in == nil {
		return nil
	}
	return &entity.Integration{
		Id:        in.Id,
		UserId:    in.UserId,
		Provider:  in.Provider,
		Label:     in.Label,
		ApiKey:    in.ApiKey,
		CreatedAt: in.CreatedAt,
		UpdatedAt: in.UpdatedAt,
	}
}

func (m *StudioMapper) IntegrationToModel(in *entity.Integration) *model.Integration {
	if in == nil {
		return nil
	}
	return &model.Integration{
		Id:        in.Id,
		UserId:    in.UserId,
		Provider:  in.Provider,
		Label:     in.Label,
		ApiKey:    in.ApiKey,
		CreatedAt: in.CreatedAt,
		UpdatedAt: in.UpdatedAt,
	}
}

func (m *StudioMapper) IntegrationsToEntities(ins []*model.Integration) []*entity.Integration {
	entities := make([]*entity.Integration, len(ins))
	for i, in := range ins {
		entities[i] = m.IntegrationToEntity(in)
	}
	return entities
}

func (m *StudioMapper) ProjectToEntity(p *model.Project) *entity.Project {
	if p == nil {
		return nil
	}
	return &entity.Project{
		Id:        p.Id,
		UserId:    p.UserId,
		Title:     p.Title,
		Timeline:  jsonToMap(p.Timeline),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *StudioMapper) ProjectToModel(p *entity.Project) *model.Project {
	if p == nil {
		return nil
	}
	return &model.Project{
		Id:        p.Id,
		UserId:    p.UserId,
		Title:     p.Title,
		Timeline:  mapToJSON(p.Timeline),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *StudioMapper) ProjectsToEntities(ps []*model.Project) []*entity.Project {
	entities := make([]*entity.Project, len(ps))
	for i, p := range ps {
		entities[i] = m.ProjectToEntity(p)
	}
	return entities
}

func (m *StudioMapper) WebhookEventToEntity(e *model.WebhookEvent) *entity.WebhookEvent {
	if e == nil {
		return nil
	}
	return &entity.WebhookEvent{
		Id:         e.Id,
		DedupeKey:  e.DedupeKey,
		EventName:  e.EventName,
		UserId:     e.UserId,
		VariantId:  e.VariantId,
		Credits:    e.Credits,
		Processed:  e.Processed,
		RawPayload: e.RawPayload,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *StudioMapper) WebhookEventToModel(e *entity.WebhookEvent) *model.WebhookEvent {
	if e == nil {
		return nil
	}
	return &model.WebhookEvent{
		Id:         e.Id,
		DedupeKey:  e.DedupeKey,
		EventName:  e.EventName,
		UserId:     e.UserId,
		VariantId:  e.VariantId,
		Credits:    e.Credits,
		Processed:  e.Processed,
		RawPayload: datatypes.JSON(e.RawPayload),
		CreatedAt:  e.CreatedAt,
	}
}

func (m *StudioMapper) NotificationToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}
	return &entity.Notification{
		Id:         n.Id,
		UserId:     n.UserId,
		TypeCode:   n.TypeCode,
		EntityType: n.EntityType,
		EntityId:   n.EntityId,
		Title:      n.Title,
		Message:    n.Message,
		Metadata:   jsonToMap(n.Metadata),
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}
}

func (m *StudioMapper) NotificationToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}
	return &model.Notification{
		Id:         n.Id,
		UserId:     n.UserId,
		TypeCode:   n.TypeCode,
		EntityType: n.EntityType,
		EntityId:   n.EntityId,
		Title:      n.Title,
		Message:    n.Message,
		Metadata:   mapToJSON(n.Metadata),
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}
}

func (m *StudioMapper) NotificationsToEntities(ns []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, len(ns))
	for i, n := range ns {
		entities[i] = m.NotificationToEntity(n)
	}
	return entities
}
