package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/model"
)

// jsonToMap and mapToJSON tolerate malformed payloads: metadata is advisory
// and must never fail a read or write path.
func jsonToMap(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func mapToJSON(in map[string]interface{}) datatypes.JSON {
	if len(in) == 0 {
		return nil
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return nil
	}
	return raw
}

type MediaMapper struct{}

func NewMediaMapper() *MediaMapper {
	return &MediaMapper{}
}

func (m *MediaMapper) ImageToEntity(img *model.UserImage) *entity.UserImage {
	if img == nil {
		return nil
	}
	return &entity.UserImage{
		Id:           img.Id,
		UserId:       img.UserId,
		ProjectId:    img.ProjectId,
		ClipId:       img.ClipId,
		URL:          img.URL,
		EphemeralURL: img.EphemeralURL,
		StoragePath:  img.StoragePath,
		Bucket:       img.Bucket,
		Prompt:       img.Prompt,
		Model:        img.Model,
		AspectRatio:  img.AspectRatio,
		Metadata:     jsonToMap(img.Metadata),
		CreatedAt:    img.CreatedAt,
		UpdatedAt:    img.UpdatedAt,
	}
}

func (m *MediaMapper) ImageToModel(img *entity.UserImage) *model.UserImage {
	if img == nil {
		return nil
	}
	return &model.UserImage{
		Id:           img.Id,
		UserId:       img.UserId,
		ProjectId:    img.ProjectId,
		ClipId:       img.ClipId,
		URL:          img.URL,
		EphemeralURL: img.EphemeralURL,
		StoragePath:  img.StoragePath,
		Bucket:       img.Bucket,
		Prompt:       img.Prompt,
		Model:        img.Model,
		AspectRatio:  img.AspectRatio,
		Metadata:     mapToJSON(img.Metadata),
		CreatedAt:    img.CreatedAt,
		UpdatedAt:    img.UpdatedAt,
	}
}

func (m *MediaMapper) ImagesToEntities(imgs []*model.UserImage) []*entity.UserImage {
	entities := make([]*entity.UserImage, len(imgs))
	for i, img := range imgs {
		entities[i] = m.ImageToEntity(img)
	}
	return entities
}

func (m *MediaMapper) VideoToEntity(v *model.UserVideo) *entity.UserVideo {
	if v == nil {
		return nil
	}
	return &entity.UserVideo{
		Id:           v.Id,
		UserId:       v.UserId,
		ProjectId:    v.ProjectId,
		ClipId:       v.ClipId,
		URL:          v.URL,
		EphemeralURL: v.EphemeralURL,
		StoragePath:  v.StoragePath,
		Bucket:       v.Bucket,
		Prompt:       v.Prompt,
		Model:        v.Model,
		DurationSec:  v.DurationSec,
		AspectRatio:  v.AspectRatio,
		Metadata:     jsonToMap(v.Metadata),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func (m *MediaMapper) VideoToModel(v *entity.UserVideo) *model.UserVideo {
	if v == nil {
		return nil
	}
	return &model.UserVideo{
		Id:           v.Id,
		UserId:       v.UserId,
		ProjectId:    v.ProjectId,
		ClipId:       v.ClipId,
		URL:          v.URL,
		EphemeralURL: v.EphemeralURL,
		StoragePath:  v.StoragePath,
		Bucket:       v.Bucket,
		Prompt:       v.Prompt,
		Model:        v.Model,
		DurationSec:  v.DurationSec,
		AspectRatio:  v.AspectRatio,
		Metadata:     mapToJSON(v.Metadata),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func (m *MediaMapper) VideosToEntities(vs []*model.UserVideo) []*entity.UserVideo {
	entities := make([]*entity.UserVideo, len(vs))
	for i, v := range vs {
		entities[i] = m.VideoToEntity(v)
	}
	return entities
}

func (m *MediaMapper) AssetToEntity(a *model.UserAsset) *entity.UserAsset {
	if a == nil {
		return nil
	}
	return &entity.UserAsset{
		Id:           a.Id,
		UserId:       a.UserId,
		ProjectId:    a.ProjectId,
		ClipId:       a.ClipId,
		Kind:         entity.AssetKind(a.Kind),
		URL:          a.URL,
		EphemeralURL: a.EphemeralURL,
		StoragePath:  a.StoragePath,
		Bucket:       a.Bucket,
		Name:         a.Name,
		ContentType:  a.ContentType,
		SizeBytes:    a.SizeBytes,
		Metadata:     jsonToMap(a.Metadata),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *MediaMapper) AssetToModel(a *entity.UserAsset) *model.UserAsset {
	if a == nil {
		return nil
	}
	return &model.UserAsset{
		Id:           a.Id,
		UserId:       a.UserId,
		ProjectId:    a.ProjectId,
		ClipId:       a.ClipId,
		Kind:         string(a.Kind),
		URL:          a.URL,
		EphemeralURL: a.EphemeralURL,
		StoragePath:  a.StoragePath,
		Bucket:       a.Bucket,
		Name:         a.Name,
		ContentType:  a.ContentType,
		SizeBytes:    a.SizeBytes,
		Metadata:     mapToJSON(a.Metadata),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *MediaMapper) AssetsToEntities(as []*model.UserAsset) []*entity.UserAsset {
	entities := make([]*entity.UserAsset, len(as))
	for i, a := range as {
		entities[i] = m.AssetToEntity(a)
	}
	return entities
}
