package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByProject struct {
	ProjectID uuid.UUID
}

func (s ByProject) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectID)
}

type ByClip struct {
	ClipID string
}

func (s ByClip) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("clip_id = ?", s.ClipID)
}

type ByAssetKind struct {
	Kind string
}

func (s ByAssetKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}

type ByProvider struct {
	Provider string
}

func (s ByProvider) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("provider = ?", s.Provider)
}

type ByDedupeKey struct {
	Key string
}

func (s ByDedupeKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("dedupe_key = ?", s.Key)
}

type UnreadOnly struct{}

func (s UnreadOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_read = ?", false)
}
