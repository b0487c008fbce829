package unitofwork

import (
	"context"

	"ai-videostudio-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CreditRepository() contract.CreditRepository
	ImageRepository() contract.ImageRepository
	VideoRepository() contract.VideoRepository
	AssetRepository() contract.AssetRepository
	VoiceRepository() contract.VoiceRepository
	IntegrationRepository() contract.IntegrationRepository
	ProjectRepository() contract.ProjectRepository
	WebhookEventRepository() contract.WebhookEventRepository
}
