package service

import (
	"context"
	"fmt"
	"sync"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/repository/contract"
	"ai-videostudio-be/internal/repository/specification"
	"ai-videostudio-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory doubles for the repository layer. Specifications are matched
// by type-switching on the ones the services under test actually use.

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeUow struct {
	users        *fakeUserRepo
	credits      *fakeCreditRepo
	voices       *fakeVoiceRepo
	webhooks     *fakeWebhookRepo
	integrations *fakeIntegrationRepo
	projects     *fakeProjectRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		users:        &fakeUserRepo{users: map[uuid.UUID]*entity.User{}},
		credits:      &fakeCreditRepo{balances: map[uuid.UUID]int{}},
		voices:       &fakeVoiceRepo{},
		webhooks:     &fakeWebhookRepo{events: map[string]*entity.WebhookEvent{}},
		integrations: &fakeIntegrationRepo{},
		projects:     &fakeProjectRepo{},
	}
}

type fakeUowFactory struct{ uow *fakeUow }

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                 { return u.users }
func (u *fakeUow) CreditRepository() contract.CreditRepository             { return u.credits }
func (u *fakeUow) ImageRepository() contract.ImageRepository               { return nil }
func (u *fakeUow) VideoRepository() contract.VideoRepository               { return nil }
func (u *fakeUow) AssetRepository() contract.AssetRepository               { return nil }
func (u *fakeUow) VoiceRepository() contract.VoiceRepository               { return u.voices }
func (u *fakeUow) IntegrationRepository() contract.IntegrationRepository   { return u.integrations }
func (u *fakeUow) ProjectRepository() contract.ProjectRepository           { return u.projects }
func (u *fakeUow) WebhookEventRepository() contract.WebhookEventRepository { return u.webhooks }

// fakeCreditRepo backs the real creditService with an in-memory ledger.

type fakeCreditRepo struct {
	mu       sync.Mutex
	balances map[uuid.UUID]int
	txs      []*entity.CreditTransaction
}

func (r *fakeCreditRepo) DebitBalance(ctx context.Context, userID uuid.UUID, amount int) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance := r.balances[userID]
	if balance < amount {
		return balance, false, nil
	}
	r.balances[userID] = balance - amount
	return balance - amount, true, nil
}

func (r *fakeCreditRepo) GrantBalance(ctx context.Context, userID uuid.UUID, amount int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[userID] += amount
	return r.balances[userID], nil
}

func (r *fakeCreditRepo) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[userID], nil
}

func (r *fakeCreditRepo) CreateTransaction(ctx context.Context, tx *entity.CreditTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = append(r.txs, tx)
	return nil
}

func (r *fakeCreditRepo) FindTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner := uuid.Nil
	for _, spec := range specs {
		if s, ok := spec.(specification.UserOwnedBy); ok {
			owner = s.UserID
		}
	}
	var out []*entity.CreditTransaction
	for _, tx := range r.txs {
		if owner == uuid.Nil || tx.UserId == owner {
			out = append(out, tx)
		}
	}
	return out, nil
}

// fakeUserRepo implements the slice of contract.UserRepository the tested
// flows touch; token management is a no-op.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) add(u *entity.User) { r.users[u.Id] = u }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) DeleteUnscoped(ctx context.Context, id uuid.UUID) error {
	return r.Delete(ctx, id)
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			return r.users[s.ID], nil
		case specification.ByEmail:
			for _, u := range r.users {
				if u.Email == s.Email {
					return u, nil
				}
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindOneUnscoped(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return r.FindOne(ctx, specs...)
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) Restore(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeUserRepo) CreatePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error {
	return nil
}

func (r *fakeUserRepo) FindPasswordResetToken(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetToken, error) {
	return nil, nil
}

func (r *fakeUserRepo) MarkTokenUsed(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeUserRepo) CreateEmailVerificationToken(ctx context.Context, token *entity.EmailVerificationToken) error {
	return nil
}

func (r *fakeUserRepo) FindEmailVerificationToken(ctx context.Context, specs ...specification.Specification) (*entity.EmailVerificationToken, error) {
	return nil, nil
}

func (r *fakeUserRepo) DeleteEmailVerificationToken(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *fakeUserRepo) CreateRefreshToken(ctx context.Context, token *entity.UserRefreshToken) error {
	return nil
}

func (r *fakeUserRepo) RevokeRefreshToken(ctx context.Context, tokenHash string) error { return nil }

func (r *fakeUserRepo) GetByIdWithAvatar(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) ActivateUser(ctx context.Context, userId uuid.UUID) error { return nil }

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return nil
}

func (r *fakeUserRepo) UpdateAvatar(ctx context.Context, userId uuid.UUID, avatarURL string) error {
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	return nil
}

func (r *fakeUserRepo) SaveUserProvider(ctx context.Context, provider *entity.UserProvider) error {
	return nil
}

// fakeWebhookRepo enforces the dedupe-key unique index in memory.

type fakeWebhookRepo struct {
	mu     sync.Mutex
	events map[string]*entity.WebhookEvent
}

func (r *fakeWebhookRepo) Create(ctx context.Context, event *entity.WebhookEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.events[event.DedupeKey]; exists {
		return fmt.Errorf("duplicate key value violates unique constraint \"idx_webhook_events_dedupe_key\"")
	}
	r.events[event.DedupeKey] = event
	return nil
}

func (r *fakeWebhookRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WebhookEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if s, ok := spec.(specification.ByDedupeKey); ok {
			return r.events[s.Key], nil
		}
	}
	return nil, nil
}

func (r *fakeWebhookRepo) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.Id == id {
			e.Processed = true
		}
	}
	return nil
}

// fakeVoiceRepo keeps voices in a slice.

type fakeVoiceRepo struct {
	mu     sync.Mutex
	voices []*entity.VoiceCharacter
}

func (r *fakeVoiceRepo) Create(ctx context.Context, voice *entity.VoiceCharacter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.voices = append(r.voices, voice)
	return nil
}

func (r *fakeVoiceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VoiceCharacter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if s, ok := spec.(specification.ByID); ok {
			for _, v := range r.voices {
				if v.Id == s.ID {
					return v, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeVoiceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VoiceCharacter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.VoiceCharacter(nil), r.voices...), nil
}

func (r *fakeVoiceRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.voices)), nil
}

func (r *fakeVoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, v := range r.voices {
		if v.Id == id {
			r.voices = append(r.voices[:i], r.voices[i+1:]...)
			break
		}
	}
	return nil
}

// fakeIntegrationRepo keeps integrations in a slice and filters on the
// ownership and provider specifications the way the SQL scopes would.

type fakeIntegrationRepo struct {
	mu           sync.Mutex
	integrations []*entity.Integration
}

func integrationMatches(in *entity.Integration, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if in.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if in.UserId != s.UserID {
				return false
			}
		case specification.ByProvider:
			if in.Provider != s.Provider {
				return false
			}
		}
	}
	return true
}

func (r *fakeIntegrationRepo) Create(ctx context.Context, integration *entity.Integration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.integrations = append(r.integrations, integration)
	return nil
}

func (r *fakeIntegrationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Integration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, in := range r.integrations {
		if integrationMatches(in, specs) {
			return in, nil
		}
	}
	return nil, nil
}

func (r *fakeIntegrationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Integration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Integration
	for _, in := range r.integrations {
		if integrationMatches(in, specs) {
			out = append(out, in)
		}
	}
	return out, nil
}

func (r *fakeIntegrationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	found, _ := r.FindAll(ctx, specs...)
	return int64(len(found)), nil
}

func (r *fakeIntegrationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, in := range r.integrations {
		if in.Id == id {
			r.integrations = append(r.integrations[:i], r.integrations[i+1:]...)
			break
		}
	}
	return nil
}

// fakeProjectRepo keeps projects in a slice with the same ownership
// filtering as fakeIntegrationRepo.

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects []*entity.Project
}

func projectMatches(p *entity.Project, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if p.UserId != s.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = append(r.projects, project)
	return nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.projects {
		if p.Id == project.Id {
			r.projects[i] = project
			return nil
		}
	}
	return nil
}

func (r *fakeProjectRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.projects {
		if projectMatches(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Project
	for _, p := range r.projects {
		if projectMatches(p, specs) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.projects {
		if p.Id == id {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			break
		}
	}
	return nil
}

// fakeCreditGate stands in for ICreditService when the test exercises a
// media service rather than the gate itself.

type fakeCreditGate struct {
	mu         sync.Mutex
	chargeErr  error
	charges    []string
	refunds    []string
	lastCharge *entity.Charge
}

func (f *fakeCreditGate) Charge(ctx context.Context, userId uuid.UUID, opKey string, relatedId *uuid.UUID, meta map[string]interface{}) (*entity.Charge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.chargeErr != nil {
		return nil, f.chargeErr
	}
	f.charges = append(f.charges, opKey)
	f.lastCharge = &entity.Charge{
		TransactionId: uuid.New(),
		UserId:        userId,
		Operation:     opKey,
		Amount:        1,
	}
	return f.lastCharge, nil
}

func (f *fakeCreditGate) Refund(ctx context.Context, charge *entity.Charge, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refunds = append(f.refunds, reason)
	return nil
}

func (f *fakeCreditGate) Grant(ctx context.Context, userId uuid.UUID, amount int, notes string, meta map[string]interface{}) (int, error) {
	return amount, nil
}

func (f *fakeCreditGate) GetBalance(ctx context.Context, userId uuid.UUID) (*dto.CreditBalanceResponse, error) {
	return nil, nil
}

// fakePersistence records what it was asked to persist and echoes a durable
// or ephemeral outcome.

type fakePersistence struct {
	mu             sync.Mutex
	storageSuccess bool
	durableURL     string
	requests       []PersistMediaRequest
}

func (f *fakePersistence) outcome(req PersistMediaRequest) PersistOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.storageSuccess {
		return PersistOutcome{MediaId: uuid.New(), URL: f.durableURL, StorageSuccess: true}
	}
	return PersistOutcome{MediaId: uuid.New(), URL: req.SourceURL, StorageSuccess: false}
}

func (f *fakePersistence) PersistImage(ctx context.Context, req PersistMediaRequest) PersistOutcome {
	return f.outcome(req)
}

func (f *fakePersistence) PersistVideo(ctx context.Context, req PersistMediaRequest) PersistOutcome {
	return f.outcome(req)
}

func (f *fakePersistence) PersistAudio(ctx context.Context, req PersistMediaRequest) PersistOutcome {
	return f.outcome(req)
}

// fakeMailer records credit receipts.

type fakeMailer struct {
	mu       sync.Mutex
	receipts []string
}

func (f *fakeMailer) SendOTP(toEmail, otp string) error          { return nil }
func (f *fakeMailer) SendResetToken(toEmail, token string) error { return nil }

func (f *fakeMailer) SendCreditReceipt(toEmail, planName string, credits int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receipts = append(f.receipts, fmt.Sprintf("%s:%s:%d", toEmail, planName, credits))
	return nil
}
