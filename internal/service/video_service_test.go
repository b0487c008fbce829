package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/pkg/pricing"
	"ai-videostudio-be/pkg/provider/elevenlabs"
	"ai-videostudio-be/pkg/provider/fal"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// falQueueStub answers the submit/status/result flow for any model and
// counts submissions.
type falQueueStub struct {
	srv     *httptest.Server
	submits int32
}

func newFalQueueStub(t *testing.T, result string) *falQueueStub {
	t.Helper()
	stub := &falQueueStub{}
	stub.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/status"):
			json.NewEncoder(w).Encode(map[string]string{"status": "COMPLETED"})
		case strings.Contains(r.URL.Path, "/requests/"):
			fmt.Fprint(w, result)
		default:
			atomic.AddInt32(&stub.submits, 1)
			json.NewEncoder(w).Encode(map[string]string{"request_id": "req-vid"})
		}
	}))
	t.Cleanup(stub.srv.Close)
	return stub
}

func (s *falQueueStub) client() *fal.Client {
	return fal.NewClient("test-key").WithBaseURL(s.srv.URL).WithPollInterval(5 * time.Millisecond)
}

func newVideoService(uow *fakeUow, gate *fakeCreditGate, persist *fakePersistence, falClient *fal.Client, speech *elevenlabs.Client) IVideoService {
	return NewVideoService(&fakeUowFactory{uow: uow}, gate, persist, falClient, speech, noopLogger{})
}

func TestGenerateVideoValidation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.GenerateVideoRequest
	}{
		{"unknown model", dto.GenerateVideoRequest{Prompt: "x", VideoModel: "sora"}},
		{"vidu-text bad duration", dto.GenerateVideoRequest{Prompt: "x", VideoModel: "vidu-text", Duration: 5}},
		{"vidu-text bad resolution", dto.GenerateVideoRequest{Prompt: "x", VideoModel: "vidu-text", Resolution: "480p"}},
		{"vidu-text bad aspect ratio", dto.GenerateVideoRequest{Prompt: "x", VideoModel: "vidu-text", AspectRatio: "21:9"}},
		{"kling bad duration", dto.GenerateVideoRequest{
			Prompt: "x", VideoModel: "kling-elements", Duration: 4,
			ReferenceImageUrls: []string{"https://cdn.example.com/ref.png"},
		}},
		{"kling rejects resolution", dto.GenerateVideoRequest{
			Prompt: "x", VideoModel: "kling-elements", Resolution: "720p",
			ReferenceImageUrls: []string{"https://cdn.example.com/ref.png"},
		}},
		{"kling bad aspect ratio", dto.GenerateVideoRequest{
			Prompt: "x", VideoModel: "kling-elements", AspectRatio: "1:1",
			ReferenceImageUrls: []string{"https://cdn.example.com/ref.png"},
		}},
		{"vidu-image missing image", dto.GenerateVideoRequest{Prompt: "x", VideoModel: "vidu-image"}},
		{"vidu-reference missing references", dto.GenerateVideoRequest{Prompt: "x", VideoModel: "vidu-reference"}},
		{"kling missing references", dto.GenerateVideoRequest{Prompt: "x", VideoModel: "kling-elements"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newFalQueueStub(t, `{}`)
			gate := &fakeCreditGate{}
			svc := newVideoService(newFakeUow(), gate, &fakePersistence{}, stub.client(), nil)

			_, err := svc.GenerateVideo(context.Background(), uuid.New(), &tt.req)

			var apiErr *serverutils.ApiError
			assert.True(t, errors.As(err, &apiErr))
			assert.Equal(t, fiber.StatusBadRequest, apiErr.Status)
			// Rejected before any credits move or the provider is called.
			assert.Empty(t, gate.charges)
			assert.Zero(t, atomic.LoadInt32(&stub.submits))
		})
	}
}

func TestGenerateVideo(t *testing.T) {
	stub := newFalQueueStub(t, `{"video":{"url":"https://cdn.fal.media/out.mp4"},"duration":8}`)

	gate := &fakeCreditGate{}
	persist := &fakePersistence{storageSuccess: true, durableURL: "https://supabase.example.com/videos/out.mp4"}
	svc := newVideoService(newFakeUow(), gate, persist, stub.client(), nil)

	res, err := svc.GenerateVideo(context.Background(), uuid.New(), &dto.GenerateVideoRequest{
		Prompt:     "a sailboat in a storm",
		VideoModel: "vidu-text",
		Duration:   8,
		Resolution: "720p",
	})
	assert.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "https://supabase.example.com/videos/out.mp4", res.VideoUrl)
	assert.Equal(t, fal.VideoModelViduText, res.Model)
	assert.Equal(t, 8, res.Duration)

	assert.Equal(t, []string{pricing.OpVideoGenerate}, gate.charges)
	assert.Empty(t, gate.refunds)
	assert.Len(t, persist.requests, 1)
	assert.Equal(t, "https://cdn.fal.media/out.mp4", persist.requests[0].SourceURL)
}

func TestGenerateVideoRefundsOnProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"detail":"prompt rejected"}`)
	}))
	defer srv.Close()

	gate := &fakeCreditGate{}
	persist := &fakePersistence{}
	svc := newVideoService(newFakeUow(), gate, persist,
		fal.NewClient("test-key").WithBaseURL(srv.URL).WithPollInterval(5*time.Millisecond), nil)

	_, err := svc.GenerateVideo(context.Background(), uuid.New(), &dto.GenerateVideoRequest{
		Prompt:     "x",
		VideoModel: "vidu-text",
	})
	assert.Error(t, err)
	assert.Equal(t, []string{pricing.OpVideoGenerate}, gate.charges)
	assert.Equal(t, []string{"video generation failed"}, gate.refunds)
	assert.Empty(t, persist.requests)
}

func TestDubAndSync(t *testing.T) {
	ttsSrv := ttsServer(t, http.StatusOK, "dub-bytes")
	stub := newFalQueueStub(t, `{"video":{"url":"https://cdn.fal.media/synced.mp4"}}`)

	gate := &fakeCreditGate{}
	persist := &fakePersistence{storageSuccess: true, durableURL: "https://supabase.example.com/media/out"}
	svc := newVideoService(newFakeUow(), gate, persist, stub.client(),
		elevenlabs.NewClient("test-key", "").WithBaseURL(ttsSrv.URL))

	res, err := svc.DubAndSync(context.Background(), uuid.New(), &dto.DubAndSyncRequest{
		VideoUrl: "https://cdn.example.com/base.mp4",
		Text:     "welcome to the studio",
		VoiceId:  "v-1",
	})
	assert.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "https://supabase.example.com/media/out", res.VideoUrl)
	assert.Equal(t, "https://supabase.example.com/media/out", res.AudioUrl)
	assert.Equal(t, fal.VideoModelSyncLipsync, res.Model)

	assert.Equal(t, []string{pricing.OpVideoDubAndSync}, gate.charges)
	assert.Empty(t, gate.refunds)
	// Narration audio persisted first, then the synced video.
	assert.Len(t, persist.requests, 2)
	assert.Equal(t, []byte("dub-bytes"), persist.requests[0].Data)
	assert.Equal(t, "https://cdn.fal.media/synced.mp4", persist.requests[1].SourceURL)
	assert.EqualValues(t, 1, atomic.LoadInt32(&stub.submits))
}

func TestDubAndSyncResolvesVoiceCharacter(t *testing.T) {
	ttsSrv := ttsServer(t, http.StatusOK, "dub-bytes")
	stub := newFalQueueStub(t, `{"video":{"url":"https://cdn.fal.media/synced.mp4"}}`)

	uow := newFakeUow()
	userId := uuid.New()
	characterId := uuid.New()
	uow.voices.voices = append(uow.voices.voices, &entity.VoiceCharacter{
		Id: characterId, UserId: userId, Name: "Narrator", ProviderVoiceId: "prov-7",
	})

	persist := &fakePersistence{storageSuccess: true, durableURL: "https://supabase.example.com/media/out"}
	svc := newVideoService(uow, &fakeCreditGate{}, persist, stub.client(),
		elevenlabs.NewClient("test-key", "").WithBaseURL(ttsSrv.URL))

	res, err := svc.DubAndSync(context.Background(), userId, &dto.DubAndSyncRequest{
		VideoUrl:         "https://cdn.example.com/base.mp4",
		Text:             "welcome",
		VoiceCharacterId: &characterId,
	})
	assert.NoError(t, err)
	assert.True(t, res.Success)
}

func TestDubAndSyncRequiresVoice(t *testing.T) {
	gate := &fakeCreditGate{}
	svc := newVideoService(newFakeUow(), gate, &fakePersistence{}, nil, elevenlabs.NewClient("test-key", ""))

	_, err := svc.DubAndSync(context.Background(), uuid.New(), &dto.DubAndSyncRequest{
		VideoUrl: "https://cdn.example.com/base.mp4",
		Text:     "welcome",
	})

	var apiErr *serverutils.ApiError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, fiber.StatusBadRequest, apiErr.Status)
	assert.Empty(t, gate.charges)
}

func TestDubAndSyncRefundsOnTTSFailure(t *testing.T) {
	ttsSrv := ttsServer(t, http.StatusTooManyRequests, `{"detail":"rate limited"}`)
	stub := newFalQueueStub(t, `{}`)

	gate := &fakeCreditGate{}
	svc := newVideoService(newFakeUow(), gate, &fakePersistence{}, stub.client(),
		elevenlabs.NewClient("test-key", "").WithBaseURL(ttsSrv.URL))

	_, err := svc.DubAndSync(context.Background(), uuid.New(), &dto.DubAndSyncRequest{
		VideoUrl: "https://cdn.example.com/base.mp4",
		Text:     "welcome",
		VoiceId:  "v-1",
	})
	assert.Error(t, err)
	assert.Equal(t, []string{"dub-and-sync: tts failed"}, gate.refunds)
	assert.Zero(t, atomic.LoadInt32(&stub.submits))
}

func TestDubAndSyncAbortsWhenAudioPersistFails(t *testing.T) {
	ttsSrv := ttsServer(t, http.StatusOK, "dub-bytes")
	stub := newFalQueueStub(t, `{}`)

	gate := &fakeCreditGate{}
	// Lip-sync needs a fetchable audio URL, so the chain stops here.
	svc := newVideoService(newFakeUow(), gate, &fakePersistence{storageSuccess: false}, stub.client(),
		elevenlabs.NewClient("test-key", "").WithBaseURL(ttsSrv.URL))

	_, err := svc.DubAndSync(context.Background(), uuid.New(), &dto.DubAndSyncRequest{
		VideoUrl: "https://cdn.example.com/base.mp4",
		Text:     "welcome",
		VoiceId:  "v-1",
	})

	var apiErr *serverutils.ApiError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, fiber.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, []string{"dub-and-sync: audio persist failed"}, gate.refunds)
	assert.Zero(t, atomic.LoadInt32(&stub.submits))
}

func TestDubAndSyncRefundsOnLipSyncFailure(t *testing.T) {
	ttsSrv := ttsServer(t, http.StatusOK, "dub-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"error":"lipsync backend unavailable"}`)
	}))
	defer srv.Close()

	gate := &fakeCreditGate{}
	persist := &fakePersistence{storageSuccess: true, durableURL: "https://supabase.example.com/audio/dub.mp3"}
	svc := newVideoService(newFakeUow(), gate, persist,
		fal.NewClient("test-key").WithBaseURL(srv.URL).WithPollInterval(5*time.Millisecond),
		elevenlabs.NewClient("test-key", "").WithBaseURL(ttsSrv.URL))

	_, err := svc.DubAndSync(context.Background(), uuid.New(), &dto.DubAndSyncRequest{
		VideoUrl: "https://cdn.example.com/base.mp4",
		Text:     "welcome",
		VoiceId:  "v-1",
	})
	assert.Error(t, err)
	assert.Equal(t, []string{"dub-and-sync: lip sync failed"}, gate.refunds)
	// Only the narration was persisted before the chain broke.
	assert.Len(t, persist.requests, 1)
}
