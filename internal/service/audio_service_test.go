package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/pkg/pricing"
	"ai-videostudio-be/pkg/provider/elevenlabs"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ttsServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v1/text-to-speech/"))
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newAudioService(speech *elevenlabs.Client, gate *fakeCreditGate, persist *fakePersistence) IAudioService {
	return NewAudioService(&fakeUowFactory{uow: newFakeUow()}, gate, persist, nil, speech, noopLogger{})
}

func TestTextToSpeech(t *testing.T) {
	srv := ttsServer(t, http.StatusOK, "mp3-bytes")

	gate := &fakeCreditGate{}
	persist := &fakePersistence{storageSuccess: true, durableURL: "https://supabase.example.com/audio/tts.mp3"}
	svc := newAudioService(elevenlabs.NewClient("test-key", "").WithBaseURL(srv.URL), gate, persist)

	res, err := svc.TextToSpeech(context.Background(), uuid.New(), &dto.TextToSpeechRequest{
		Text:    "hello world",
		VoiceId: "v-1",
	})
	assert.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, res.StorageSuccess)
	assert.Equal(t, "https://supabase.example.com/audio/tts.mp3", res.AudioUrl)

	assert.Equal(t, []string{pricing.OpAudioTTS}, gate.charges)
	assert.Empty(t, gate.refunds)
	assert.Len(t, persist.requests, 1)
	assert.Equal(t, []byte("mp3-bytes"), persist.requests[0].Data)
}

func TestTextToSpeechPassesModelOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			ModelID string `json:"model_id"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "eleven_turbo_v2_5", payload.ModelID)
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	persist := &fakePersistence{storageSuccess: true, durableURL: "https://supabase.example.com/audio/tts.mp3"}
	svc := newAudioService(elevenlabs.NewClient("test-key", "").WithBaseURL(srv.URL), &fakeCreditGate{}, persist)

	_, err := svc.TextToSpeech(context.Background(), uuid.New(), &dto.TextToSpeechRequest{
		Text:    "hello",
		VoiceId: "v-1",
		ModelId: "eleven_turbo_v2_5",
	})
	assert.NoError(t, err)
}

func TestTextToSpeechRequiresVoice(t *testing.T) {
	gate := &fakeCreditGate{}
	svc := newAudioService(elevenlabs.NewClient("test-key", ""), gate, &fakePersistence{})

	_, err := svc.TextToSpeech(context.Background(), uuid.New(), &dto.TextToSpeechRequest{Text: "hello"})

	var apiErr *serverutils.ApiError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, fiber.StatusBadRequest, apiErr.Status)
	assert.Empty(t, gate.charges)
}

func TestTextToSpeechRefundsOnProviderFailure(t *testing.T) {
	srv := ttsServer(t, http.StatusTooManyRequests, `{"detail":"rate limited"}`)

	gate := &fakeCreditGate{}
	svc := newAudioService(elevenlabs.NewClient("test-key", "").WithBaseURL(srv.URL), gate, &fakePersistence{})

	_, err := svc.TextToSpeech(context.Background(), uuid.New(), &dto.TextToSpeechRequest{
		Text:    "hello",
		VoiceId: "v-1",
	})
	assert.Error(t, err)
	assert.Equal(t, []string{"tts failed"}, gate.refunds)
}

func TestTextToSpeechFailsWhenStorageUnavailable(t *testing.T) {
	srv := ttsServer(t, http.StatusOK, "mp3-bytes")

	gate := &fakeCreditGate{}
	// Inline audio bytes have no ephemeral URL to fall back to, so a
	// storage failure cannot be a success with an empty audioUrl.
	svc := newAudioService(elevenlabs.NewClient("test-key", "").WithBaseURL(srv.URL), gate, &fakePersistence{storageSuccess: false})

	res, err := svc.TextToSpeech(context.Background(), uuid.New(), &dto.TextToSpeechRequest{
		Text:    "hello",
		VoiceId: "v-1",
	})
	assert.Nil(t, res)

	var apiErr *serverutils.ApiError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, fiber.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, []string{"tts: audio persist failed"}, gate.refunds)
}

func stsServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v1/speech-to-speech/"))
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVoiceChanger(t *testing.T) {
	srv := stsServer(t, http.StatusOK, "converted-bytes")

	gate := &fakeCreditGate{}
	persist := &fakePersistence{storageSuccess: true, durableURL: "https://supabase.example.com/audio/converted.mp3"}
	svc := newAudioService(elevenlabs.NewClient("test-key", "").WithBaseURL(srv.URL), gate, persist)

	res, err := svc.VoiceChanger(context.Background(), uuid.New(), &dto.VoiceChangerRequest{
		VoiceId: "v-1",
	}, sampleFileHeader(t, "input.mp3", []byte("source-audio")))
	assert.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "https://supabase.example.com/audio/converted.mp3", res.AudioUrl)

	assert.Equal(t, []string{pricing.OpAudioVoiceChanger}, gate.charges)
	assert.Empty(t, gate.refunds)
	assert.Equal(t, []byte("converted-bytes"), persist.requests[0].Data)
}

func TestVoiceChangerRequiresInput(t *testing.T) {
	gate := &fakeCreditGate{}
	svc := newAudioService(elevenlabs.NewClient("test-key", ""), gate, &fakePersistence{})

	_, err := svc.VoiceChanger(context.Background(), uuid.New(), &dto.VoiceChangerRequest{VoiceId: "v-1"}, nil)

	var apiErr *serverutils.ApiError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, fiber.StatusBadRequest, apiErr.Status)
	assert.Empty(t, gate.charges)
}

func TestVoiceChangerRefundsOnProviderFailure(t *testing.T) {
	srv := stsServer(t, http.StatusUnprocessableEntity, `{"detail":"unusable audio"}`)

	gate := &fakeCreditGate{}
	svc := newAudioService(elevenlabs.NewClient("test-key", "").WithBaseURL(srv.URL), gate, &fakePersistence{})

	_, err := svc.VoiceChanger(context.Background(), uuid.New(), &dto.VoiceChangerRequest{
		VoiceId: "v-1",
	}, sampleFileHeader(t, "input.mp3", []byte("source-audio")))
	assert.Error(t, err)
	assert.Equal(t, []string{"voice-changer failed"}, gate.refunds)
}

func TestVoiceChangerFailsWhenStorageUnavailable(t *testing.T) {
	srv := stsServer(t, http.StatusOK, "converted-bytes")

	gate := &fakeCreditGate{}
	svc := newAudioService(elevenlabs.NewClient("test-key", "").WithBaseURL(srv.URL), gate, &fakePersistence{storageSuccess: false})

	res, err := svc.VoiceChanger(context.Background(), uuid.New(), &dto.VoiceChangerRequest{
		VoiceId: "v-1",
	}, sampleFileHeader(t, "input.mp3", []byte("source-audio")))
	assert.Nil(t, res)

	var apiErr *serverutils.ApiError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, fiber.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, []string{"voice-changer failed"}, gate.refunds)
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		fmt.Fprint(w, `{"text":"hello from the recording"}`)
	}))
	defer srv.Close()

	gate := &fakeCreditGate{}
	svc := NewAudioService(&fakeUowFactory{uow: newFakeUow()}, gate, &fakePersistence{},
		openaiClientFor(srv), nil, noopLogger{})

	res, err := svc.Transcribe(context.Background(), uuid.New(),
		sampleFileHeader(t, "meeting.mp3", []byte("audio")), "en")
	assert.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "hello from the recording", res.Text)
	assert.Equal(t, []string{pricing.OpAudioTranscribe}, gate.charges)
}

func TestTranscribeRefundsOnProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"whisper is down"}}`)
	}))
	defer srv.Close()

	gate := &fakeCreditGate{}
	svc := NewAudioService(&fakeUowFactory{uow: newFakeUow()}, gate, &fakePersistence{},
		openaiClientFor(srv), nil, noopLogger{})

	_, err := svc.Transcribe(context.Background(), uuid.New(),
		sampleFileHeader(t, "meeting.mp3", []byte("audio")), "")
	assert.Error(t, err)
	assert.Equal(t, []string{"transcribe failed"}, gate.refunds)
}
