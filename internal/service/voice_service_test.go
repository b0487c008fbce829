package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/pkg/pricing"
	"ai-videostudio-be/pkg/provider/elevenlabs"
	"ai-videostudio-be/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func sampleFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("sample", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	assert.NoError(t, err)
	return form.File["sample"][0]
}

func cloneServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/voices/add", r.URL.Path)
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
}

// sampleStore backs storage.Service with a stub Supabase endpoint that
// accepts every upload.
func sampleStore(t *testing.T) *storage.Service {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Key":"generated-media"}`)
	}))
	t.Cleanup(srv.Close)
	return storage.NewService(srv.URL, "service-key", "generated-media")
}

func TestCreateVoice(t *testing.T) {
	srv := cloneServer(t, http.StatusOK, `{"voice_id":"prov-1"}`)
	defer srv.Close()

	uow := newFakeUow()
	gate := &fakeCreditGate{}
	userId := uuid.New()
	svc := NewVoiceService(&fakeUowFactory{uow: uow}, gate,
		elevenlabs.NewClient("test-key", "").WithBaseURL(srv.URL), sampleStore(t), noopLogger{})

	res, err := svc.CreateVoice(context.Background(), userId, "Narrator",
		sampleFileHeader(t, "sample.mp3", []byte("audio")))
	assert.NoError(t, err)
	assert.Equal(t, "Narrator", res.Name)
	assert.Equal(t, "prov-1", res.VoiceId)

	// The uploaded sample becomes the stored preview.
	assert.NotEmpty(t, res.PreviewURL)
	assert.Contains(t, res.PreviewURL, "/voices/user-"+userId.String()+"/")

	assert.Equal(t, []string{pricing.OpVoiceClone}, gate.charges)
	assert.Len(t, uow.voices.voices, 1)
	created := uow.voices.voices[0]
	assert.NotNil(t, created.PreviewURL)
	assert.NotNil(t, created.SamplePath)
	assert.True(t, strings.HasPrefix(*created.SamplePath, "voices/user-"))

	// The preview survives the list round trip.
	voices, err := svc.ListVoices(context.Background(), userId)
	assert.NoError(t, err)
	assert.Len(t, voices, 1)
	assert.Equal(t, res.PreviewURL, voices[0].PreviewURL)
}

func TestCreateVoiceWithoutStorageKeepsVoice(t *testing.T) {
	srv := cloneServer(t, http.StatusOK, `{"voice_id":"prov-1"}`)
	defer srv.Close()

	uow := newFakeUow()
	svc := NewVoiceService(&fakeUowFactory{uow: uow}, &fakeCreditGate{},
		elevenlabs.NewClient("test-key", "").WithBaseURL(srv.URL),
		storage.NewService("", "", ""), noopLogger{})

	res, err := svc.CreateVoice(context.Background(), uuid.New(), "Narrator",
		sampleFileHeader(t, "sample.mp3", []byte("audio")))
	assert.NoError(t, err)
	assert.Equal(t, "prov-1", res.VoiceId)
	// No preview without durable storage, but the clone is still usable.
	assert.Empty(t, res.PreviewURL)
	assert.Len(t, uow.voices.voices, 1)
}

func TestCreateVoiceEnforcesLimit(t *testing.T) {
	uow := newFakeUow()
	userId := uuid.New()
	for i := 0; i < 5; i++ {
		uow.voices.voices = append(uow.voices.voices, &entity.VoiceCharacter{
			Id: uuid.New(), UserId: userId, Name: fmt.Sprintf("v%d", i),
		})
	}

	gate := &fakeCreditGate{}
	svc := NewVoiceService(&fakeUowFactory{uow: uow}, gate,
		elevenlabs.NewClient("test-key", ""), storage.NewService("", "", ""), noopLogger{})

	_, err := svc.CreateVoice(context.Background(), userId, "One too many",
		sampleFileHeader(t, "sample.mp3", []byte("audio")))

	var apiErr *serverutils.ApiError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, fiber.StatusForbidden, apiErr.Status)
	// Rejected before the gate; nothing to refund.
	assert.Empty(t, gate.charges)
}

func TestCreateVoiceRefundsOnProviderFailure(t *testing.T) {
	srv := cloneServer(t, http.StatusUnprocessableEntity, `{"detail":"sample too short"}`)
	defer srv.Close()

	uow := newFakeUow()
	gate := &fakeCreditGate{}
	svc := NewVoiceService(&fakeUowFactory{uow: uow}, gate,
		elevenlabs.NewClient("test-key", "").WithBaseURL(srv.URL),
		storage.NewService("", "", ""), noopLogger{})

	_, err := svc.CreateVoice(context.Background(), uuid.New(), "Narrator",
		sampleFileHeader(t, "sample.mp3", []byte("x")))
	assert.Error(t, err)
	assert.Equal(t, []string{"voice clone failed"}, gate.refunds)
	assert.Empty(t, uow.voices.voices)
}

func TestCreateVoiceValidation(t *testing.T) {
	svc := NewVoiceService(&fakeUowFactory{uow: newFakeUow()}, &fakeCreditGate{},
		elevenlabs.NewClient("test-key", ""), storage.NewService("", "", ""), noopLogger{})

	_, err := svc.CreateVoice(context.Background(), uuid.New(), "", sampleFileHeader(t, "s.mp3", []byte("x")))
	assert.Error(t, err)

	_, err = svc.CreateVoice(context.Background(), uuid.New(), "Narrator", nil)
	assert.Error(t, err)
}

func TestListVoices(t *testing.T) {
	uow := newFakeUow()
	userId := uuid.New()
	preview := "https://cdn.example.com/preview.mp3"
	uow.voices.voices = append(uow.voices.voices, &entity.VoiceCharacter{
		Id: uuid.New(), UserId: userId, Name: "Narrator", ProviderVoiceId: "prov-1", PreviewURL: &preview,
	})

	svc := NewVoiceService(&fakeUowFactory{uow: uow}, &fakeCreditGate{},
		elevenlabs.NewClient("test-key", ""), storage.NewService("", "", ""), noopLogger{})

	voices, err := svc.ListVoices(context.Background(), userId)
	assert.NoError(t, err)
	assert.Len(t, voices, 1)
	assert.Equal(t, "Narrator", voices[0].Name)
	assert.Equal(t, preview, voices[0].PreviewURL)
}
