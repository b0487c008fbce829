package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextToSpeech(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/voice-abc", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("xi-api-key"))

		var payload ttsPayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "hello world", payload.Text)
		assert.Equal(t, "eleven_multilingual_v2", payload.ModelID)

		w.Header().Set("request-id", "rq-1")
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	client := NewClient("test-key", "").WithBaseURL(srv.URL)

	res, perr := client.TextToSpeech(context.Background(), "voice-abc", "hello world", "")
	assert.Nil(t, perr)
	assert.Equal(t, []byte("mp3-bytes"), res.Data)
	assert.Equal(t, "audio/mpeg", res.ContentType)
	assert.Equal(t, "eleven_multilingual_v2", res.Model)
	assert.Equal(t, "rq-1", res.RequestID)
}

func TestTextToSpeechModelOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload ttsPayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "eleven_turbo_v2_5", payload.ModelID)
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	client := NewClient("test-key", "eleven_multilingual_v2").WithBaseURL(srv.URL)

	res, perr := client.TextToSpeech(context.Background(), "voice-abc", "hello", "eleven_turbo_v2_5")
	assert.Nil(t, perr)
	assert.Equal(t, "eleven_turbo_v2_5", res.Model)
}

func TestTextToSpeechErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":{"message":"invalid api key"}}`)
	}))
	defer srv.Close()

	client := NewClient("bad-key", "").WithBaseURL(srv.URL)

	_, perr := client.TextToSpeech(context.Background(), "voice-abc", "hello", "")
	assert.NotNil(t, perr)
	assert.Equal(t, http.StatusUnauthorized, perr.Status)
	assert.Equal(t, "invalid api key", perr.Message)
}

func TestTextToSpeechNotConfigured(t *testing.T) {
	client := NewClient("", "")
	_, perr := client.TextToSpeech(context.Background(), "voice-abc", "hello", "")
	assert.NotNil(t, perr)
	assert.Contains(t, perr.Message, "ELEVENLABS_API_KEY")
}

func TestCloneVoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/voices/add", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "My Narrator", r.FormValue("name"))

		_, header, err := r.FormFile("files")
		assert.NoError(t, err)
		assert.Equal(t, "sample.mp3", header.Filename)

		fmt.Fprint(w, `{"voice_id":"cloned-42"}`)
	}))
	defer srv.Close()

	client := NewClient("test-key", "").WithBaseURL(srv.URL)

	voiceID, perr := client.CloneVoice(context.Background(), "My Narrator", bytes.NewReader([]byte("audio")), "sample.mp3")
	assert.Nil(t, perr)
	assert.Equal(t, "cloned-42", voiceID)
}

func TestCloneVoiceMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client := NewClient("test-key", "").WithBaseURL(srv.URL)

	_, perr := client.CloneVoice(context.Background(), "My Narrator", bytes.NewReader([]byte("audio")), "sample.mp3")
	assert.NotNil(t, perr)
	assert.Equal(t, http.StatusBadGateway, perr.Status)
}

func TestDeleteVoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/voices/cloned-42", r.URL.Path)
		fmt.Fprint(w, `{"status":"ok"}`)
	}))
	defer srv.Close()

	client := NewClient("test-key", "").WithBaseURL(srv.URL)
	assert.Nil(t, client.DeleteVoice(context.Background(), "cloned-42"))
}

func TestErrorMessageShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail":"voice not found"}`, "voice not found"},
		{"object detail", `{"detail":{"message":"quota exceeded"}}`, "quota exceeded"},
		{"opaque", `plain text`, "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage([]byte(tt.body)))
		})
	}
}
