package fal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func queueServer(t *testing.T, statusSequence []string, result string) *httptest.Server {
	t.Helper()
	var polls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/fal-ai/test-model", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Key test-key", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"request_id": "req-123"})
	})
	mux.HandleFunc("/fal-ai/test-model/requests/req-123/status", func(w http.ResponseWriter, r *http.Request) {
		i := atomic.AddInt32(&polls, 1) - 1
		if int(i) >= len(statusSequence) {
			i = int32(len(statusSequence) - 1)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": statusSequence[i]})
	})
	mux.HandleFunc("/fal-ai/test-model/requests/req-123", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, result)
	})
	return httptest.NewServer(mux)
}

func TestSubscribeCompletes(t *testing.T) {
	srv := queueServer(t, []string{"IN_QUEUE", "IN_PROGRESS", "COMPLETED"},
		`{"video":{"url":"https://cdn.fal.media/out.mp4"}}`)
	defer srv.Close()

	client := NewClient("test-key").WithBaseURL(srv.URL).WithPollInterval(5 * time.Millisecond)

	raw, requestID, perr := client.Subscribe(context.Background(), "fal-ai/test-model", map[string]string{"prompt": "a cat"})
	assert.Nil(t, perr)
	assert.Equal(t, "req-123", requestID)

	var out struct {
		Video struct {
			URL string `json:"url"`
		} `json:"video"`
	}
	assert.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "https://cdn.fal.media/out.mp4", out.Video.URL)
}

func TestSubscribeFailedStatus(t *testing.T) {
	srv := queueServer(t, []string{"FAILED"}, `{}`)
	defer srv.Close()

	client := NewClient("test-key").WithBaseURL(srv.URL).WithPollInterval(5 * time.Millisecond)

	_, requestID, perr := client.Subscribe(context.Background(), "fal-ai/test-model", nil)
	assert.NotNil(t, perr)
	assert.Equal(t, "req-123", requestID)
	assert.Equal(t, http.StatusBadGateway, perr.Status)
}

func TestSubscribeSubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"detail":[{"msg":"prompt is required"}]}`)
	}))
	defer srv.Close()

	client := NewClient("test-key").WithBaseURL(srv.URL).WithPollInterval(5 * time.Millisecond)

	_, _, perr := client.Subscribe(context.Background(), "fal-ai/test-model", map[string]string{})
	assert.NotNil(t, perr)
	assert.Equal(t, http.StatusUnprocessableEntity, perr.Status)
	assert.Equal(t, "prompt is required", perr.Message)
}

func TestSubscribeWithoutKey(t *testing.T) {
	client := NewClient("")
	_, _, perr := client.Subscribe(context.Background(), "fal-ai/test-model", nil)
	assert.NotNil(t, perr)
	assert.Contains(t, perr.Message, "FAL_KEY")
}

func TestSubscribeContextCancelled(t *testing.T) {
	srv := queueServer(t, []string{"IN_QUEUE"}, `{}`)
	defer srv.Close()

	client := NewClient("test-key").WithBaseURL(srv.URL).WithPollInterval(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, _, perr := client.Subscribe(ctx, "fal-ai/test-model", nil)
	assert.NotNil(t, perr)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail":"invalid input"}`, "invalid input"},
		{"validation list", `{"detail":[{"msg":"field required"}]}`, "field required"},
		{"error field", `{"error":"quota exceeded"}`, "quota exceeded"},
		{"opaque body", `not json at all`, "not json at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage([]byte(tt.body)))
		})
	}
}
