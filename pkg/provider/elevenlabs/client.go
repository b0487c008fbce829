package elevenlabs

import (
	"encoding/json"
	"net/http"
	"time"
)

const ProviderName = "elevenlabs"

const (
	defaultBaseURL  = "https://api.elevenlabs.io"
	defaultTTSModel = "eleven_multilingual_v2"
)

// Client is a typed HTTP client for the ElevenLabs API: text-to-speech,
// speech-to-speech (voice changer) and instant voice cloning. The API
// returns raw audio bytes for synthesis calls and JSON elsewhere.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	ttsModelID string
}

func NewClient(apiKey, ttsModelID string) *Client {
	if ttsModelID == "" {
		ttsModelID = defaultTTSModel
	}
	return &Client{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		ttsModelID: ttsModelID,
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// errorBody is the documented ElevenLabs error envelope. detail can be a
// plain string or an object with a message.
type errorBody struct {
	Detail any `json:"detail"`
}

func errorMessage(body []byte) string {
	var e errorBody
	if err := json.Unmarshal(body, &e); err == nil {
		switch d := e.Detail.(type) {
		case string:
			if d != "" {
				return d
			}
		case map[string]any:
			if msg, ok := d["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return string(body)
}
