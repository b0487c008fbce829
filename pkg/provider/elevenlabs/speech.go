package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"ai-videostudio-be/pkg/provider"
)

func (c *Client) notConfigured() *provider.Error {
	return &provider.Error{
		Kind:     provider.KindUnavailable,
		Provider: ProviderName,
		Message:  "ELEVENLABS_API_KEY not configured",
	}
}

type ttsPayload struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// TextToSpeech synthesizes text with the given voice and returns mp3 bytes.
// modelID overrides the client default for this one call; empty keeps it.
func (c *Client) TextToSpeech(ctx context.Context, voiceID, text, modelID string) (*provider.Result, *provider.Error) {
	if !c.Configured() {
		return nil, c.notConfigured()
	}

	if modelID == "" {
		modelID = c.ttsModelID
	}
	payload, err := json.Marshal(ttsPayload{Text: text, ModelID: modelID})
	if err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	return c.audioCall(req, modelID)
}

// SpeechToSpeech re-voices source audio with the target voice.
func (c *Client) SpeechToSpeech(ctx context.Context, voiceID string, audio io.Reader, filename string) (*provider.Result, *provider.Error) {
	if !c.Configured() {
		return nil, c.notConfigured()
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("audio", filename)
	if err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}
	if err := writer.WriteField("model_id", "eleven_multilingual_sts_v2"); err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}
	if err := writer.Close(); err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}

	url := fmt.Sprintf("%s/v1/speech-to-speech/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.audioCall(req, "eleven_multilingual_sts_v2")
}

func (c *Client) audioCall(req *http.Request, model string) (*provider.Result, *provider.Error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, provider.NewError(ProviderName, resp.StatusCode, errorMessage(data))
	}

	return &provider.Result{
		Data:        data,
		ContentType: "audio/mpeg",
		Model:       model,
		RequestID:   resp.Header.Get("request-id"),
	}, nil
}

type addVoiceResponse struct {
	VoiceID string `json:"voice_id"`
}

// CloneVoice creates an instant voice clone from one reference sample.
// Returns the provider voice id for later synthesis calls.
func (c *Client) CloneVoice(ctx context.Context, name string, sample io.Reader, filename string) (string, *provider.Error) {
	if !c.Configured() {
		return "", c.notConfigured()
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("name", name); err != nil {
		return "", provider.Unreachable(ProviderName, err)
	}
	part, err := writer.CreateFormFile("files", filename)
	if err != nil {
		return "", provider.Unreachable(ProviderName, err)
	}
	if _, err := io.Copy(part, sample); err != nil {
		return "", provider.Unreachable(ProviderName, err)
	}
	if err := writer.Close(); err != nil {
		return "", provider.Unreachable(ProviderName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/voices/add", &body)
	if err != nil {
		return "", provider.Unreachable(ProviderName, err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", provider.Unreachable(ProviderName, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", provider.Unreachable(ProviderName, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", provider.NewError(ProviderName, resp.StatusCode, errorMessage(data))
	}

	var added addVoiceResponse
	if err := json.Unmarshal(data, &added); err != nil {
		return "", provider.Unreachable(ProviderName, err)
	}
	if added.VoiceID == "" {
		return "", provider.NewError(ProviderName, http.StatusBadGateway, "clone response contained no voice_id")
	}
	return added.VoiceID, nil
}

// DeleteVoice removes a cloned voice from the provider catalog.
// Best-effort: callers log failures instead of surfacing them.
func (c *Client) DeleteVoice(ctx context.Context, voiceID string) *provider.Error {
	if !c.Configured() {
		return c.notConfigured()
	}

	url := fmt.Sprintf("%s/v1/voices/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return provider.Unreachable(ProviderName, err)
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return provider.Unreachable(ProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return provider.NewError(ProviderName, resp.StatusCode, errorMessage(data))
	}
	return nil
}
