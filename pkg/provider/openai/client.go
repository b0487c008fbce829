package openai

import (
	"context"
	"errors"
	"io"

	goopenai "github.com/sashabaranov/go-openai"

	"ai-videostudio-be/pkg/provider"
)

const ProviderName = "openai"

// ModelLabel is the normalized model name we report for DALL-E results.
const ModelLabel = "openai-dalle"

type Client struct {
	api    *goopenai.Client
	apiKey string
}

func NewClient(apiKey string) *Client {
	return &Client{
		api:    goopenai.NewClient(apiKey),
		apiKey: apiKey,
	}
}

// NewClientWithConfig lets tests point the SDK at a local server.
func NewClientWithConfig(cfg goopenai.ClientConfig) *Client {
	return &Client{api: goopenai.NewClientWithConfig(cfg), apiKey: "configured"}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) notConfigured() *provider.Error {
	return &provider.Error{
		Kind:     provider.KindUnavailable,
		Provider: ProviderName,
		Message:  "OPENAI_API_KEY not configured",
	}
}

// wrap converts SDK errors into the normalized adapter error.
func wrap(err error) *provider.Error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = err.Error()
		}
		return provider.NewError(ProviderName, apiErr.HTTPStatusCode, msg)
	}
	return provider.Unreachable(ProviderName, err)
}

type ImageRequest struct {
	Prompt string
	Size   string // 1024x1024 | 1792x1024 | 1024x1792
}

// GenerateImage runs DALL-E 3 and returns the ephemeral result URL.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*provider.Result, *provider.Error) {
	if !c.Configured() {
		return nil, c.notConfigured()
	}

	size := req.Size
	if size == "" {
		size = goopenai.CreateImageSize1024x1024
	}

	resp, err := c.api.CreateImage(ctx, goopenai.ImageRequest{
		Model:  goopenai.CreateImageModelDallE3,
		Prompt: req.Prompt,
		Size:   size,
		N:      1,
	})
	if err != nil {
		return nil, wrap(err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, provider.NewError(ProviderName, 502, "image response contained no data")
	}

	return &provider.Result{
		URL:   resp.Data[0].URL,
		Model: ModelLabel,
	}, nil
}

type TranscribeRequest struct {
	Reader   io.Reader
	Filename string
	Language string
}

// Transcribe runs Whisper over the uploaded audio and returns plain text.
func (c *Client) Transcribe(ctx context.Context, req TranscribeRequest) (*provider.Result, *provider.Error) {
	if !c.Configured() {
		return nil, c.notConfigured()
	}

	resp, err := c.api.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    goopenai.Whisper1,
		Reader:   req.Reader,
		FilePath: req.Filename,
		Language: req.Language,
	})
	if err != nil {
		return nil, wrap(err)
	}

	return &provider.Result{
		Text:  resp.Text,
		Model: string(goopenai.Whisper1),
	}, nil
}
