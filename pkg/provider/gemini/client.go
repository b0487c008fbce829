package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"ai-videostudio-be/pkg/provider"
)

const ProviderName = "gemini"

const defaultModel = "gemini-1.5-flash"

const imageModel = "gemini-2.0-flash-exp-image-generation"

// Client wraps the Gemini SDK for text generation (script drafting, prompt
// enhancement) and inline image generation.
type Client struct {
	apiKey string
	model  string
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{apiKey: apiKey, model: model}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func wrap(err error) *provider.Error {
	if apiErr, ok := err.(*googleapi.Error); ok {
		return provider.NewError(ProviderName, apiErr.Code, apiErr.Message)
	}
	if strings.Contains(err.Error(), "429") {
		return &provider.Error{Kind: provider.KindRateLimited, Provider: ProviderName, Message: err.Error(), Status: 429}
	}
	return provider.Unreachable(ProviderName, err)
}

// GenerateText sends prompt to Gemini and returns the first candidate's
// text. Rate-limit responses are retried a few times before giving up.
func (c *Client) GenerateText(ctx context.Context, prompt string) (*provider.Result, *provider.Error) {
	if !c.Configured() {
		return nil, &provider.Error{
			Kind:     provider.KindUnavailable,
			Provider: ProviderName,
			Message:  "GEMINI_API_KEY not configured",
		}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)

	const maxAttempts = 3
	var resp *genai.GenerateContentResponse
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err = model.GenerateContent(ctx, genai.Text(prompt))
		if err == nil {
			break
		}
		perr := wrap(err)
		if perr.Kind != provider.KindRateLimited || attempt == maxAttempts {
			return nil, perr
		}
		select {
		case <-ctx.Done():
			return nil, provider.Unreachable(ProviderName, ctx.Err())
		case <-time.After(2 * time.Second):
		}
	}

	text, err := firstText(resp)
	if err != nil {
		return nil, provider.NewError(ProviderName, 502, err.Error())
	}

	return &provider.Result{Text: text, Model: c.model}, nil
}

// GenerateImage asks the image-capable Gemini model for one image and
// returns its bytes inline.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*provider.Result, *provider.Error) {
	if !c.Configured() {
		return nil, &provider.Error{
			Kind:     provider.KindUnavailable,
			Provider: ProviderName,
			Message:  "GEMINI_API_KEY not configured",
		}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}
	defer client.Close()

	model := client.GenerativeModel(imageModel)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, wrap(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, provider.NewError(ProviderName, 502, "response contained no candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok {
			return &provider.Result{
				Data:        blob.Data,
				ContentType: blob.MIMEType,
				Model:       imageModel,
			}, nil
		}
	}
	return nil, provider.NewError(ProviderName, 502, "candidate contained no image parts")
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("response contained no candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("candidate contained no text parts")
	}
	return sb.String(), nil
}
