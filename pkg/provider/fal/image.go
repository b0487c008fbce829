package fal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"ai-videostudio-be/pkg/provider"
)

// Image model slugs on the fal queue.
const (
	ImageModelNanoBanana = "fal-ai/nano-banana/edit"
	ImageModelReve       = "fal-ai/reve/remix"
	ImageModelFlux2      = "fal-ai/flux-2"
)

// ImageModelForSelector maps the API-level imageModel selector to a fal
// model slug. Empty string means the selector is not a fal model.
func ImageModelForSelector(selector string) string {
	switch selector {
	case "nano-banana":
		return ImageModelNanoBanana
	case "reve":
		return ImageModelReve
	case "flux-2":
		return ImageModelFlux2
	default:
		return ""
	}
}

type ImageRequest struct {
	Model         string
	Prompt        string
	ReferenceURLs []string
	AspectRatio   string
}

// Input shapes differ per model family and are pinned here rather than
// probed at runtime.
type nanoBananaInput struct {
	Prompt      string   `json:"prompt"`
	ImageURLs   []string `json:"image_urls"`
	AspectRatio string   `json:"aspect_ratio,omitempty"`
	NumImages   int      `json:"num_images"`
}

type reveInput struct {
	Prompt      string `json:"prompt"`
	ImageURL    string `json:"image_url,omitempty"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

type flux2Input struct {
	Prompt    string   `json:"prompt"`
	ImageURLs []string `json:"image_urls,omitempty"`
	ImageSize string   `json:"image_size,omitempty"`
	NumImages int      `json:"num_images"`
}

// flux-2 takes a named size instead of an aspect ratio.
func fluxImageSize(aspectRatio string) string {
	switch aspectRatio {
	case "16:9":
		return "landscape_16_9"
	case "9:16":
		return "portrait_16_9"
	case "4:3":
		return "landscape_4_3"
	case "3:4":
		return "portrait_4_3"
	default:
		return "square_hd"
	}
}

type imageOutput struct {
	Images []struct {
		URL         string `json:"url"`
		ContentType string `json:"content_type"`
	} `json:"images"`
}

// GenerateImage runs one of the fal image models and returns the
// ephemeral result URL.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*provider.Result, *provider.Error) {
	var input any
	switch req.Model {
	case ImageModelNanoBanana:
		input = nanoBananaInput{
			Prompt:      req.Prompt,
			ImageURLs:   req.ReferenceURLs,
			AspectRatio: req.AspectRatio,
			NumImages:   1,
		}
	case ImageModelReve:
		in := reveInput{Prompt: req.Prompt, AspectRatio: req.AspectRatio}
		if len(req.ReferenceURLs) > 0 {
			in.ImageURL = req.ReferenceURLs[0]
		}
		input = in
	case ImageModelFlux2:
		input = flux2Input{
			Prompt:    req.Prompt,
			ImageURLs: req.ReferenceURLs,
			ImageSize: fluxImageSize(req.AspectRatio),
			NumImages: 1,
		}
	default:
		return nil, &provider.Error{
			Kind:     provider.KindValidation,
			Provider: ProviderName,
			Message:  fmt.Sprintf("unsupported image model: %s", req.Model),
		}
	}

	raw, requestID, perr := c.Subscribe(ctx, req.Model, input)
	if perr != nil {
		return nil, perr
	}

	var out imageOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}
	if len(out.Images) == 0 || out.Images[0].URL == "" {
		return nil, provider.NewError(ProviderName, http.StatusBadGateway, "result contained no images")
	}

	return &provider.Result{
		URL:       out.Images[0].URL,
		RequestID: requestID,
		Model:     req.Model,
	}, nil
}
