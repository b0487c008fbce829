package fal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"ai-videostudio-be/pkg/provider"
)

// Video model slugs. Vidu covers text/image/reference-to-video plus
// extension; Kling handles multi-image composition.
const (
	VideoModelViduText      = "fal-ai/vidu/q1/text-to-video"
	VideoModelViduImage     = "fal-ai/vidu/q1/image-to-video"
	VideoModelViduReference = "fal-ai/vidu/q1/reference-to-video"
	VideoModelViduExtend    = "fal-ai/vidu/q1/video-extend"
	VideoModelKlingElements = "fal-ai/kling-video/v1.6/pro/elements"
	VideoModelSyncLipsync   = "fal-ai/sync-lipsync"
)

type VideoRequest struct {
	Model         string
	Prompt        string
	ImageURL      string
	ReferenceURLs []string
	DurationSec   int
	Resolution    string
	AspectRatio   string
}

type viduTextInput struct {
	Prompt      string `json:"prompt"`
	Duration    int    `json:"duration,omitempty"`
	Resolution  string `json:"resolution,omitempty"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

type viduImageInput struct {
	Prompt     string `json:"prompt"`
	ImageURL   string `json:"image_url"`
	Duration   int    `json:"duration,omitempty"`
	Resolution string `json:"resolution,omitempty"`
}

type viduReferenceInput struct {
	Prompt             string   `json:"prompt"`
	ReferenceImageURLs []string `json:"reference_image_urls"`
	Duration           int      `json:"duration,omitempty"`
	Resolution         string   `json:"resolution,omitempty"`
	AspectRatio        string   `json:"aspect_ratio,omitempty"`
}

// Kling wants duration as a string enum and images as input_image_urls.
type klingElementsInput struct {
	Prompt         string   `json:"prompt"`
	InputImageURLs []string `json:"input_image_urls"`
	Duration       string   `json:"duration,omitempty"`
	AspectRatio    string   `json:"aspect_ratio,omitempty"`
}

type videoOutput struct {
	Video struct {
		URL string `json:"url"`
	} `json:"video"`
	Duration int `json:"duration,omitempty"`
}

func (c *Client) GenerateVideo(ctx context.Context, req VideoRequest) (*provider.Result, *provider.Error) {
	var input any
	switch req.Model {
	case VideoModelViduText:
		input = viduTextInput{
			Prompt:      req.Prompt,
			Duration:    req.DurationSec,
			Resolution:  req.Resolution,
			AspectRatio: req.AspectRatio,
		}
	case VideoModelViduImage:
		input = viduImageInput{
			Prompt:     req.Prompt,
			ImageURL:   req.ImageURL,
			Duration:   req.DurationSec,
			Resolution: req.Resolution,
		}
	case VideoModelViduReference:
		input = viduReferenceInput{
			Prompt:             req.Prompt,
			ReferenceImageURLs: req.ReferenceURLs,
			Duration:           req.DurationSec,
			Resolution:         req.Resolution,
			AspectRatio:        req.AspectRatio,
		}
	case VideoModelKlingElements:
		input = klingElementsInput{
			Prompt:         req.Prompt,
			InputImageURLs: req.ReferenceURLs,
			Duration:       fmt.Sprintf("%d", req.DurationSec),
			AspectRatio:    req.AspectRatio,
		}
	default:
		return nil, &provider.Error{
			Kind:     provider.KindValidation,
			Provider: ProviderName,
			Message:  fmt.Sprintf("unsupported video model: %s", req.Model),
		}
	}

	raw, requestID, perr := c.Subscribe(ctx, req.Model, input)
	if perr != nil {
		return nil, perr
	}
	return parseVideoResult(raw, requestID, req.Model, req.DurationSec)
}

type extendInput struct {
	VideoURL string `json:"video_url"`
	Prompt   string `json:"prompt,omitempty"`
	Duration int    `json:"duration,omitempty"`
}

// ExtendVideo lengthens an existing clip. Used by the dub-and-sync chain
// when the dub runs longer than the source video.
func (c *Client) ExtendVideo(ctx context.Context, videoURL, prompt string, durationSec int) (*provider.Result, *provider.Error) {
	raw, requestID, perr := c.Subscribe(ctx, VideoModelViduExtend, extendInput{
		VideoURL: videoURL,
		Prompt:   prompt,
		Duration: durationSec,
	})
	if perr != nil {
		return nil, perr
	}
	return parseVideoResult(raw, requestID, VideoModelViduExtend, durationSec)
}

type lipsyncInput struct {
	VideoURL string `json:"video_url"`
	AudioURL string `json:"audio_url"`
	Model    string `json:"model,omitempty"`
}

// LipSync re-times the mouth movement of video_url to audio_url.
func (c *Client) LipSync(ctx context.Context, videoURL, audioURL string) (*provider.Result, *provider.Error) {
	raw, requestID, perr := c.Subscribe(ctx, VideoModelSyncLipsync, lipsyncInput{
		VideoURL: videoURL,
		AudioURL: audioURL,
	})
	if perr != nil {
		return nil, perr
	}
	return parseVideoResult(raw, requestID, VideoModelSyncLipsync, 0)
}

func parseVideoResult(raw json.RawMessage, requestID, model string, fallbackDuration int) (*provider.Result, *provider.Error) {
	var out videoOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}
	if out.Video.URL == "" {
		return nil, provider.NewError(ProviderName, http.StatusBadGateway, "result contained no video")
	}
	duration := out.Duration
	if duration == 0 {
		duration = fallbackDuration
	}
	return &provider.Result{
		URL:         out.Video.URL,
		RequestID:   requestID,
		Model:       model,
		DurationSec: duration,
	}, nil
}
