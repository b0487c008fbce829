// FILE: internal/dto/generation_dto.go
package dto

import "github.com/google/uuid"

// Requests use the wire names the web editor sends; model selectors
// (imageModel, videoModel) are camelCase for that reason.

type GenerateImageRequest struct {
	Prompt      string     `json:"prompt" validate:"required,min=1"`
	Model       string     `json:"model" validate:"omitempty,oneof=dall-e-3 gemini"`
	Size        string     `json:"size" validate:"omitempty,oneof=1024x1024 1792x1024 1024x1792"`
	AspectRatio string     `json:"aspect_ratio" validate:"omitempty,oneof=1:1 16:9 9:16 4:3 3:4"`
	ProjectId   *uuid.UUID `json:"project_id"`
	ClipId      *string    `json:"clip_id"`
}

type GenerateImageResponse struct {
	Success        bool   `json:"success"`
	ImageUrl       string `json:"imageUrl"`
	StorageSuccess bool   `json:"storageSuccess"`
	Model          string `json:"model"`
	RequestId      string `json:"requestId,omitempty"`
}

type RemixImageRequest struct {
	Mode               string     `json:"mode" validate:"omitempty,oneof=remix edit"`
	Prompt             string     `json:"prompt" validate:"required,min=1"`
	ReferenceImageUrls []string   `json:"reference_image_urls" validate:"required,min=1,max=6,dive,url"`
	AspectRatio        string     `json:"aspect_ratio" validate:"omitempty,oneof=1:1 16:9 9:16 4:3 3:4"`
	ImageModel         string     `json:"imageModel" validate:"required,oneof=nano-banana reve flux-2"`
	ProjectId          *uuid.UUID `json:"project_id"`
	ClipId             *string    `json:"clip_id"`
}

type GenerateVideoRequest struct {
	Prompt             string     `json:"prompt" validate:"required,min=1"`
	VideoModel         string     `json:"videoModel" validate:"required,oneof=vidu-text vidu-image vidu-reference kling-elements"`
	Duration           int        `json:"duration" validate:"omitempty,oneof=4 5 8 10"`
	Resolution         string     `json:"resolution" validate:"omitempty,oneof=360p 720p 1080p"`
	AspectRatio        string     `json:"aspect_ratio" validate:"omitempty,oneof=16:9 9:16 1:1"`
	ImageUrl           string     `json:"image_url" validate:"omitempty,url"`
	ReferenceImageUrls []string   `json:"reference_image_urls" validate:"omitempty,max=7,dive,url"`
	ProjectId          *uuid.UUID `json:"project_id"`
	ClipId             *string    `json:"clip_id"`
}

type GenerateVideoResponse struct {
	Success        bool   `json:"success"`
	VideoUrl       string `json:"videoUrl"`
	StorageSuccess bool   `json:"storageSuccess"`
	Model          string `json:"model"`
	RequestId      string `json:"requestId,omitempty"`
	Duration       int    `json:"duration,omitempty"`
}

type DubAndSyncRequest struct {
	VideoUrl         string     `json:"video_url" validate:"required,url"`
	Text             string     `json:"text" validate:"required,min=1"`
	VoiceId          string     `json:"voice_id" validate:"omitempty"`
	VoiceCharacterId *uuid.UUID `json:"voice_character_id"`
	ExtendPrompt     string     `json:"extend_prompt" validate:"omitempty"`
	ExtendDuration   int        `json:"extend_duration" validate:"omitempty,oneof=4 8"`
	ProjectId        *uuid.UUID `json:"project_id"`
	ClipId           *string    `json:"clip_id"`
}

type DubAndSyncResponse struct {
	Success        bool   `json:"success"`
	VideoUrl       string `json:"videoUrl"`
	AudioUrl       string `json:"audioUrl,omitempty"`
	StorageSuccess bool   `json:"storageSuccess"`
	Model          string `json:"model"`
	RequestId      string `json:"requestId,omitempty"`
}

type TranscribeResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Model   string `json:"model"`
}

type TextToSpeechRequest struct {
	Text             string     `json:"text" validate:"required,min=1,max=5000"`
	VoiceId          string     `json:"voice_id" validate:"omitempty"`
	VoiceCharacterId *uuid.UUID `json:"voice_character_id"`
	ModelId          string     `json:"model_id" validate:"omitempty"`
	ProjectId        *uuid.UUID `json:"project_id"`
	ClipId           *string    `json:"clip_id"`
}

type AudioResponse struct {
	Success        bool   `json:"success"`
	AudioUrl       string `json:"audioUrl"`
	StorageSuccess bool   `json:"storageSuccess"`
	Model          string `json:"model"`
	RequestId      string `json:"requestId,omitempty"`
}

type VoiceChangerRequest struct {
	AudioUrl  string     `json:"audio_url" validate:"omitempty,url"`
	VoiceId   string     `json:"voice_id" validate:"required"`
	ProjectId *uuid.UUID `json:"project_id"`
	ClipId    *string    `json:"clip_id"`
}

type GenerateScriptRequest struct {
	Idea       string `json:"idea" validate:"required,min=3,max=2000"`
	SceneCount int    `json:"scene_count" validate:"omitempty,min=1,max=20"`
	Tone       string `json:"tone" validate:"omitempty,max=100"`
}

type GenerateScriptResponse struct {
	Success bool   `json:"success"`
	Script  string `json:"script"`
	Model   string `json:"model"`
}
