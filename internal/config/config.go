package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"ai-videostudio-be/pkg/pricing"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	Providers ProviderKeys
	Pricing   PricingConfig
	Billing   BillingConfig
	SMTP      SMTPConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	MediaTopicName     string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	SupabaseURL    string
	ServiceRoleKey string
	Bucket         string
}

type ProviderKeys struct {
	OpenAI             string
	Fal                string
	ElevenLabs         string
	ElevenLabsTTSModel string
	Gemini             string
	GeminiModel        string
}

// PricingConfig tunes per-operation credit prices. Unset (zero) entries
// keep the defaults in pkg/pricing.
type PricingConfig struct {
	Overrides map[string]int
}

type BillingConfig struct {
	LemonSqueezyWebhookSecret string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			MediaTopicName:     getEnv("MEDIA_GENERATED_TOPIC_NAME", "media.generated"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			SupabaseURL:    getEnv("SUPABASE_URL", ""),
			ServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
			Bucket:         getEnv("SUPABASE_STORAGE_BUCKET", "generated-media"),
		},
		Providers: ProviderKeys{
			OpenAI:             getEnv("OPENAI_API_KEY", ""),
			Fal:                getEnv("FAL_KEY", ""),
			ElevenLabs:         getEnv("ELEVENLABS_API_KEY", ""),
			ElevenLabsTTSModel: getEnv("ELEVENLABS_TTS_MODEL_ID", ""),
			Gemini:             getEnv("GEMINI_API_KEY", ""),
			GeminiModel:        getEnv("GEMINI_MODEL", ""),
		},
		Pricing: PricingConfig{
			Overrides: map[string]int{
				pricing.OpImageGenerate:     getEnvAsInt("PRICE_IMAGE_GENERATE", 0),
				pricing.OpImageRemix:        getEnvAsInt("PRICE_IMAGE_REMIX", 0),
				pricing.OpVideoGenerate:     getEnvAsInt("PRICE_VIDEO_GENERATE", 0),
				pricing.OpVideoDubAndSync:   getEnvAsInt("PRICE_VIDEO_DUB_AND_SYNC", 0),
				pricing.OpAudioTranscribe:   getEnvAsInt("PRICE_AUDIO_TRANSCRIBE", 0),
				pricing.OpAudioTTS:          getEnvAsInt("PRICE_AUDIO_TTS", 0),
				pricing.OpAudioVoiceChanger: getEnvAsInt("PRICE_AUDIO_VOICE_CHANGER", 0),
				pricing.OpVoiceClone:        getEnvAsInt("PRICE_VOICE_CLONE", 0),
				pricing.OpScriptGenerate:    getEnvAsInt("PRICE_SCRIPT_GENERATE", 0),
			},
		},
		Billing: BillingConfig{
			LemonSqueezyWebhookSecret: getEnv("LEMON_SQUEEZY_WEBHOOK_SECRET", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "AI Video Studio"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
