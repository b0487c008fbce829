package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"path"
	"time"

	storage_go "github.com/supabase-community/storage-go"
)

// Service persists generated media into a Supabase Storage bucket so it
// outlives the provider's ephemeral URL. Every failure degrades to the
// ephemeral URL instead of failing the request.
type Service struct {
	client     *storage_go.Client
	httpClient *http.Client
	bucket     string
	configured bool
}

func NewService(supabaseURL, serviceKey, bucket string) *Service {
	configured := supabaseURL != "" && serviceKey != "" && bucket != ""

	var client *storage_go.Client
	if configured {
		client = storage_go.NewClient(supabaseURL+"/storage/v1", serviceKey, nil)
	}

	return &Service{
		client:     client,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		bucket:     bucket,
		configured: configured,
	}
}

func (s *Service) Configured() bool {
	return s.configured
}

// ObjectPath builds the storage key for one generated asset. projectID
// and clipID may be empty; the path stays stable per user either way.
func ObjectPath(kind, userID, projectID, clipID, ext string) string {
	segments := []string{kind, "user-" + userID}
	if projectID != "" {
		segments = append(segments, projectID)
	}
	if clipID != "" {
		segments = append(segments, clipID)
	}
	name := fmt.Sprintf("%d_%06d%s", time.Now().UnixMilli(), rand.Intn(1000000), ext)
	return path.Join(append(segments, name)...)
}

// PersistResult reports where an asset ended up. When Success is false
// URL carries the original ephemeral URL.
type PersistResult struct {
	URL         string
	StoragePath string
	Bucket      string
	Success     bool
}

// PersistURL downloads the ephemeral provider URL and re-uploads the
// bytes under objectPath. Never returns an error: on any failure the
// ephemeral URL is handed back with Success=false.
func (s *Service) PersistURL(ctx context.Context, ephemeralURL, objectPath, contentType string) PersistResult {
	fallback := PersistResult{URL: ephemeralURL, Success: false}
	if !s.configured {
		log.Printf("[Storage] not configured, returning ephemeral URL")
		return fallback
	}

	data, err := s.download(ctx, ephemeralURL)
	if err != nil {
		log.Printf("[Storage] download failed for %s: %v", objectPath, err)
		return fallback
	}

	result := s.PersistBytes(ctx, data, objectPath, contentType)
	if !result.Success {
		return fallback
	}
	return result
}

// PersistBytes uploads raw bytes (providers that return the asset body
// inline). On failure the result has Success=false and no URL.
func (s *Service) PersistBytes(_ context.Context, data []byte, objectPath, contentType string) PersistResult {
	if !s.configured {
		return PersistResult{Success: false}
	}

	_, err := s.client.UploadFile(s.bucket, objectPath, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		log.Printf("[Storage] upload failed for %s: %v", objectPath, err)
		return PersistResult{Success: false}
	}

	publicURL := s.client.GetPublicUrl(s.bucket, objectPath).SignedURL
	if publicURL == "" {
		log.Printf("[Storage] no public URL for %s", objectPath)
		return PersistResult{Success: false}
	}

	return PersistResult{
		URL:         publicURL,
		StoragePath: objectPath,
		Bucket:      s.bucket,
		Success:     true,
	}
}

// Remove deletes stored objects. Best-effort cleanup for the delete
// endpoints; failures are logged by callers.
func (s *Service) Remove(paths ...string) error {
	if !s.configured {
		return fmt.Errorf("storage not configured")
	}
	_, err := s.client.RemoveFile(s.bucket, paths)
	return err
}

func (s *Service) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("download status %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

// HealthReport is the payload of GET /api/health/storage.
type HealthReport struct {
	Healthy      bool   `json:"healthy"`
	Configured   bool   `json:"configured"`
	BucketExists bool   `json:"bucket_exists"`
	WriteOK      bool   `json:"write_ok"`
	Detail       string `json:"detail,omitempty"`
}

// HealthCheck probes configuration, bucket existence and a throwaway
// write. It warns early; generation proceeds even when unhealthy.
func (s *Service) HealthCheck(ctx context.Context) HealthReport {
	report := HealthReport{Configured: s.configured}
	if !s.configured {
		report.Detail = "storage environment not configured"
		return report
	}

	if _, err := s.client.GetBucket(s.bucket); err != nil {
		report.Detail = fmt.Sprintf("bucket check failed: %v", err)
		return report
	}
	report.BucketExists = true

	probePath := ObjectPath("healthcheck", "probe", "", "", ".txt")
	probe := s.PersistBytes(ctx, []byte("ok"), probePath, "text/plain")
	if !probe.Success {
		report.Detail = "probe write failed"
		return report
	}
	report.WriteOK = true
	report.Healthy = true

	if err := s.Remove(probePath); err != nil {
		log.Printf("[Storage] probe cleanup failed: %v", err)
	}
	return report
}
