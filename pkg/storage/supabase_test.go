package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectPath(t *testing.T) {
	t.Run("full path", func(t *testing.T) {
		p := ObjectPath("video", "u1", "proj-9", "clip-3", ".mp4")
		assert.True(t, strings.HasPrefix(p, "video/user-u1/proj-9/clip-3/"))
		assert.True(t, strings.HasSuffix(p, ".mp4"))
	})

	t.Run("omits empty segments", func(t *testing.T) {
		p := ObjectPath("image", "u1", "", "", ".png")
		assert.True(t, strings.HasPrefix(p, "image/user-u1/"))
		assert.NotContains(t, p, "//")
		assert.Equal(t, 2, strings.Count(p, "/"))
	})

	t.Run("unique per call", func(t *testing.T) {
		a := ObjectPath("image", "u1", "", "", ".png")
		b := ObjectPath("image", "u1", "", "", ".png")
		assert.NotEqual(t, a, b)
	})
}

func TestUnconfiguredServiceDegrades(t *testing.T) {
	s := NewService("", "", "")
	assert.False(t, s.Configured())

	t.Run("persist url hands back ephemeral", func(t *testing.T) {
		res := s.PersistURL(context.Background(), "https://cdn.example.com/tmp/x.png", "image/user-u1/x.png", "image/png")
		assert.False(t, res.Success)
		assert.Equal(t, "https://cdn.example.com/tmp/x.png", res.URL)
	})

	t.Run("persist bytes fails without url", func(t *testing.T) {
		res := s.PersistBytes(context.Background(), []byte("data"), "image/user-u1/x.png", "image/png")
		assert.False(t, res.Success)
		assert.Empty(t, res.URL)
	})

	t.Run("health report unhealthy", func(t *testing.T) {
		report := s.HealthCheck(context.Background())
		assert.False(t, report.Healthy)
		assert.False(t, report.Configured)
		assert.NotEmpty(t, report.Detail)
	})

	t.Run("remove errors", func(t *testing.T) {
		assert.Error(t, s.Remove("image/user-u1/x.png"))
	})
}
