package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONWithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, "info")

	logger.Info("render finished", map[string]string{"job_id": "abc", "color": "blue"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "render finished", entry["message"])
	assert.Equal(t, "abc", entry["job_id"])
	assert.Equal(t, "blue", entry["color"])
	assert.NotEmpty(t, entry["timestamp"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, "warn")

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	assert.Zero(t, buf.Len())

	logger.Warn("shown", nil)
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	logger.SetLevel("bogus")
	logger.Info("info again", nil)
	assert.Contains(t, buf.String(), "info again")
}

func TestRotatingFile_Rotates(t *testing.T) {
	dir := t.TempDir()
	file, err := NewRotatingFile(dir, "test", 10, 2)
	require.NoError(t, err)
	defer file.Close()

	for i := 0; i < 5; i++ {
		_, err := file.Write([]byte("0123456789ab\n"))
		require.NoError(t, err)
	}

	rotated, err := filepath.Glob(filepath.Join(dir, "test_*.log"))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(rotated), 2)
	assert.NotEmpty(t, rotated)

	_, err = os.Stat(file.Path())
	assert.NoError(t, err)
}

func TestGlobalLogger_Replace(t *testing.T) {
	var buf bytes.Buffer
	prev := GetGlobalLogger()
	SetGlobalLogger(NewWriterLogger(&buf, "debug"))
	defer SetGlobalLogger(prev)

	Debug("global debug", map[string]string{"k": "v"})
	assert.Contains(t, buf.String(), "global debug")
}

func TestDownloadFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("video-bytes"))
	}))
	defer server.Close()

	dst := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, DownloadFile(context.Background(), server.URL+"/clip.mp4", dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(data))

	assert.Error(t, DownloadFile(context.Background(), server.URL+"/missing", dst+".2"))
	assert.True(t, IsRemoteURL(server.URL))
	assert.False(t, IsRemoteURL("clip.mp4"))
}
