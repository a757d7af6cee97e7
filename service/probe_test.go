package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const probeJSON = `{
  "streams": [
    {"codec_type": "video", "codec_name": "h264", "width": 1080, "height": 1920, "avg_frame_rate": "30000/1001"},
    {"codec_type": "audio", "codec_name": "aac"}
  ],
  "format": {"duration": "12.480000", "format_name": "mov,mp4,m4a,3gp,3g2,mj2", "bit_rate": "2500000"}
}`

func TestParseProbe(t *testing.T) {
	info, err := ParseProbe(probeJSON)
	require.NoError(t, err)

	assert.InDelta(t, 12.48, info.Duration, 1e-9)
	assert.Equal(t, "h264", info.Codec)
	assert.Equal(t, 1080, info.Width)
	assert.Equal(t, 1920, info.Height)
	assert.InDelta(t, 29.97, info.FPS, 0.01)
	assert.Equal(t, int64(2500000), info.Bitrate)
	assert.True(t, info.HasAudio)

	_, err = ParseProbe("not json")
	assert.Error(t, err)
}

func TestProbeCache_ReusesResult(t *testing.T) {
	video := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(video, []byte("data"), 0644))

	calls := 0
	cache := NewProbeCache()
	cache.probe = func(path string) (string, error) {
		calls++
		return probeJSON, nil
	}

	info, err := cache.Probe(video)
	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", info.FileName)
	assert.Equal(t, int64(4), info.FileSize)

	_, err = cache.Probe(video)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// 文件修改后重新探测
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(video, later, later))
	_, err = cache.Probe(video)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestProbeCache_Errors(t *testing.T) {
	cache := NewProbeCache()
	cache.probe = func(path string) (string, error) { return "", errors.New("exit status 1") }

	_, err := cache.Probe(filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)

	video := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(video, nil, 0644))
	_, err = cache.Probe(video)
	assert.ErrorContains(t, err, "ffprobe")
}
