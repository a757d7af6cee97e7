package service

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/neontext/neontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPipeline() *neontext.Pipeline {
	req := neontext.Request{InputPath: "in.mp4", Text: "NEWS", Color: "blue", X: 0.5, Y: 0.3}
	return neontext.Compose(req, neontext.ResolveColor("blue"), "font.ttf", 80)
}

func TestBuildRenderArgs_Standard(t *testing.T) {
	p := testPipeline()
	args := BuildRenderArgs(p, "in.mp4", "out.mp4", false)

	assert.Equal(t, []string{
		"-i", "in.mp4",
		"-filter_complex", p.FilterComplex(),
		"-map", "[final]",
		"-map", "0:a?",
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", "23",
		"-c:a", "aac",
		"-b:a", "128k",
		"-y", "out.mp4",
	}, args)
}

func TestBuildRenderArgs_Enhanced(t *testing.T) {
	args := BuildRenderArgs(testPipeline(), "in.mp4", "out.mp4", true)
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-crf 20")
	assert.Contains(t, joined, "-movflags +faststart")
	assert.Equal(t, "out.mp4", args[len(args)-1])
}

func TestParseProgressLine(t *testing.T) {
	line := "frame=  240 fps= 48 q=28.0 size=    1024kB time=00:01:05.50 bitrate= 128.0kbits/s speed=1.95x"

	p, ok := ParseProgressLine(line, 131)
	require.True(t, ok)
	assert.InDelta(t, 65.5, p.ElapsedSecs, 1e-9)
	assert.InDelta(t, 50.0, p.Percent, 1e-9)
	assert.InDelta(t, 1.95, p.Speed, 1e-9)

	p, ok = ParseProgressLine("frame= 1 time=01:00:00.00 speed=1x", 60)
	require.True(t, ok)
	assert.Equal(t, 100.0, p.Percent)

	_, ok = ParseProgressLine("Stream mapping:", 10)
	assert.False(t, ok)
}

func TestStreamProgress(t *testing.T) {
	stderr := "Input #0, mov\rframe=1 time=00:00:01.00 speed=1x\rframe=2 time=00:00:02.00 speed=1x\nfinished\n"

	var captured strings.Builder
	var seen []float64
	streamProgress(strings.NewReader(stderr), &captured, 4, func(p Progress) {
		seen = append(seen, p.Percent)
	})

	assert.Equal(t, stderr, captured.String())
	assert.Equal(t, []float64{25, 50}, seen)
}

// writeScript 写一个模拟 ffmpeg 的脚本
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script encoder stub requires a POSIX shell")
	}
	p := filepath.Join(t.TempDir(), "ffmpeg")
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+body), 0755))
	return p
}

func TestFFmpegEncoder_RenderSuccess(t *testing.T) {
	// 最后一个参数是输出路径
	bin := writeScript(t, `for last; do :; done
printf 'frame=1 time=00:00:01.00 speed=1x\r' >&2
echo data > "$last"
exit 0
`)
	out := filepath.Join(t.TempDir(), "out.mp4")

	var progress []Progress
	res := NewFFmpegEncoder(bin).Render(context.Background(), testPipeline(), "in.mp4", out, RenderOptions{
		Duration: 2,
		Progress: func(p Progress) { progress = append(progress, p) },
	})

	require.True(t, res.Success, res.Stderr)
	assert.NoError(t, res.Err)
	assert.FileExists(t, out)
	require.Len(t, progress, 1)
	assert.Equal(t, 50.0, progress[0].Percent)
}

func TestFFmpegEncoder_RenderFailureRemovesOutput(t *testing.T) {
	bin := writeScript(t, `for last; do :; done
echo partial > "$last"
echo "Error opening font file" >&2
exit 1
`)
	out := filepath.Join(t.TempDir(), "out.mp4")

	res := NewFFmpegEncoder(bin).Render(context.Background(), testPipeline(), "in.mp4", out, RenderOptions{})

	assert.False(t, res.Success)
	assert.Error(t, res.Err)
	assert.Contains(t, res.Stderr, "Error opening font file")
	assert.NoFileExists(t, out)
}

func TestFFmpegEncoder_MissingBinary(t *testing.T) {
	res := NewFFmpegEncoder(filepath.Join(t.TempDir(), "no-ffmpeg")).
		Render(context.Background(), testPipeline(), "in.mp4", "out.mp4", RenderOptions{})
	assert.False(t, res.Success)
	assert.Error(t, res.Err)
}

func TestRenderError(t *testing.T) {
	err := &RenderError{Err: assert.AnError, Stderr: "boom"}
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "render failed")
}
