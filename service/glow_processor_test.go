package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/neontext/neontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newsRequest(t *testing.T) neontext.Request {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(input, []byte("video"), 0644))
	return neontext.Request{
		InputPath:  input,
		OutputPath: filepath.Join(dir, "neon_blue_1.mp4"),
		Text:       "NEWS",
		Color:      "blue",
		X:          0.5,
		Y:          0.3,
	}
}

func TestGlowProcessor_ProcessEndToEnd(t *testing.T) {
	encoder := &fakeEncoder{}
	g := NewGlowProcessor(encoder, nil, &fakeProber{duration: 10}, nil, ProcessorOptions{})

	var progress []Progress
	req := newsRequest(t)
	result, err := g.Process(context.Background(), req, ProcessOptions{
		Progress: func(p Progress) { progress = append(progress, p) },
	})
	require.NoError(t, err)

	assert.Equal(t, 1, encoder.calls)
	assert.Equal(t, 10.0, encoder.opts.Duration)
	assert.False(t, encoder.opts.Enhanced)
	assert.Len(t, progress, 1)

	text := result.Pipeline.TextStages()
	require.Len(t, text, 5)
	for _, stage := range text {
		assert.Contains(t, stage.Filter, "x=w*0.5-text_w/2:y=h*0.3-text_h/2")
	}
	assert.Contains(t, text[0].Filter, "#0044FF")
	assert.Equal(t, 80, result.FontSize)
	assert.FileExists(t, result.OutputPath)
	assert.True(t, strings.HasPrefix(filepath.Base(result.OutputPath), "neon_blue_"))
}

func TestGlowProcessor_InvalidRequestSkipsEncoder(t *testing.T) {
	encoder := &fakeEncoder{}
	advisor := &fakeAdvisor{}
	g := NewGlowProcessor(encoder, advisor, nil, nil, ProcessorOptions{})

	req := newsRequest(t)
	req.Text = ""
	req.AutoPosition = true
	_, err := g.Process(context.Background(), req, ProcessOptions{})
	assert.ErrorIs(t, err, neontext.ErrEmptyText)

	req = newsRequest(t)
	req.InputPath = ""
	_, err = g.Process(context.Background(), req, ProcessOptions{})
	assert.ErrorIs(t, err, neontext.ErrMissingInput)

	assert.Zero(t, encoder.calls)
	assert.Zero(t, advisor.calls)
}

func TestGlowProcessor_AutoPosition(t *testing.T) {
	confident := &fakeAdvisor{suggestion: PositionSuggestion{SuggestedX: 0.5, SuggestedY: 0.15, Zone: ZoneTop, Confidence: 0.6}}
	g := NewGlowProcessor(&fakeEncoder{}, confident, nil, nil, ProcessorOptions{})

	req := newsRequest(t)
	req.AutoPosition = true
	req.Y = 0.9
	result, err := g.Process(context.Background(), req, ProcessOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0.15, result.Y)
	assert.Contains(t, result.Pipeline.TextStages()[0].Filter, "y=h*0.15-text_h/2")
	require.NotNil(t, result.Suggestion)

	// 置信度不足时保留手动位置
	weak := &fakeAdvisor{suggestion: PositionSuggestion{SuggestedX: 0.5, SuggestedY: 0.15, Zone: ZoneTop, Confidence: 0.05}}
	g = NewGlowProcessor(&fakeEncoder{}, weak, nil, nil, ProcessorOptions{})
	result, err = g.Process(context.Background(), req, ProcessOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0.9, result.Y)

	// 未请求自动定位时不分析
	off := &fakeAdvisor{}
	g = NewGlowProcessor(&fakeEncoder{}, off, nil, nil, ProcessorOptions{})
	req.AutoPosition = false
	_, err = g.Process(context.Background(), req, ProcessOptions{})
	require.NoError(t, err)
	assert.Zero(t, off.calls)
}

func TestGlowProcessor_RenderFailure(t *testing.T) {
	encoder := &fakeEncoder{fail: true, stderr: "Invalid argument\n"}
	g := NewGlowProcessor(encoder, nil, nil, nil, ProcessorOptions{})

	logger, err := NewJobLogger(t.TempDir(), "job-1")
	require.NoError(t, err)

	_, err = g.Process(context.Background(), newsRequest(t), ProcessOptions{Logger: logger})
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, "Invalid argument\n", renderErr.Stderr)

	data, err := os.ReadFile(logger.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "ffmpeg渲染失败")
}

func TestGlowProcessor_Publish(t *testing.T) {
	publisher := &fakePublisher{}
	g := NewGlowProcessor(&fakeEncoder{}, nil, nil, publisher, ProcessorOptions{PublishPrefix: "neontext/"})

	result, err := g.Process(context.Background(), newsRequest(t), ProcessOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"neontext/neon_blue_1.mp4"}, publisher.keys)
	assert.Equal(t, "https://cdn.example.com/neontext/neon_blue_1.mp4", result.URL)

	g = NewGlowProcessor(&fakeEncoder{}, nil, nil, &fakePublisher{err: errors.New("denied")}, ProcessorOptions{})
	_, err = g.Process(context.Background(), newsRequest(t), ProcessOptions{})
	assert.ErrorContains(t, err, "publish output")
}

func TestGlowProcessor_PlanEnhancedLongText(t *testing.T) {
	g := NewGlowProcessor(&fakeEncoder{}, nil, nil, nil, ProcessorOptions{FontPaths: []string{"/nonexistent/font.ttf"}})

	req := newsRequest(t)
	req.Enhanced = true
	req.Text = strings.Repeat("A", 200)
	result, err := g.Plan(context.Background(), &req)
	require.NoError(t, err)

	assert.Equal(t, 30, result.FontSize)
	assert.Len(t, result.Pipeline.TextStages(), 6)
	assert.Contains(t, result.Pipeline.TextStages()[0].Filter, "fontfile=/nonexistent/font.ttf")
}
