package service

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/neontext/neontext"
)

// fakeEncoder 记录调用并按需写出输出文件
type fakeEncoder struct {
	mutex    sync.Mutex
	calls    int
	pipeline *neontext.Pipeline
	opts     RenderOptions
	fail     bool
	stderr   string
}

func (f *fakeEncoder) Render(ctx context.Context, p *neontext.Pipeline, input, output string, opts RenderOptions) RenderResult {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.calls++
	f.pipeline = p
	f.opts = opts
	if f.fail {
		return RenderResult{Err: errors.New("exit status 1"), Stderr: f.stderr}
	}
	if opts.Progress != nil {
		opts.Progress(Progress{ElapsedSecs: 1, Percent: 50})
	}
	if err := os.WriteFile(output, []byte("mp4"), 0644); err != nil {
		return RenderResult{Err: err}
	}
	return RenderResult{Success: true}
}

// fakeExtractor 写出占位帧或返回错误
type fakeExtractor struct {
	err    error
	frames []string
}

func (f *fakeExtractor) Extract(ctx context.Context, video, dst string) error {
	f.frames = append(f.frames, dst)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dst, []byte("png"), 0644)
}

// fakeDetector 返回指定上下条带边缘数的边缘图
type fakeDetector struct {
	top, bottom int
	err         error
	closed      bool
}

func (f *fakeDetector) Detect(imagePath string) (*EdgeMap, error) {
	if f.err != nil {
		return nil, f.err
	}
	// 100 行，顶部 30 行与底部 30 行各放指定数量的边缘
	m := NewEdgeMap(100, 100)
	for i := 0; i < f.top; i++ {
		m.Set(i%100, i/100)
	}
	for i := 0; i < f.bottom; i++ {
		m.Set(i%100, 99-i/100)
	}
	return m, nil
}

func (f *fakeDetector) Close() error {
	f.closed = true
	return nil
}

// fakeAdvisor 返回固定建议
type fakeAdvisor struct {
	suggestion PositionSuggestion
	calls      int
}

func (f *fakeAdvisor) SuggestPosition(ctx context.Context, videoPath string) PositionSuggestion {
	f.calls++
	return f.suggestion
}

// fakeProber 返回固定时长
type fakeProber struct {
	duration float64
	err      error
}

func (f *fakeProber) Probe(path string) (*VideoInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &VideoInfo{Duration: f.duration}, nil
}

// fakePublisher 记录发布的对象键
type fakePublisher struct {
	keys []string
	err  error
}

func (f *fakePublisher) Publish(ctx context.Context, localPath, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}
