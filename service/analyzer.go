package service

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/neontext/neontext/utils"
	"github.com/pkg/errors"
)

// 推荐区域
const (
	ZoneTop    = "top"
	ZoneBottom = "bottom"
)

// 默认分析参数
const (
	DefaultMinConfidence = 0.1
	DefaultBandFraction  = 0.3
	DefaultLowThreshold  = 50
	DefaultHighThreshold = 150
)

// PositionSuggestion 文字位置建议
type PositionSuggestion struct {
	SuggestedX float64 `json:"suggestedX"`
	SuggestedY float64 `json:"suggestedY"`
	Zone       string  `json:"zone"`
	Confidence float64 `json:"confidence"`
}

// DefaultSuggestion 分析失败时的默认建议
func DefaultSuggestion() PositionSuggestion {
	return PositionSuggestion{SuggestedX: 0.5, SuggestedY: 0.7, Zone: ZoneBottom, Confidence: 0}
}

// Confidence 归一化的上下边缘数量差
func Confidence(top, bottom int) float64 {
	diff := math.Abs(float64(top - bottom))
	return diff / math.Max(float64(max(top, bottom)), 1)
}

// SuggestFromCounts 文字放在边缘较少的一侧
func SuggestFromCounts(top, bottom int) PositionSuggestion {
	s := PositionSuggestion{SuggestedX: 0.5, SuggestedY: 0.8, Zone: ZoneBottom}
	if top < bottom {
		s.SuggestedY = 0.15
		s.Zone = ZoneTop
	}
	s.Confidence = Confidence(top, bottom)
	return s
}

// PositionAdvisor 位置建议接口
type PositionAdvisor interface {
	SuggestPosition(ctx context.Context, videoPath string) PositionSuggestion
}

// AnalyzerOptions 位置分析参数
type AnalyzerOptions struct {
	TempDir       string
	BandFraction  float64
	LowThreshold  float64
	HighThreshold float64
}

// PositionAnalyzer 抽帧后比较上下条带边缘密度给出位置建议
type PositionAnalyzer struct {
	extractor   FrameExtractor
	newDetector func() (EdgeDetector, error)
	opts        AnalyzerOptions

	once     sync.Once
	mutex    sync.Mutex
	detector EdgeDetector
	initErr  error
}

// NewPositionAnalyzer 创建位置分析器，边缘检测器在首次使用时创建
func NewPositionAnalyzer(extractor FrameExtractor, opts AnalyzerOptions) *PositionAnalyzer {
	if opts.BandFraction <= 0 || opts.BandFraction > 0.5 {
		opts.BandFraction = DefaultBandFraction
	}
	if opts.LowThreshold <= 0 {
		opts.LowThreshold = DefaultLowThreshold
	}
	if opts.HighThreshold <= 0 {
		opts.HighThreshold = DefaultHighThreshold
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}

	a := &PositionAnalyzer{extractor: extractor, opts: opts}
	a.newDetector = func() (EdgeDetector, error) {
		return NewEdgeDetector(a.opts.LowThreshold, a.opts.HighThreshold)
	}
	return a
}

// TempDir 临时帧所在目录
func (a *PositionAnalyzer) TempDir() string {
	return a.opts.TempDir
}

// WithDetector 使用指定的边缘检测器构造函数
func (a *PositionAnalyzer) WithDetector(newDetector func() (EdgeDetector, error)) *PositionAnalyzer {
	a.newDetector = newDetector
	return a
}

// detect 首次调用时创建边缘检测器，关闭后不再可用
func (a *PositionAnalyzer) detect(frame string) (*EdgeMap, error) {
	a.once.Do(func() {
		a.detector, a.initErr = a.newDetector()
	})

	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.initErr != nil {
		return nil, a.initErr
	}
	if a.detector == nil {
		return nil, errors.New("position analyzer closed")
	}
	return a.detector.Detect(frame)
}

// SuggestPosition 分析视频帧并给出建议，任何失败都返回默认建议
func (a *PositionAnalyzer) SuggestPosition(ctx context.Context, videoPath string) PositionSuggestion {
	frame := filepath.Join(a.opts.TempDir,
		fmt.Sprintf("frame_%d_%s.png", time.Now().UnixMilli(), uuid.New().String()[:8]))
	defer os.Remove(frame)

	suggestion, err := a.analyze(ctx, videoPath, frame)
	if err != nil {
		utils.Warn("位置分析失败，使用默认位置", map[string]string{
			"video": videoPath,
			"error": err.Error(),
		})
		return DefaultSuggestion()
	}

	utils.Debug("位置分析完成", map[string]string{
		"video":      videoPath,
		"zone":       suggestion.Zone,
		"confidence": fmt.Sprintf("%.3f", suggestion.Confidence),
	})
	return suggestion
}

func (a *PositionAnalyzer) analyze(ctx context.Context, videoPath, frame string) (PositionSuggestion, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return PositionSuggestion{}, err
	}
	if err := a.extractor.Extract(ctx, videoPath, frame); err != nil {
		return PositionSuggestion{}, err
	}

	edges, err := a.detect(frame)
	if err != nil {
		return PositionSuggestion{}, err
	}
	if edges.Height == 0 {
		return PositionSuggestion{}, errors.New("empty frame")
	}

	top, bottom := edges.BandCounts(a.opts.BandFraction)
	return SuggestFromCounts(top, bottom), nil
}

// Close 释放边缘检测器
func (a *PositionAnalyzer) Close() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.detector == nil {
		return nil
	}
	err := a.detector.Close()
	a.detector = nil
	return err
}

// Accept 置信度超过阈值时采用建议
func Accept(s PositionSuggestion, minConfidence float64) bool {
	return s.Confidence > minConfidence
}
