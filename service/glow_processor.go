package service

import (
	"context"
	"strconv"
	"time"

	"github.com/neontext/neontext"
	"github.com/neontext/neontext/utils"
	"github.com/pkg/errors"
)

// ProcessorOptions 合成流程参数
type ProcessorOptions struct {
	FontPaths     []string
	MinConfidence float64
	PublishPrefix string
}

// ProcessOptions 单次合成的可选参数
type ProcessOptions struct {
	Progress ProgressCallback
	Logger   *JobLogger
}

// ProcessResult 合成结果
type ProcessResult struct {
	OutputPath string              `json:"outputPath"`
	URL        string              `json:"url,omitempty"`
	FontSize   int                 `json:"fontSize"`
	X          float64             `json:"x"`
	Y          float64             `json:"y"`
	Suggestion *PositionSuggestion `json:"suggestion,omitempty"`
	Pipeline   *neontext.Pipeline  `json:"pipeline"`
	Elapsed    time.Duration       `json:"elapsed"`
}

// GlowProcessor 校验请求、自动定位、组装滤镜并调用编码器
type GlowProcessor struct {
	encoder   Encoder
	advisor   PositionAdvisor
	prober    Prober
	publisher Publisher
	opts      ProcessorOptions
}

// NewGlowProcessor 创建合成流程，advisor、prober、publisher 可为 nil
func NewGlowProcessor(encoder Encoder, advisor PositionAdvisor, prober Prober, publisher Publisher, opts ProcessorOptions) *GlowProcessor {
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = DefaultMinConfidence
	}
	return &GlowProcessor{
		encoder:   encoder,
		advisor:   advisor,
		prober:    prober,
		publisher: publisher,
		opts:      opts,
	}
}

// Plan 校验请求并生成滤镜管道，不调用编码器
func (g *GlowProcessor) Plan(ctx context.Context, req *neontext.Request) (*ProcessResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := &ProcessResult{}
	if req.AutoPosition && g.advisor != nil {
		s := g.advisor.SuggestPosition(ctx, req.InputPath)
		result.Suggestion = &s
		if Accept(s, g.opts.MinConfidence) {
			req.X, req.Y = s.SuggestedX, s.SuggestedY
		}
	}

	ramp := neontext.ResolveColor(req.Color)
	font := neontext.FindFont(g.opts.FontPaths)
	result.FontSize = neontext.EstimateFontSize(req.Text, req.FontSize)
	result.X, result.Y = req.X, req.Y
	result.Pipeline = neontext.Compose(*req, ramp, font, result.FontSize)
	result.OutputPath = req.OutputPath
	return result, nil
}

// Process 执行一次完整合成
func (g *GlowProcessor) Process(ctx context.Context, req neontext.Request, opts ProcessOptions) (*ProcessResult, error) {
	start := time.Now()

	result, err := g.Plan(ctx, &req)
	if err != nil {
		return nil, err
	}
	if result.Suggestion != nil {
		opts.Logger.Log("INFO", "自动定位", map[string]interface{}{
			"zone":       result.Suggestion.Zone,
			"confidence": result.Suggestion.Confidence,
			"adopted":    Accept(*result.Suggestion, g.opts.MinConfidence),
		})
	}

	renderOpts := RenderOptions{Enhanced: req.Enhanced, Progress: opts.Progress}
	if g.prober != nil {
		if info, err := g.prober.Probe(req.InputPath); err == nil {
			renderOpts.Duration = info.Duration
		}
	}

	utils.Info("开始渲染", map[string]string{
		"input":    req.InputPath,
		"output":   req.OutputPath,
		"color":    req.ColorName(),
		"enhanced": strconv.FormatBool(req.Enhanced),
		"fontSize": strconv.Itoa(result.FontSize),
	})

	renderStart := time.Now()
	res := g.encoder.Render(ctx, result.Pipeline, req.InputPath, req.OutputPath, renderOpts)
	if opts.Logger != nil {
		opts.Logger.LogRender(BuildRenderArgs(result.Pipeline, req.InputPath, req.OutputPath, req.Enhanced), time.Since(renderStart), res)
	}
	if !res.Success {
		utils.Error("渲染失败", map[string]string{
			"output": req.OutputPath,
			"error":  errorString(res.Err),
		})
		return nil, &RenderError{Err: res.Err, Stderr: res.Stderr}
	}

	if g.publisher != nil {
		url, err := g.publisher.Publish(ctx, req.OutputPath, ObjectKey(g.opts.PublishPrefix, req.OutputPath))
		if err != nil {
			return nil, errors.Wrap(err, "publish output")
		}
		result.URL = url
	}

	result.Elapsed = time.Since(start)
	utils.Info("渲染完成", map[string]string{
		"output":  req.OutputPath,
		"elapsed": result.Elapsed.String(),
	})
	return result, nil
}

func errorString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
