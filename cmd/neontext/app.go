package main

import (
	"github.com/neontext/neontext/config"
	"github.com/neontext/neontext/service"
)

// app 按配置组装的服务组件
type app struct {
	cfg       *config.Config
	prober    *service.ProbeCache
	extractor *service.FFmpegFrameExtractor
	analyzer  *service.PositionAnalyzer
	library   *service.VideoLibrary
	processor *service.GlowProcessor
}

func newApp(cfg *config.Config) (*app, error) {
	publisher, err := service.NewPublisher(cfg.Storage)
	if err != nil {
		return nil, err
	}

	prober := service.NewProbeCache()
	extractor := service.NewFFmpegFrameExtractor(cfg.FFmpeg.Binary, cfg.Analysis.Frame, prober)
	analyzer := service.NewPositionAnalyzer(extractor, service.AnalyzerOptions{
		TempDir:       cfg.WorkDir,
		BandFraction:  cfg.Analysis.BandFraction,
		LowThreshold:  cfg.Analysis.LowThreshold,
		HighThreshold: cfg.Analysis.HighThreshold,
	})

	processor := service.NewGlowProcessor(
		service.NewFFmpegEncoder(cfg.FFmpeg.Binary),
		analyzer,
		prober,
		publisher,
		service.ProcessorOptions{
			FontPaths:     cfg.Font.Paths,
			MinConfidence: cfg.Analysis.MinConfidence,
			PublishPrefix: cfg.Storage.Prefix,
		},
	)

	return &app{
		cfg:       cfg,
		prober:    prober,
		extractor: extractor,
		analyzer:  analyzer,
		library:   service.NewVideoLibrary(cfg.WorkDir, prober, extractor),
		processor: processor,
	}, nil
}

func (a *app) Close() error {
	return a.analyzer.Close()
}
