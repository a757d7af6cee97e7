package service

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// 抽帧模式
const (
	FrameFirst  = "first"
	FrameMiddle = "middle"
)

// FrameExtractor 从视频中抽取一帧静态图片
type FrameExtractor interface {
	Extract(ctx context.Context, video, dst string) error
}

// FFmpegFrameExtractor 通过 ffmpeg 抽帧
type FFmpegFrameExtractor struct {
	Binary string
	Mode   string // first 或 middle
	Prober Prober // middle 模式需要时长
}

// NewFFmpegFrameExtractor 创建抽帧器
func NewFFmpegFrameExtractor(binary, mode string, prober Prober) *FFmpegFrameExtractor {
	if binary == "" {
		binary = "ffmpeg"
	}
	if mode != FrameMiddle {
		mode = FrameFirst
	}
	return &FFmpegFrameExtractor{Binary: binary, Mode: mode, Prober: prober}
}

// seekOffset 返回 middle 模式的起始秒数，无法探测时长时退回首帧
func (e *FFmpegFrameExtractor) seekOffset(video string) float64 {
	if e.Mode != FrameMiddle || e.Prober == nil {
		return 0
	}
	info, err := e.Prober.Probe(video)
	if err != nil || info.Duration <= 0 {
		return 0
	}
	return info.Duration / 2
}

// FrameArgs 生成抽取 offset 秒后第一帧的 ffmpeg 参数
func FrameArgs(video, dst string, offset float64) []string {
	inputArgs := ffmpeg.KwArgs{}
	if offset > 0 {
		inputArgs["ss"] = strconv.FormatFloat(offset, 'f', 3, 64)
	}
	return ffmpeg.Input(video, inputArgs).
		Output(dst, ffmpeg.KwArgs{"vf": `select=eq(n\,0)`, "vframes": 1}).
		OverWriteOutput().
		GetArgs()
}

// Extract 抽取一帧到 dst
func (e *FFmpegFrameExtractor) Extract(ctx context.Context, video, dst string) error {
	args := FrameArgs(video, dst, e.seekOffset(video))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Binary, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "extract frame: %s", lastLine(stderr.String()))
	}
	return nil
}

// lastLine 返回诊断输出的最后一行非空内容
func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
