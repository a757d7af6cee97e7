package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/neontext/neontext"
	"github.com/pkg/errors"
)

// Progress 渲染进度
type Progress struct {
	ElapsedSecs float64 `json:"elapsedSecs"`
	Percent     float64 `json:"percent"`
	Speed       float64 `json:"speed"`
}

// ProgressCallback 渲染进度回调
type ProgressCallback func(Progress)

// RenderOptions 渲染参数
type RenderOptions struct {
	Enhanced bool
	Duration float64 // 源视频时长（秒），用于计算百分比，0 表示未知
	Progress ProgressCallback
}

// RenderResult 一次渲染的结果
type RenderResult struct {
	Success bool
	Err     error
	Stderr  string
}

// Encoder 外部编码器接口
type Encoder interface {
	Render(ctx context.Context, p *neontext.Pipeline, input, output string, opts RenderOptions) RenderResult
}

// FFmpegEncoder 调用 ffmpeg 可执行文件渲染滤镜管道
type FFmpegEncoder struct {
	Binary string
}

// NewFFmpegEncoder 创建编码器，binary 为空时使用 PATH 中的 ffmpeg
func NewFFmpegEncoder(binary string) *FFmpegEncoder {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpegEncoder{Binary: binary}
}

// BuildRenderArgs 生成 ffmpeg 参数列表
func BuildRenderArgs(p *neontext.Pipeline, input, output string, enhanced bool) []string {
	crf := "23"
	if enhanced {
		crf = "20"
	}

	args := []string{
		"-i", input,
		"-filter_complex", p.FilterComplex(),
		"-map", "[" + p.OutputLabel() + "]",
		"-map", "0:a?",
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", crf,
		"-c:a", "aac",
		"-b:a", "128k",
	}
	if enhanced {
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, "-y", output)
}

// Render 执行渲染，失败时删除不完整的输出文件
func (e *FFmpegEncoder) Render(ctx context.Context, p *neontext.Pipeline, input, output string, opts RenderOptions) RenderResult {
	cmd := exec.CommandContext(ctx, e.Binary, BuildRenderArgs(p, input, output, opts.Enhanced)...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return RenderResult{Err: errors.Wrap(err, "stderr pipe")}
	}
	if err := cmd.Start(); err != nil {
		return RenderResult{Err: errors.Wrap(err, "start ffmpeg")}
	}

	var captured strings.Builder
	streamProgress(stderr, &captured, opts.Duration, opts.Progress)

	err = cmd.Wait()
	diag := captured.String()
	if err != nil {
		os.Remove(output)
		if ctx.Err() != nil {
			return RenderResult{Err: errors.Wrap(ctx.Err(), "render cancelled"), Stderr: diag}
		}
		return RenderResult{Err: errors.Wrap(err, "ffmpeg failed"), Stderr: diag}
	}
	return RenderResult{Success: true, Stderr: diag}
}

var (
	timeRegex  = regexp.MustCompile(`time=(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)
	speedRegex = regexp.MustCompile(`speed=\s*([\d.]+)x`)
)

// streamProgress 逐行读取 stderr，全部写入 captured，含 time= 的行触发回调
func streamProgress(r io.Reader, captured *strings.Builder, duration float64, callback ProgressCallback) {
	reader := bufio.NewReader(r)
	var line strings.Builder

	for {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}
		captured.WriteByte(b)

		// 进度行以 \r 结尾
		if b != '\r' && b != '\n' {
			line.WriteByte(b)
			continue
		}
		if callback != nil {
			if progress, ok := ParseProgressLine(line.String(), duration); ok {
				callback(progress)
			}
		}
		line.Reset()
	}
}

// ParseProgressLine 解析 ffmpeg 进度行
func ParseProgressLine(line string, duration float64) (Progress, bool) {
	m := timeRegex.FindStringSubmatch(line)
	if m == nil {
		return Progress{}, false
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.ParseFloat(m[3], 64)
	p := Progress{ElapsedSecs: float64(hours*3600+minutes*60) + seconds}

	if s := speedRegex.FindStringSubmatch(line); s != nil {
		p.Speed, _ = strconv.ParseFloat(s[1], 64)
	}
	if duration > 0 {
		p.Percent = p.ElapsedSecs / duration * 100
		if p.Percent > 100 {
			p.Percent = 100
		}
	}
	return p, true
}

// RenderError 渲染失败，携带 ffmpeg 诊断输出
type RenderError struct {
	Err    error
	Stderr string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
