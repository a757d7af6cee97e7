// Package neontext 生成竖屏视频霓虹光晕文字的 ffmpeg 滤镜图
package neontext

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrEmptyText 文字为空
	ErrEmptyText = errors.New("text is required")
	// ErrMissingInput 缺少输入视频
	ErrMissingInput = errors.New("input video is required")
	// ErrAnchorRange 锚点超出 0-1 范围
	ErrAnchorRange = errors.New("anchor must be between 0 and 1")
)

const (
	// DefaultX 默认水平锚点
	DefaultX = 0.5
	// DefaultY 默认垂直锚点
	DefaultY = 0.7
)

// Request 一次文字合成请求
type Request struct {
	InputPath      string  `json:"inputPath"`
	OutputPath     string  `json:"outputPath"`
	Text           string  `json:"text"`
	Color          string  `json:"color"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	FontSize       int     `json:"fontSize,omitempty"` // 0 表示自动
	Enhanced       bool    `json:"enhanced"`
	BlurBackground bool    `json:"blurBackground"`
	AutoPosition   bool    `json:"autoPosition"`
}

// Validate 校验请求，失败时不应调用任何外部进程
func (r *Request) Validate() error {
	if strings.TrimSpace(r.InputPath) == "" {
		return ErrMissingInput
	}
	if r.Text == "" {
		return ErrEmptyText
	}
	if r.X < 0 || r.X > 1 {
		return fmt.Errorf("x=%v: %w", r.X, ErrAnchorRange)
	}
	if r.Y < 0 || r.Y > 1 {
		return fmt.Errorf("y=%v: %w", r.Y, ErrAnchorRange)
	}
	return nil
}

// ColorName 返回规范化后的颜色名称，为空时返回默认颜色
func (r *Request) ColorName() string {
	if name := normalizeColor(r.Color); name != "" {
		return name
	}
	return DefaultColor
}

// OutputName 生成 neon_<color>_<毫秒时间戳>.mp4 形式的输出文件名
func OutputName(color string, now time.Time) string {
	name := normalizeColor(color)
	if name == "" {
		name = DefaultColor
	}
	return fmt.Sprintf("neon_%s_%d.mp4", name, now.UnixMilli())
}

// DefaultFontPaths 字体查找顺序
var DefaultFontPaths = []string{
	"./static/Roboto-Bold.ttf",
	"./fonts/Roboto-Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
}

// FindFont 返回第一个存在的字体路径，都不存在时返回第一个候选
func FindFont(paths []string) string {
	if len(paths) == 0 {
		paths = DefaultFontPaths
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return filepath.ToSlash(p)
		}
	}
	return filepath.ToSlash(paths[0])
}
