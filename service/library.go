package service

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/neontext/neontext/utils"
	"github.com/pkg/errors"
)

// ErrInvalidName 文件名包含路径或不存在
var ErrInvalidName = errors.New("invalid video name")

// 缩略图尺寸
const (
	ThumbnailWidth  = 270
	ThumbnailHeight = 480
)

var inputPattern = regexp.MustCompile(`(?i)\.(mp4|mov|avi)$`)

// InputVideo 可作为输入的视频
type InputVideo struct {
	Filename string `json:"filename"`
	Name     string `json:"name"`
}

// OutputVideo 画廊中的视频及从文件名解析的元数据
type OutputVideo struct {
	Filename  string    `json:"filename"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Effect    string    `json:"effect"`
	Size      float64   `json:"size"` // MB，保留两位小数
	SizeHuman string    `json:"sizeHuman"`
	Created   time.Time `json:"created"`
	Duration  float64   `json:"duration,omitempty"`
	URL       string    `json:"url"`
}

// VideoLibrary 工作目录中的输入与成品视频
type VideoLibrary struct {
	dir       string
	prober    Prober
	extractor FrameExtractor
}

// NewVideoLibrary 创建视频库，prober 与 extractor 可为 nil
func NewVideoLibrary(dir string, prober Prober, extractor FrameExtractor) *VideoLibrary {
	return &VideoLibrary{dir: dir, prober: prober, extractor: extractor}
}

// Dir 工作目录
func (l *VideoLibrary) Dir() string {
	return l.dir
}

// IsGenerated 是否为生成的成品或测试视频
func IsGenerated(filename string) bool {
	return strings.HasPrefix(filename, "neon_") || strings.HasPrefix(filename, "test_")
}

// ListInputs 列出 mp4/mov/avi 且不是成品的视频
func (l *VideoLibrary) ListInputs() ([]InputVideo, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, errors.Wrap(err, "read work dir")
	}

	inputs := make([]InputVideo, 0)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !inputPattern.MatchString(name) || IsGenerated(name) {
			continue
		}
		inputs = append(inputs, InputVideo{
			Filename: name,
			Name:     strings.TrimSuffix(name, filepath.Ext(name)),
		})
	}
	return inputs, nil
}

// ParseOutputMeta 从文件名解析颜色和效果
func ParseOutputMeta(filename string) (color, effect string) {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))

	color = "unknown"
	for _, marker := range []string{"neon_", "test_"} {
		if i := strings.Index(name, marker); i >= 0 {
			if c := strings.SplitN(name[i+len(marker):], "_", 2)[0]; c != "" {
				color = c
			} else {
				color = "unknown"
			}
		}
	}

	effect = "standard"
	if strings.Contains(name, "enhanced") || strings.Contains(name, "neon") {
		effect = "enhanced"
	}
	return color, effect
}

// RoundMB 字节数转为 MB 并保留两位小数
func RoundMB(size int64) float64 {
	return math.Round(float64(size)/1024/1024*100) / 100
}

// ListOutputs 列出全部 mp4，按修改时间倒序
func (l *VideoLibrary) ListOutputs() ([]OutputVideo, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, errors.Wrap(err, "read work dir")
	}

	videos := make([]OutputVideo, 0)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".mp4") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}

		color, effect := ParseOutputMeta(name)
		v := OutputVideo{
			Filename:  name,
			Name:      strings.TrimSuffix(name, filepath.Ext(name)),
			Color:     color,
			Effect:    effect,
			Size:      RoundMB(info.Size()),
			SizeHuman: humanize.Bytes(uint64(info.Size())),
			Created:   info.ModTime(),
			URL:       "/videos/" + name,
		}
		if l.prober != nil {
			if probe, err := l.prober.Probe(filepath.Join(l.dir, name)); err == nil {
				v.Duration = probe.Duration
			}
		}
		videos = append(videos, v)
	}

	sort.SliceStable(videos, func(i, k int) bool {
		return videos[i].Created.After(videos[k].Created)
	})
	return videos, nil
}

// IsVideoName 是否为可公开播放的视频文件名
func IsVideoName(name string) bool {
	return !strings.HasPrefix(name, ".") && inputPattern.MatchString(name)
}

// Path 返回工作目录中文件的路径，拒绝包含目录的名称
func (l *VideoLibrary) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", errors.Wrapf(ErrInvalidName, "%q", name)
	}
	return filepath.Join(l.dir, name), nil
}

// Resolve 将输入引用解析为工作目录中的路径，http(s) 地址会先下载到工作目录
func (l *VideoLibrary) Resolve(ctx context.Context, input string) (string, error) {
	if utils.IsRemoteURL(input) {
		ext := filepath.Ext(strings.SplitN(input, "?", 2)[0])
		if !inputPattern.MatchString(ext) {
			ext = ".mp4"
		}
		dst := filepath.Join(l.dir, fmt.Sprintf("download_%s%s", uuid.New().String()[:8], ext))
		if err := utils.DownloadFile(ctx, input, dst); err != nil {
			return "", errors.Wrap(err, "download input")
		}
		return dst, nil
	}

	p, err := l.Path(input)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(p); err != nil {
		return "", errors.Wrapf(ErrInvalidName, "%q", input)
	}
	return p, nil
}

// Info 探测工作目录中视频的信息
func (l *VideoLibrary) Info(name string) (*VideoInfo, error) {
	p, err := l.Path(name)
	if err != nil {
		return nil, err
	}
	if l.prober == nil {
		return nil, errors.New("probe unavailable")
	}
	return l.prober.Probe(p)
}

// Thumbnail 返回视频缩略图路径，已存在且较新时直接复用
func (l *VideoLibrary) Thumbnail(ctx context.Context, name string) (string, error) {
	video, err := l.Path(name)
	if err != nil {
		return "", err
	}
	stat, err := os.Stat(video)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidName, "%q", name)
	}

	thumbDir := filepath.Join(l.dir, ".thumbnails")
	thumb := filepath.Join(thumbDir, strings.TrimSuffix(name, filepath.Ext(name))+".jpg")
	if ts, err := os.Stat(thumb); err == nil && !ts.ModTime().Before(stat.ModTime()) {
		return thumb, nil
	}

	if l.extractor == nil {
		return "", errors.New("frame extraction unavailable")
	}
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		return "", errors.Wrap(err, "create thumbnail dir")
	}

	frame := filepath.Join(thumbDir, fmt.Sprintf("thumb_%d_%s.png", time.Now().UnixMilli(), uuid.New().String()[:8]))
	defer os.Remove(frame)
	if err := l.extractor.Extract(ctx, video, frame); err != nil {
		return "", err
	}

	if err := MakeThumbnail(frame, thumb); err != nil {
		return "", err
	}
	return thumb, nil
}

// MakeThumbnail 缩放裁剪为竖屏缩略图
func MakeThumbnail(src, dst string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return errors.Wrap(err, "open frame")
	}
	thumb := imaging.Thumbnail(img, ThumbnailWidth, ThumbnailHeight, imaging.Lanczos)
	return errors.Wrap(imaging.Save(thumb, dst, imaging.JPEGQuality(80)), "save thumbnail")
}
