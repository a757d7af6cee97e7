package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoInfo 视频信息
type VideoInfo struct {
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	Duration   float64   `json:"duration"`
	Format     string    `json:"format"`
	Codec      string    `json:"codec"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	FPS        float64   `json:"fps"`
	Bitrate    int64     `json:"bitrate"`
	HasAudio   bool      `json:"hasAudio"`
	AnalyzedAt time.Time `json:"analyzedAt"`
}

// Prober 视频信息探测接口
type Prober interface {
	Probe(path string) (*VideoInfo, error)
}

// probeFunc 便于测试替换 ffprobe 调用
type probeFunc func(path string) (string, error)

// ProbeCache 带缓存的视频信息探测，文件修改或超过一小时后重新探测
type ProbeCache struct {
	cache map[string]*VideoInfo
	mutex sync.RWMutex
	probe probeFunc
	ttl   time.Duration
}

// NewProbeCache 创建使用 ffprobe 的探测缓存
func NewProbeCache() *ProbeCache {
	return &ProbeCache{
		cache: make(map[string]*VideoInfo),
		probe: func(path string) (string, error) { return ffmpeg.Probe(path) },
		ttl:   time.Hour,
	}
}

// get 获取未过期的缓存
func (c *ProbeCache) get(path string, modTime time.Time) (*VideoInfo, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	info, ok := c.cache[path]
	if !ok || time.Since(info.AnalyzedAt) > c.ttl || modTime.After(info.AnalyzedAt) {
		return nil, false
	}
	return info, true
}

// Probe 探测视频信息
func (c *ProbeCache) Probe(path string) (*VideoInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("无法获取文件信息: %w", err)
	}
	if info, ok := c.get(path, stat.ModTime()); ok {
		return info, nil
	}

	data, err := c.probe(path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe执行失败: %w", err)
	}
	info, err := ParseProbe(data)
	if err != nil {
		return nil, err
	}
	info.FileName = filepath.Base(path)
	info.FileSize = stat.Size()
	info.AnalyzedAt = time.Now()

	c.mutex.Lock()
	c.cache[path] = info
	c.mutex.Unlock()
	return info, nil
}

type probeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
		BitRate    string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType    string `json:"codec_type"`
		CodecName    string `json:"codec_name"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
	} `json:"streams"`
}

// ParseProbe 解析 ffprobe JSON 输出
func ParseProbe(data string) (*VideoInfo, error) {
	var out probeOutput
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("解析ffprobe输出失败: %w", err)
	}

	info := &VideoInfo{Format: out.Format.FormatName}
	info.Duration, _ = strconv.ParseFloat(out.Format.Duration, 64)
	info.Bitrate, _ = strconv.ParseInt(out.Format.BitRate, 10, 64)

	videoSeen := false
	for _, s := range out.Streams {
		switch s.CodecType {
		case "audio":
			info.HasAudio = true
		case "video":
			if videoSeen {
				continue
			}
			videoSeen = true
			info.Codec = s.CodecName
			info.Width = s.Width
			info.Height = s.Height

			var num, den int
			if _, err := fmt.Sscanf(s.AvgFrameRate, "%d/%d", &num, &den); err == nil && den != 0 {
				info.FPS = float64(num) / float64(den)
			}
		}
	}
	return info, nil
}
