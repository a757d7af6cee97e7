// Package config 加载服务与命令行共用的配置
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	WorkDir  string         `mapstructure:"work_dir"`
	Public   string         `mapstructure:"public_dir"`
	FFmpeg   FFmpegConfig   `mapstructure:"ffmpeg"`
	Font     FontConfig     `mapstructure:"font"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Log      LogConfig      `mapstructure:"log"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// FFmpegConfig 外部编码器配置
type FFmpegConfig struct {
	Binary string `mapstructure:"binary"`
}

// FontConfig 字体查找顺序
type FontConfig struct {
	Paths []string `mapstructure:"paths"`
}

// AnalysisConfig 自动定位参数
type AnalysisConfig struct {
	MinConfidence float64 `mapstructure:"min_confidence"`
	BandFraction  float64 `mapstructure:"band_fraction"`
	Frame         string  `mapstructure:"frame"` // first 或 middle
	LowThreshold  float64 `mapstructure:"low_threshold"`
	HighThreshold float64 `mapstructure:"high_threshold"`
}

// LogConfig 日志配置
type LogConfig struct {
	Dir   string `mapstructure:"dir"`
	Level string `mapstructure:"level"`
}

// JobsConfig 任务记录配置
type JobsConfig struct {
	Journal string `mapstructure:"journal"`
}

// StorageConfig 成品发布配置，Provider 为空时不发布
type StorageConfig struct {
	Provider        string `mapstructure:"provider"` // oss 或 s3
	Bucket          string `mapstructure:"bucket"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	Prefix          string `mapstructure:"prefix"`
}

// Enabled 是否配置了对象存储
func (s StorageConfig) Enabled() bool {
	return s.Provider != "" && s.Bucket != ""
}

// SetDefaults 写入默认配置
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("work_dir", ".")
	v.SetDefault("public_dir", "./public")
	v.SetDefault("ffmpeg.binary", "ffmpeg")
	v.SetDefault("font.paths", []string{
		"./static/Roboto-Bold.ttf",
		"./fonts/Roboto-Bold.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	})
	v.SetDefault("analysis.min_confidence", 0.1)
	v.SetDefault("analysis.band_fraction", 0.3)
	v.SetDefault("analysis.frame", "first")
	v.SetDefault("analysis.low_threshold", 50)
	v.SetDefault("analysis.high_threshold", 150)
	v.SetDefault("log.dir", "./log")
	v.SetDefault("log.level", "info")
	v.SetDefault("jobs.journal", "./log/jobs.json")
	v.SetDefault("storage.provider", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.access_key_secret", "")
	v.SetDefault("storage.prefix", "neontext/")
}

// New 创建带默认值、环境变量覆盖的 viper 实例
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("NEONTEXT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load 读取 .env、config/config.yaml（可选）或 file 指定的配置文件
func Load(file string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, err
		}
	}
	return Parse(v)
}

// Parse 将 viper 内容解码为 Config
func Parse(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
