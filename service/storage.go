package service

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/neontext/neontext/config"
	"github.com/pkg/errors"
)

// Publisher 将渲染结果发布到对象存储
type Publisher interface {
	Publish(ctx context.Context, localPath, key string) (string, error)
}

// NewPublisher 根据配置创建发布器，未配置存储时返回 nil
func NewPublisher(cfg config.StorageConfig) (Publisher, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	switch strings.ToLower(cfg.Provider) {
	case "oss":
		return NewOSSPublisher(cfg)
	case "s3":
		return NewS3Publisher(cfg)
	default:
		return nil, errors.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// ObjectKey 生成对象键：prefix + 文件名
func ObjectKey(prefix, localPath string) string {
	return path.Join(prefix, filepath.Base(localPath))
}

// OSSPublisher 阿里云 OSS 发布器
type OSSPublisher struct {
	bucket   *oss.Bucket
	name     string
	endpoint string
}

// NewOSSPublisher 创建 OSS 客户端并打开存储空间
func NewOSSPublisher(cfg config.StorageConfig) (*OSSPublisher, error) {
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" {
		return nil, errors.New("OSS配置不完整")
	}

	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, errors.Wrap(err, "创建OSS客户端失败")
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "获取存储空间失败")
	}
	return &OSSPublisher{bucket: bucket, name: cfg.Bucket, endpoint: cfg.Endpoint}, nil
}

// Publish 上传文件并返回访问地址
func (p *OSSPublisher) Publish(ctx context.Context, localPath, key string) (string, error) {
	if err := p.bucket.PutObjectFromFile(key, localPath, oss.ContentType("video/mp4")); err != nil {
		return "", errors.Wrap(err, "上传文件到OSS失败")
	}
	endpoint := strings.TrimPrefix(strings.TrimPrefix(p.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", p.name, endpoint, key), nil
}

// S3Publisher S3 兼容存储发布器
type S3Publisher struct {
	uploader *s3manager.Uploader
	bucket   string
}

// NewS3Publisher 创建 S3 上传器
func NewS3Publisher(cfg config.StorageConfig) (*S3Publisher, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.AccessKeySecret, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, errors.Wrap(err, "create aws session")
	}
	return &S3Publisher{uploader: s3manager.NewUploader(sess), bucket: cfg.Bucket}, nil
}

// Publish 上传文件并返回对象地址
func (p *S3Publisher) Publish(ctx context.Context, localPath, key string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", errors.Wrap(err, "open output")
	}
	defer f.Close()

	out, err := p.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("video/mp4"),
	})
	if err != nil {
		return "", errors.Wrap(err, "upload to s3")
	}
	return out.Location, nil
}
