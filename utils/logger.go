package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger 结构化日志记录器，context 以字段形式输出
type Logger struct {
	entry *logrus.Logger
	file  *RotatingFile
}

// NewLogger 创建写入 logDir/<logPrefix>.log 和标准错误的 JSON 日志记录器
func NewLogger(logDir, logPrefix, level string, maxSize int64, maxFiles int) (*Logger, error) {
	file, err := NewRotatingFile(logDir, logPrefix, maxSize, maxFiles)
	if err != nil {
		return nil, err
	}

	l := NewWriterLogger(io.MultiWriter(file, os.Stderr), level)
	l.file = file
	return l, nil
}

// NewWriterLogger 创建写入任意 io.Writer 的日志记录器
func NewWriterLogger(w io.Writer, level string) *Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "timestamp",
			logrus.FieldKeyMsg:  "message",
		},
	})

	l := &Logger{entry: base}
	l.SetLevel(level)
	return l
}

// SetLevel 设置日志级别，无法识别时使用 info
func (l *Logger) SetLevel(level string) {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.entry.SetLevel(lvl)
}

// Logrus 返回底层 logrus 实例，供中间件等复用
func (l *Logger) Logrus() *logrus.Logger {
	return l.entry
}

func (l *Logger) with(context map[string]string) *logrus.Entry {
	fields := make(logrus.Fields, len(context))
	for k, v := range context {
		fields[k] = v
	}
	return l.entry.WithFields(fields)
}

// Debug 记录DEBUG级别日志
func (l *Logger) Debug(message string, context map[string]string) {
	l.with(context).Debug(message)
}

// Info 记录INFO级别日志
func (l *Logger) Info(message string, context map[string]string) {
	l.with(context).Info(message)
}

// Warn 记录WARN级别日志
func (l *Logger) Warn(message string, context map[string]string) {
	l.with(context).Warn(message)
}

// Error 记录ERROR级别日志
func (l *Logger) Error(message string, context map[string]string) {
	l.with(context).Error(message)
}

// Close 关闭日志文件
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
