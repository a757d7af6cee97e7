package utils

import (
	"os"
	"sync"
)

var (
	globalLogger *Logger
	mutex        sync.RWMutex
)

// InitGlobalLogger 初始化全局日志记录器，失败时退回标准错误输出
func InitGlobalLogger(logDir, level string) error {
	logger, err := NewLogger(logDir, "neontext", level, 10*1024*1024, 10) // 10MB每个文件，最多10个文件
	if err != nil {
		SetGlobalLogger(NewWriterLogger(os.Stderr, level))
		return err
	}
	SetGlobalLogger(logger)
	return nil
}

// SetGlobalLogger 替换全局日志记录器
func SetGlobalLogger(logger *Logger) {
	mutex.Lock()
	defer mutex.Unlock()
	globalLogger = logger
}

// GetGlobalLogger 获取全局日志记录器实例
func GetGlobalLogger() *Logger {
	mutex.RLock()
	logger := globalLogger
	mutex.RUnlock()
	if logger != nil {
		return logger
	}

	mutex.Lock()
	defer mutex.Unlock()
	if globalLogger == nil {
		globalLogger = NewWriterLogger(os.Stderr, "info")
	}
	return globalLogger
}

// Debug 记录DEBUG级别日志
func Debug(message string, context map[string]string) {
	GetGlobalLogger().Debug(message, context)
}

// Info 记录INFO级别日志
func Info(message string, context map[string]string) {
	GetGlobalLogger().Info(message, context)
}

// Warn 记录WARN级别日志
func Warn(message string, context map[string]string) {
	GetGlobalLogger().Warn(message, context)
}

// Error 记录ERROR级别日志
func Error(message string, context map[string]string) {
	GetGlobalLogger().Error(message, context)
}
