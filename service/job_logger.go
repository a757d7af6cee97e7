package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// JobLogger 单个任务的日志文件
type JobLogger struct {
	jobID  string
	logDir string
}

// NewJobLogger 在 logDir 下创建任务日志
func NewJobLogger(logDir, jobID string) (*JobLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &JobLogger{jobID: jobID, logDir: logDir}, nil
}

// Path 日志文件路径
func (l *JobLogger) Path() string {
	return filepath.Join(l.logDir, l.jobID+".log")
}

// Log 追加一条日志
func (l *JobLogger) Log(level, message string, data map[string]interface{}) {
	if l == nil {
		return
	}

	entry := fmt.Sprintf("%s [%s] %s | %v\n",
		time.Now().Format("2006-01-02 15:04:05"),
		strings.ToUpper(level),
		message,
		data,
	)

	f, err := os.OpenFile(l.Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to log file: %v\n", err)
	}
}

// LogRender 记录渲染耗时与结果
func (l *JobLogger) LogRender(args []string, elapsed time.Duration, result RenderResult) {
	data := map[string]interface{}{
		"args":     strings.Join(args, " "),
		"duration": elapsed.Seconds(),
		"success":  result.Success,
	}
	if !result.Success {
		data["error"] = fmt.Sprint(result.Err)
		data["stderr"] = tail(result.Stderr, 2000)
		l.Log("ERROR", "ffmpeg渲染失败", data)
		return
	}
	l.Log("INFO", "ffmpeg渲染完成", data)
}

// tail 返回末尾最多 n 个字节
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
