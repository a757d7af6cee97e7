package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// RotatingFile 按大小轮转的日志文件，实现 io.Writer
type RotatingFile struct {
	mutex    sync.Mutex
	file     *os.File
	dir      string
	prefix   string
	maxSize  int64
	maxFiles int
}

// NewRotatingFile 在 dir 下打开 <prefix>.log
func NewRotatingFile(dir, prefix string, maxSize int64, maxFiles int) (*RotatingFile, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建日志目录失败: %w", err)
	}

	r := &RotatingFile{dir: dir, prefix: prefix, maxSize: maxSize, maxFiles: maxFiles}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path 当前日志文件路径
func (r *RotatingFile) Path() string {
	return filepath.Join(r.dir, r.prefix+".log")
}

func (r *RotatingFile) open() error {
	file, err := os.OpenFile(r.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("打开日志文件失败: %w", err)
	}
	r.file = file
	return nil
}

// Write 写入日志数据，超过大小限制时先轮转
func (r *RotatingFile) Write(p []byte) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.needRotate() {
		r.rotate()
	}
	return r.file.Write(p)
}

func (r *RotatingFile) needRotate() bool {
	if r.maxSize <= 0 {
		return false
	}
	info, err := r.file.Stat()
	if err != nil {
		return false
	}
	return info.Size() >= r.maxSize
}

// rotate 重命名当前文件并重新打开
func (r *RotatingFile) rotate() {
	r.file.Close()

	rotated := filepath.Join(r.dir, fmt.Sprintf("%s_%s.log", r.prefix, time.Now().Format("20060102_150405.000")))
	os.Rename(r.Path(), rotated)
	r.cleanup()

	if err := r.open(); err != nil {
		r.file = os.Stderr
	}
}

// cleanup 删除超出数量限制的旧日志
func (r *RotatingFile) cleanup() {
	if r.maxFiles <= 0 {
		return
	}

	matches, err := filepath.Glob(filepath.Join(r.dir, r.prefix+"_*.log"))
	if err != nil {
		return
	}
	// 文件名带时间戳，字典序即时间顺序
	sort.Strings(matches)
	for i := 0; i < len(matches)-r.maxFiles; i++ {
		os.Remove(matches[i])
	}
}

// Close 关闭日志文件
func (r *RotatingFile) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.file == os.Stderr {
		return nil
	}
	return r.file.Close()
}
