package queue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// JournalJobStore 以 JSON 文件持久化的任务存储，多进程间通过文件锁互斥
type JournalJobStore struct {
	jobs  map[string]*Job
	mutex sync.RWMutex
	path  string
	lock  *flock.Flock
}

// NewJournalJobStore 打开或创建任务记录文件
func NewJournalJobStore(path string) (*JournalJobStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	s := &JournalJobStore{
		jobs: make(map[string]*Job),
		path: path,
		lock: flock.New(path + ".lock"),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path 记录文件路径
func (s *JournalJobStore) Path() string {
	return s.path
}

// load 从文件读取任务，文件不存在或为空时视为空记录
func (s *JournalJobStore) load() error {
	if err := s.lock.RLock(); err != nil {
		return fmt.Errorf("lock journal: %w", err)
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var jobs []*Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return fmt.Errorf("parse journal: %w", err)
	}
	for _, job := range jobs {
		s.jobs[job.ID] = job
	}
	return nil
}

// save 先写临时文件再重命名，调用方需持有 mutex
func (s *JournalJobStore) save() error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock journal: %w", err)
	}
	defer s.lock.Unlock()

	data, err := json.MarshalIndent(sortedJobs(s.jobs), "", "  ")
	if err != nil {
		return fmt.Errorf("serialize journal: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Add 添加任务并写入文件
func (s *JournalJobStore) Add(job *Job) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.jobs[job.ID] = copyJob(job)
	return s.save()
}

// Get 根据任务ID获取任务
func (s *JournalJobStore) Get(id string) (*Job, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return copyJob(job), nil
}

// List 按创建时间倒序列出任务
func (s *JournalJobStore) List() ([]*Job, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return sortedJobs(s.jobs), nil
}

// Update 更新任务并写入文件
func (s *JournalJobStore) Update(job *Job) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.jobs[job.ID]; !ok {
		return ErrJobNotFound
	}
	s.jobs[job.ID] = copyJob(job)
	return s.save()
}
