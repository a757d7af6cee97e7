// Package queue 记录文字合成任务的历史与状态
package queue

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// 任务状态
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ErrJobNotFound 任务不存在
var ErrJobNotFound = errors.New("job not found")

// Job 一次合成任务的记录
type Job struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	Request    interface{} `json:"request"`
	Output     string      `json:"output,omitempty"`
	URL        string      `json:"url,omitempty"`
	Error      string      `json:"error,omitempty"`
	Progress   float64     `json:"progress"`
	Suggestion interface{} `json:"suggestion,omitempty"`
	Created    time.Time   `json:"created"`
	Finished   time.Time   `json:"finished,omitempty"`
}

// NewJob 创建处理中的任务
func NewJob(request interface{}) *Job {
	return &Job{
		ID:      uuid.New().String(),
		Status:  StatusProcessing,
		Request: request,
		Created: time.Now(),
	}
}

// Complete 标记任务完成
func (j *Job) Complete(output string) {
	j.Status = StatusCompleted
	j.Output = output
	j.Progress = 1.0
	j.Finished = time.Now()
}

// Fail 标记任务失败
func (j *Job) Fail(err error) {
	j.Status = StatusFailed
	if err != nil {
		j.Error = err.Error()
	}
	j.Finished = time.Now()
}

// JobStore 任务记录存储接口
type JobStore interface {
	Add(job *Job) error
	Get(id string) (*Job, error)
	List() ([]*Job, error)
	Update(job *Job) error
}

// InMemoryJobStore 内存任务存储
type InMemoryJobStore struct {
	jobs  map[string]*Job
	mutex sync.RWMutex
}

// NewInMemoryJobStore 创建新的内存任务存储
func NewInMemoryJobStore() *InMemoryJobStore {
	return &InMemoryJobStore{jobs: make(map[string]*Job)}
}

// Add 添加任务
func (s *InMemoryJobStore) Add(job *Job) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.jobs[job.ID] = copyJob(job)
	return nil
}

// Get 根据任务ID获取任务
func (s *InMemoryJobStore) Get(id string) (*Job, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return copyJob(job), nil
}

// List 按创建时间倒序列出任务
func (s *InMemoryJobStore) List() ([]*Job, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return sortedJobs(s.jobs), nil
}

// Update 更新任务
func (s *InMemoryJobStore) Update(job *Job) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.jobs[job.ID]; !ok {
		return ErrJobNotFound
	}
	s.jobs[job.ID] = copyJob(job)
	return nil
}

func copyJob(job *Job) *Job {
	c := *job
	return &c
}

func sortedJobs(jobs map[string]*Job) []*Job {
	list := make([]*Job, 0, len(jobs))
	for _, job := range jobs {
		list = append(list, copyJob(job))
	}
	sort.Slice(list, func(i, k int) bool {
		return list[i].Created.After(list[k].Created)
	})
	return list
}
