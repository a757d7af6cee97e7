package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neontext/neontext/queue"
	"github.com/neontext/neontext/utils"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// MonitorAPI 系统监控接口
type MonitorAPI struct {
	jobs    queue.JobStore
	diskDir string
}

// NewMonitorAPI 创建监控接口，diskDir 为统计磁盘用量的目录
func NewMonitorAPI(jobs queue.JobStore, diskDir string) *MonitorAPI {
	if diskDir == "" {
		diskDir = "/"
	}
	return &MonitorAPI{jobs: jobs, diskDir: diskDir}
}

// SystemStats 系统统计信息
type SystemStats struct {
	Timestamp   time.Time `json:"timestamp"`
	CPUUsage    float64   `json:"cpuUsage"`
	MemoryUsage float64   `json:"memoryUsage"`
	MemoryTotal uint64    `json:"memoryTotal"`
	MemoryUsed  uint64    `json:"memoryUsed"`
	DiskUsage   float64   `json:"diskUsage"`
	DiskTotal   uint64    `json:"diskTotal"`
	DiskUsed    uint64    `json:"diskUsed"`
	Goroutines  int       `json:"goroutines"`
	Jobs        JobStats  `json:"jobs"`
}

// JobStats 任务统计信息
type JobStats struct {
	Total      int `json:"total"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// CountJobs 按状态统计任务
func CountJobs(jobs []*queue.Job) JobStats {
	stats := JobStats{Total: len(jobs)}
	for _, job := range jobs {
		switch job.Status {
		case queue.StatusProcessing:
			stats.Processing++
		case queue.StatusCompleted:
			stats.Completed++
		case queue.StatusFailed:
			stats.Failed++
		}
	}
	return stats
}

// GetSystemStats 获取系统统计信息
// @Summary 获取系统统计信息
// @Tags monitor
// @Produce json
// @Success 200 {object} SystemStats
// @Router /monitor/stats [get]
func (m *MonitorAPI) GetSystemStats(c *gin.Context) {
	utils.Debug("收到系统统计信息请求", map[string]string{"clientIP": c.ClientIP()})

	cpuPercent, err := cpu.Percent(200*time.Millisecond, false)
	if err != nil || len(cpuPercent) == 0 {
		utils.Error("获取CPU使用率失败", map[string]string{"error": errorText(err)})
		cpuPercent = []float64{0}
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		utils.Error("获取内存信息失败", map[string]string{"error": err.Error()})
		memInfo = &mem.VirtualMemoryStat{}
	}

	diskInfo, err := disk.Usage(m.diskDir)
	if err != nil {
		utils.Error("获取磁盘信息失败", map[string]string{"error": err.Error()})
		diskInfo = &disk.UsageStat{}
	}

	jobs, err := m.jobs.List()
	if err != nil {
		utils.Error("获取任务列表失败", map[string]string{"error": err.Error()})
		jobs = nil
	}

	c.JSON(http.StatusOK, &SystemStats{
		Timestamp:   time.Now(),
		CPUUsage:    cpuPercent[0],
		MemoryUsage: memInfo.UsedPercent,
		MemoryTotal: memInfo.Total,
		MemoryUsed:  memInfo.Used,
		DiskUsage:   diskInfo.UsedPercent,
		DiskTotal:   diskInfo.Total,
		DiskUsed:    diskInfo.Used,
		Goroutines:  runtime.NumGoroutine(),
		Jobs:        CountJobs(jobs),
	})
}

func errorText(err error) string {
	if err == nil {
		return "no data"
	}
	return err.Error()
}
