package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neontext/neontext"
	"github.com/neontext/neontext/queue"
	"github.com/neontext/neontext/service"
	"github.com/neontext/neontext/utils"
)

// Renderer 执行一次文字合成
type Renderer interface {
	Process(ctx context.Context, req neontext.Request, opts service.ProcessOptions) (*service.ProcessResult, error)
}

// Handler 画廊与合成接口
type Handler struct {
	library       *service.VideoLibrary
	renderer      Renderer
	advisor       service.PositionAdvisor
	jobs          queue.JobStore
	jobLogDir     string
	minConfidence float64
	now           func() time.Time
}

// HandlerOptions 接口依赖
type HandlerOptions struct {
	Library       *service.VideoLibrary
	Renderer      Renderer
	Advisor       service.PositionAdvisor
	Jobs          queue.JobStore
	JobLogDir     string
	MinConfidence float64
}

// NewHandler 创建接口处理器
func NewHandler(opts HandlerOptions) *Handler {
	if opts.Jobs == nil {
		opts.Jobs = queue.NewInMemoryJobStore()
	}
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = service.DefaultMinConfidence
	}
	return &Handler{
		library:       opts.Library,
		renderer:      opts.Renderer,
		advisor:       opts.Advisor,
		jobs:          opts.Jobs,
		jobLogDir:     opts.JobLogDir,
		minConfidence: opts.MinConfidence,
		now:           time.Now,
	}
}

// ListVideos 列出画廊视频
// @Summary 列出画廊视频
// @Description 列出工作目录中的 mp4 文件，并从文件名解析颜色与效果，按时间倒序
// @Tags gallery
// @Produce json
// @Success 200 {array} service.OutputVideo
// @Failure 500 {object} ErrorResponse
// @Router /videos [get]
func (h *Handler) ListVideos(c *gin.Context) {
	videos, err := h.library.ListOutputs()
	if err != nil {
		utils.Error("读取视频列表失败", map[string]string{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read video files"})
		return
	}
	c.JSON(http.StatusOK, videos)
}

// ListInputs 列出可用输入视频
// @Summary 列出可用输入视频
// @Tags gallery
// @Produce json
// @Success 200 {array} service.InputVideo
// @Failure 500 {object} ErrorResponse
// @Router /inputs [get]
func (h *Handler) ListInputs(c *gin.Context) {
	inputs, err := h.library.ListInputs()
	if err != nil {
		utils.Error("读取输入视频失败", map[string]string{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read input files"})
		return
	}
	c.JSON(http.StatusOK, inputs)
}

// CreateVideo 创建霓虹文字视频
// @Summary 创建霓虹文字视频
// @Description 同步渲染，完成后返回输出文件名
// @Tags create
// @Accept json
// @Produce json
// @Param request body CreateRequest true "合成参数"
// @Success 200 {object} CreateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /create [post]
func (h *Handler) CreateVideo(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format", Details: err.Error()})
		return
	}
	if body.InputVideo == "" || body.Text == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields: inputVideo, text"})
		return
	}

	req := body.toRequest()
	input, err := h.library.Resolve(c.Request.Context(), body.InputVideo)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidName) {
			status = http.StatusBadRequest
		}
		c.JSON(status, ErrorResponse{Error: "Invalid input video", Details: err.Error()})
		return
	}
	req.InputPath = input

	outputName := neontext.OutputName(req.Color, h.now())
	req.OutputPath = filepath.Join(h.library.Dir(), outputName)

	job := queue.NewJob(req)
	if err := h.jobs.Add(job); err != nil {
		utils.Warn("记录任务失败", map[string]string{"jobId": job.ID, "error": err.Error()})
	}

	var jobLogger *service.JobLogger
	if h.jobLogDir != "" {
		jobLogger, _ = service.NewJobLogger(h.jobLogDir, job.ID)
	}
	jobLogger.Log("INFO", "收到合成请求", map[string]interface{}{
		"input": body.InputVideo,
		"text":  req.Text,
		"color": req.ColorName(),
	})

	utils.Info("收到合成请求", map[string]string{
		"jobId": job.ID,
		"text":  req.Text,
		"color": req.ColorName(),
	})

	result, err := h.renderer.Process(c.Request.Context(), req, service.ProcessOptions{
		Logger: jobLogger,
		Progress: h.trackProgress(job),
	})
	if err != nil {
		job.Fail(err)
		h.updateJob(job)

		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Video creation failed", Details: errorDetails(err)})
		return
	}

	job.Complete(outputName)
	job.URL = result.URL
	if result.Suggestion != nil {
		job.Suggestion = result.Suggestion
	}
	h.updateJob(job)

	c.JSON(http.StatusOK, CreateResponse{
		Success:     true,
		OutputVideo: outputName,
		Message:     "Video created successfully: " + outputName,
		JobID:       job.ID,
		URL:         result.URL,
		FontSize:    result.FontSize,
		X:           result.X,
		Y:           result.Y,
	})
}

// progressStep 任务进度写入存储的最小间隔（百分比）
const progressStep = 5.0

// trackProgress 进度每增加 progressStep 写回一次存储
func (h *Handler) trackProgress(job *queue.Job) service.ProgressCallback {
	last := 0.0
	return func(p service.Progress) {
		if p.Percent-last < progressStep && p.Percent < 100 {
			return
		}
		last = p.Percent
		job.Progress = p.Percent / 100
		h.updateJob(job)
	}
}

func (h *Handler) updateJob(job *queue.Job) {
	if err := h.jobs.Update(job); err != nil {
		utils.Warn("更新任务失败", map[string]string{"jobId": job.ID, "error": err.Error()})
	}
}

// toRequest 补全默认值：颜色 white，位置 (0.5, 0.7)
func (b CreateRequest) toRequest() neontext.Request {
	req := neontext.Request{
		Text:           b.Text,
		Color:          b.Color,
		X:              neontext.DefaultX,
		Y:              neontext.DefaultY,
		FontSize:       b.FontSize,
		Enhanced:       b.Enhanced,
		BlurBackground: b.BlurBackground,
		AutoPosition:   b.AutoPosition,
	}
	if strings.TrimSpace(req.Color) == "" {
		req.Color = neontext.DefaultColor
	}
	if b.X != nil {
		req.X = *b.X
	}
	if b.Y != nil {
		req.Y = *b.Y
	}
	return req
}

func isValidationError(err error) bool {
	return errors.Is(err, neontext.ErrEmptyText) ||
		errors.Is(err, neontext.ErrMissingInput) ||
		errors.Is(err, neontext.ErrAnchorRange)
}

// errorDetails 渲染失败时附带 ffmpeg 输出的最后一行
func errorDetails(err error) string {
	var renderErr *service.RenderError
	if errors.As(err, &renderErr) {
		lines := strings.Split(strings.TrimSpace(renderErr.Stderr), "\n")
		if last := strings.TrimSpace(lines[len(lines)-1]); last != "" {
			return err.Error() + ": " + last
		}
	}
	return err.Error()
}

// Analyze 分析推荐的文字位置
// @Summary 分析推荐的文字位置
// @Description 抽取一帧比较上下条带的边缘密度
// @Tags create
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "输入视频"
// @Success 200 {object} AnalyzeResponse
// @Failure 400 {object} ErrorResponse
// @Router /analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	var body AnalyzeRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.InputVideo == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required field: inputVideo"})
		return
	}

	// 输入不可用时同样返回默认建议
	suggestion := service.DefaultSuggestion()
	if h.advisor != nil {
		if path, err := h.library.Path(body.InputVideo); err == nil {
			suggestion = h.advisor.SuggestPosition(c.Request.Context(), path)
		}
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		SuggestedX: suggestion.SuggestedX,
		SuggestedY: suggestion.SuggestedY,
		Zone:       suggestion.Zone,
		Confidence: suggestion.Confidence,
		Adopt:      service.Accept(suggestion, h.minConfidence),
	})
}

// Colors 列出支持的颜色
// @Summary 列出支持的颜色
// @Tags create
// @Produce json
// @Success 200 {array} ColorResponse
// @Router /colors [get]
func (h *Handler) Colors(c *gin.Context) {
	names := neontext.SupportedColors()
	colors := make([]ColorResponse, 0, len(names))
	for _, name := range names {
		ramp := neontext.ResolveColor(name)
		colors = append(colors, ColorResponse{
			Name:   name,
			Core:   ramp.Core,
			Bright: ramp.Bright,
			Glow:   ramp.Glow,
			Shadow: ramp.Shadow,
		})
	}
	c.JSON(http.StatusOK, colors)
}

// ListJobs 列出合成任务记录
// @Summary 列出合成任务记录
// @Tags jobs
// @Produce json
// @Success 200 {array} queue.Job
// @Failure 500 {object} ErrorResponse
// @Router /jobs [get]
func (h *Handler) ListJobs(c *gin.Context) {
	jobs, err := h.jobs.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list jobs", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetJob 获取任务详情
// @Summary 获取任务详情
// @Tags jobs
// @Produce json
// @Param id path string true "任务ID"
// @Success 200 {object} queue.Job
// @Failure 404 {object} ErrorResponse
// @Router /jobs/{id} [get]
func (h *Handler) GetJob(c *gin.Context) {
	job, err := h.jobs.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// Thumbnail 返回视频缩略图
// @Summary 返回视频缩略图
// @Tags gallery
// @Produce jpeg
// @Param name path string true "视频文件名"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /videos/{name}/thumbnail [get]
func (h *Handler) Thumbnail(c *gin.Context) {
	thumb, err := h.library.Thumbnail(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidName) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Video not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create thumbnail", Details: err.Error()})
		return
	}
	c.File(thumb)
}

// VideoInfo 返回视频探测信息
// @Summary 返回视频探测信息
// @Tags gallery
// @Produce json
// @Param name path string true "视频文件名"
// @Success 200 {object} service.VideoInfo
// @Failure 404 {object} ErrorResponse
// @Router /videos/{name}/info [get]
func (h *Handler) VideoInfo(c *gin.Context) {
	info, err := h.library.Info(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Video not found", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

// Health 健康检查
// @Summary 健康检查
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "OK", Timestamp: h.now().UTC()})
}

// ServeVideo 播放工作目录中的视频
func (h *Handler) ServeVideo(c *gin.Context) {
	name := c.Param("name")
	p, err := h.library.Path(name)
	if err != nil || !service.IsVideoName(name) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Video not found"})
		return
	}
	if info, err := os.Stat(p); err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Video not found"})
		return
	}
	if strings.HasSuffix(p, ".mp4") {
		c.Header("Content-Type", "video/mp4")
	}
	c.File(p)
}
