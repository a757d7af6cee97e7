package api

import "time"

// CreateRequest 创建霓虹文字视频请求
type CreateRequest struct {
	InputVideo     string   `json:"inputVideo" example:"beach.mp4"`
	Text           string   `json:"text" example:"NEWS"`
	Color          string   `json:"color" example:"blue"`
	X              *float64 `json:"x" example:"0.5"`
	Y              *float64 `json:"y" example:"0.7"`
	FontSize       int      `json:"fontSize" example:"0"`
	Enhanced       bool     `json:"enhanced"`
	AutoPosition   bool     `json:"autoPosition"`
	BlurBackground bool     `json:"blurBackground"`
}

// CreateResponse 创建成功响应
type CreateResponse struct {
	Success     bool    `json:"success"`
	OutputVideo string  `json:"outputVideo"`
	Message     string  `json:"message"`
	JobID       string  `json:"jobId"`
	URL         string  `json:"url,omitempty"`
	FontSize    int     `json:"fontSize"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

// AnalyzeRequest 位置分析请求
type AnalyzeRequest struct {
	InputVideo string `json:"inputVideo" example:"beach.mp4"`
}

// AnalyzeResponse 位置分析响应
type AnalyzeResponse struct {
	SuggestedX float64 `json:"suggestedX"`
	SuggestedY float64 `json:"suggestedY"`
	Zone       string  `json:"zone"`
	Confidence float64 `json:"confidence"`
	Adopt      bool    `json:"adopt"` // 置信度是否超过阈值
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ColorResponse 颜色及其色阶
type ColorResponse struct {
	Name   string `json:"name"`
	Core   string `json:"core"`
	Bright string `json:"bright"`
	Glow   string `json:"glow"`
	Shadow string `json:"shadow"`
}
