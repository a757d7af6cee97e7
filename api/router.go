package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter 注册全部路由
func NewRouter(h *Handler, monitor *MonitorAPI, publicDir string, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if logger != nil {
		router.Use(Logger(logger))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/videos/:name", h.ServeVideo)

	v := router.Group("/api")
	{
		v.GET("/health", h.Health)
		v.GET("/colors", h.Colors)
		v.GET("/inputs", h.ListInputs)
		v.GET("/videos", h.ListVideos)
		v.GET("/videos/:name/thumbnail", h.Thumbnail)
		v.GET("/videos/:name/info", h.VideoInfo)
		v.POST("/create", h.CreateVideo)
		v.POST("/analyze", h.Analyze)
		v.GET("/jobs", h.ListJobs)
		v.GET("/jobs/:id", h.GetJob)
		if monitor != nil {
			v.GET("/monitor/stats", monitor.GetSystemStats)
		}
	}

	router.NoRoute(publicFiles(publicDir))
	return router
}

// publicFiles 从 publicDir 提供画廊页面，"/" 对应 index.html
func publicFiles(publicDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
			return
		}

		rel := filepath.Clean("/" + c.Request.URL.Path)
		if rel == "/" {
			rel = "/index.html"
		}
		p := filepath.Join(publicDir, rel)
		if info, err := os.Stat(p); err != nil || info.IsDir() {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
			return
		}
		c.File(p)
	}
}
