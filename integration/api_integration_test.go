package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/neontext/neontext"
	"github.com/neontext/neontext/api"
	"github.com/neontext/neontext/queue"
	"github.com/neontext/neontext/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireTools 缺少 ffmpeg、ffprobe 或字体时跳过
func requireTools(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("Skipping integration test: %s not found", bin)
		}
	}
	font := neontext.FindFont(nil)
	if _, err := os.Stat(font); err != nil {
		t.Skip("Skipping integration test: no font found")
	}
	return font
}

// makeSample 用 lavfi 生成 2 秒横屏测试视频
func makeSample(t *testing.T, dir string) {
	t.Helper()
	cmd := exec.Command("ffmpeg", "-y", "-f", "lavfi", "-i", "testsrc=size=640x360:rate=25:duration=2",
		"-pix_fmt", "yuv420p", filepath.Join(dir, "sample.mp4"))
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

// setupIntegrationTestServer 使用真实编码器与分析器的服务
func setupIntegrationTestServer(t *testing.T, font string) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	makeSample(t, dir)

	prober := service.NewProbeCache()
	extractor := service.NewFFmpegFrameExtractor("ffmpeg", service.FrameFirst, prober)
	analyzer := service.NewPositionAnalyzer(extractor, service.AnalyzerOptions{TempDir: t.TempDir()})
	t.Cleanup(func() { analyzer.Close() })

	jobs, err := queue.NewJournalJobStore(filepath.Join(t.TempDir(), "jobs.json"))
	require.NoError(t, err)

	handler := api.NewHandler(api.HandlerOptions{
		Library: service.NewVideoLibrary(dir, prober, extractor),
		Renderer: service.NewGlowProcessor(service.NewFFmpegEncoder("ffmpeg"), analyzer, prober, nil,
			service.ProcessorOptions{FontPaths: []string{font}}),
		Advisor:   analyzer,
		Jobs:      jobs,
		JobLogDir: t.TempDir(),
	})
	return api.NewRouter(handler, api.NewMonitorAPI(jobs, dir), t.TempDir(), nil), dir
}

func post(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestAPISuite 运行完整的合成流程
func TestAPISuite(t *testing.T) {
	font := requireTools(t)
	router, dir := setupIntegrationTestServer(t, font)

	var output, jobID string

	t.Run("Analyze", func(t *testing.T) {
		w := post(router, "/api/analyze", api.AnalyzeRequest{InputVideo: "sample.mp4"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.AnalyzeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, []string{service.ZoneTop, service.ZoneBottom}, resp.Zone)
		assert.GreaterOrEqual(t, resp.Confidence, 0.0)
		assert.LessOrEqual(t, resp.Confidence, 1.0)
	})

	t.Run("CreateVideo", func(t *testing.T) {
		w := post(router, "/api/create", api.CreateRequest{
			InputVideo:     "sample.mp4",
			Text:           "NEWS",
			Color:          "blue",
			Enhanced:       true,
			BlurBackground: true,
			AutoPosition:   true,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp api.CreateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		output, jobID = resp.OutputVideo, resp.JobID
	})

	t.Run("OutputIsPortrait", func(t *testing.T) {
		if output == "" {
			t.Skip("Skipping: no output from previous test")
		}
		info, err := service.NewProbeCache().Probe(filepath.Join(dir, output))
		require.NoError(t, err)
		assert.Equal(t, neontext.CanvasWidth, info.Width)
		assert.Equal(t, neontext.CanvasHeight, info.Height)
		assert.InDelta(t, 2.0, info.Duration, 0.2)
	})

	t.Run("Gallery", func(t *testing.T) {
		if output == "" {
			t.Skip("Skipping: no output from previous test")
		}
		w := get(router, "/api/videos")
		require.Equal(t, http.StatusOK, w.Code)

		var videos []service.OutputVideo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &videos))
		require.NotEmpty(t, videos)
		assert.Equal(t, output, videos[0].Filename)
		assert.Equal(t, "blue", videos[0].Color)

		w = get(router, "/api/videos/"+output+"/thumbnail")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Job", func(t *testing.T) {
		if jobID == "" {
			t.Skip("Skipping: no job from previous test")
		}
		w := get(router, "/api/jobs/"+jobID)
		require.Equal(t, http.StatusOK, w.Code)

		var job queue.Job
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
		assert.Equal(t, queue.StatusCompleted, job.Status)
		assert.Equal(t, 1.0, job.Progress)
	})

	t.Run("RenderFailureReturns500", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.mp4"), []byte("not a video"), 0644))
		w := post(router, "/api/create", api.CreateRequest{InputVideo: "broken.mp4", Text: "NEWS"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Video creation failed", resp.Error)
		assert.NotEmpty(t, resp.Details)
	})
}
