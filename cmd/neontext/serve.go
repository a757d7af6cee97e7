package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neontext/neontext/api"
	"github.com/neontext/neontext/config"
	"github.com/neontext/neontext/queue"
	"github.com/neontext/neontext/utils"
	"github.com/spf13/cobra"

	_ "github.com/neontext/neontext/docs"
)

func newServeCommand(configFlag *string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动画廊与合成 HTTP 服务",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides server.port)")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	if err := utils.InitGlobalLogger(cfg.Log.Dir, cfg.Log.Level); err != nil {
		return err
	}
	logger := utils.GetGlobalLogger()
	defer logger.Close()

	gin.SetMode(cfg.Server.Mode)

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	jobs, err := queue.NewJournalJobStore(cfg.Jobs.Journal)
	if err != nil {
		return err
	}

	handler := api.NewHandler(api.HandlerOptions{
		Library:       a.library,
		Renderer:      a.processor,
		Advisor:       a.analyzer,
		Jobs:          jobs,
		JobLogDir:     filepath.Join(cfg.Log.Dir, "jobs"),
		MinConfidence: cfg.Analysis.MinConfidence,
	})
	router := api.NewRouter(handler, api.NewMonitorAPI(jobs, cfg.WorkDir), cfg.Public, logger.Logrus())

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Info("服务启动", map[string]string{
			"port":    cfg.Server.Port,
			"workDir": cfg.WorkDir,
			"journal": jobs.Path(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	utils.Info("服务关闭中", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
