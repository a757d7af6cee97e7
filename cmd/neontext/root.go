package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/neontext/neontext"
	"github.com/neontext/neontext/config"
	"github.com/neontext/neontext/service"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type renderFlags struct {
	color          string
	x, y           float64
	size           int
	autoPosition   bool
	blurBackground bool
	enhanced       bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags renderFlags

	rootCmd := &cobra.Command{
		Use:           "neontext <input> <output> <text>",
		Short:         "在竖屏视频上渲染霓虹光晕文字",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFlag)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			req := neontext.Request{
				InputPath:      args[0],
				OutputPath:     args[1],
				Text:           args[2],
				Color:          flags.color,
				X:              flags.x,
				Y:              flags.y,
				FontSize:       flags.size,
				Enhanced:       flags.enhanced,
				BlurBackground: flags.blurBackground,
				AutoPosition:   flags.autoPosition,
			}
			return runRender(ctx, cfg, req)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	f := rootCmd.Flags()
	f.StringVar(&flags.color, "color", neontext.DefaultColor, "Neon color (white, red, blue, yellow, green, purple, orange)")
	f.Float64Var(&flags.x, "x", neontext.DefaultX, "Horizontal text anchor (0-1)")
	f.Float64Var(&flags.y, "y", neontext.DefaultY, "Vertical text anchor (0-1)")
	f.IntVar(&flags.size, "size", 0, "Font size, 0 picks one from the text length")
	f.BoolVar(&flags.autoPosition, "auto-position", false, "Place text in the calmer top or bottom band")
	f.BoolVar(&flags.blurBackground, "blur-background", false, "Fit the video over a blurred background")
	f.BoolVar(&flags.enhanced, "enhanced", true, "Use the five layer glow, --enhanced=false renders the four layer one")

	rootCmd.AddCommand(newServeCommand(&configFlag))
	rootCmd.AddCommand(newListCommand(&configFlag))
	rootCmd.AddCommand(newAnalyzeCommand(&configFlag))

	return rootCmd
}

func runRender(ctx context.Context, cfg *config.Config, req neontext.Request) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	bold := color.New(color.Bold)
	fmt.Printf("%s %s -> %s\n", bold.Sprint("Rendering"), req.InputPath, req.OutputPath)
	fmt.Printf("  text %q, color %s\n", req.Text, req.ColorName())

	bar := newProgressBar()
	opts := service.ProcessOptions{}
	if bar != nil {
		opts.Progress = func(p service.Progress) {
			_ = bar.Set(int(p.Percent))
			bar.Describe(fmt.Sprintf("speed %.1fx", p.Speed))
		}
	}

	result, err := a.processor.Process(ctx, req, opts)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	if result.Suggestion != nil {
		fmt.Printf("  auto position: %s zone, confidence %.2f\n", result.Suggestion.Zone, result.Suggestion.Confidence)
	}
	fmt.Printf("%s %s (font %d, %s)\n", color.GreenString("Done"), result.OutputPath, result.FontSize, result.Elapsed.Round(time.Millisecond))
	if result.URL != "" {
		fmt.Printf("  published to %s\n", color.CyanString(result.URL))
	}
	return nil
}

// newProgressBar 非终端输出时返回 nil
func newProgressBar() *progressbar.ProgressBar {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil
	}
	return progressbar.NewOptions(
		100,
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Rendering [",
			BarEnd:        "]",
		}),
	)
}
