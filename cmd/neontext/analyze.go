package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/neontext/neontext/config"
	"github.com/neontext/neontext/service"
	"github.com/spf13/cobra"
)

func newAnalyzeCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <video>",
		Short: "分析推荐的文字位置",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			s := a.analyzer.SuggestPosition(cmd.Context(), args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "zone        %s\n", s.Zone)
			fmt.Fprintf(out, "position    x=%.2f y=%.2f\n", s.SuggestedX, s.SuggestedY)
			fmt.Fprintf(out, "confidence  %.3f\n", s.Confidence)
			if service.Accept(s, cfg.Analysis.MinConfidence) {
				fmt.Fprintln(out, color.GreenString("auto position would be adopted"))
			} else {
				fmt.Fprintln(out, color.YellowString("confidence too low, manual position kept"))
			}
			return nil
		},
	}
}
