package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/neontext/neontext/config"
	"github.com/neontext/neontext/service"
	"github.com/spf13/cobra"
)

func newListCommand(configFlag *string) *cobra.Command {
	var inputs bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "列出工作目录中的成品视频",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			lib := service.NewVideoLibrary(cfg.WorkDir, service.NewProbeCache(), nil)

			if inputs {
				list, err := lib.ListInputs()
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(list))
				for _, in := range list {
					rows = append(rows, []string{in.Filename, in.Name})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"File", "Name"}, rows, nil))
				return nil
			}

			videos, err := lib.ListOutputs()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"File", "Color", "Effect", "Size", "Duration", "Created"},
				videoRows(videos),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&inputs, "inputs", false, "List input videos instead")
	return cmd
}

func videoRows(videos []service.OutputVideo) [][]string {
	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		duration := "-"
		if v.Duration > 0 {
			duration = fmt.Sprintf("%.1fs", v.Duration)
		}
		rows = append(rows, []string{
			v.Filename,
			v.Color,
			v.Effect,
			v.SizeHuman,
			duration,
			humanize.Time(v.Created),
		})
	}
	return rows
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
