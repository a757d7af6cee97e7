// neontext 在竖屏视频上渲染霓虹光晕文字
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
)

// @title neontext API
// @version 1.0
// @description 竖屏视频霓虹文字合成与画廊服务
// @host localhost:3000
// @BasePath /api

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		}
		os.Exit(1)
	}
}
