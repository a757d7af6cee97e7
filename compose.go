package neontext

import "fmt"

const (
	// CanvasWidth 输出画布宽度（竖屏）
	CanvasWidth = 1080
	// CanvasHeight 输出画布高度
	CanvasHeight = 1920

	// BaseLabel 画布准备完成后的标签
	BaseLabel = "base"
	// FinalLabel 管道最终输出标签
	FinalLabel = "final"
)

// tone 选择颜色梯度中的某一级
type tone int

const (
	toneCore tone = iota
	toneBright
	toneGlow
)

func (t tone) pick(r ColorRamp) string {
	switch t {
	case toneBright:
		return r.Bright
	case toneGlow:
		return r.Glow
	default:
		return r.Core
	}
}

// glowLayer 光晕层计划：由外到内描边变细、透明度升高
type glowLayer struct {
	tone          tone
	opacity       float64
	stroke        int
	strokeOpacity float64
}

var enhancedPlan = []glowLayer{
	{tone: toneGlow, opacity: 0.3, stroke: 20, strokeOpacity: 0.2},
	{tone: toneGlow, opacity: 0.5, stroke: 15, strokeOpacity: 0.3},
	{tone: toneBright, opacity: 0.7, stroke: 10, strokeOpacity: 0.5},
	{tone: toneBright, opacity: 0.85, stroke: 6, strokeOpacity: 0.7},
	{tone: toneCore, opacity: 0.95, stroke: 3, strokeOpacity: 0.9},
}

var standardPlan = []glowLayer{
	{tone: toneGlow, opacity: 0.4, stroke: 15, strokeOpacity: 0.25},
	{tone: toneGlow, opacity: 0.6, stroke: 10, strokeOpacity: 0.4},
	{tone: toneBright, opacity: 0.8, stroke: 6, strokeOpacity: 0.6},
	{tone: toneBright, opacity: 0.9, stroke: 3, strokeOpacity: 0.8},
}

// GlowLayerCount 返回指定模式下光晕层数量（不含收尾层）
func GlowLayerCount(enhanced bool) int {
	if enhanced {
		return len(enhancedPlan)
	}
	return len(standardPlan)
}

// Compose 组装完整的文字光晕滤镜管道
func Compose(req Request, ramp ColorRamp, fontPath string, fontSize int) *Pipeline {
	p := &Pipeline{}
	for _, stage := range canvasStages(req.BlurBackground, req.Enhanced) {
		p.Append(stage)
	}
	p.PrepCount = len(p.Stages)

	x, y := PositionExpr(req.X, req.Y)
	layer := func(color string, opacity float64, stroke int, strokeColor string) string {
		return BuildLayer(TextLayer{
			Text:        req.Text,
			FontPath:    fontPath,
			FontSize:    fontSize,
			Color:       color,
			Opacity:     opacity,
			X:           x,
			Y:           y,
			StrokeWidth: stroke,
			StrokeColor: strokeColor,
		})
	}

	plan := standardPlan
	if req.Enhanced {
		plan = enhancedPlan
	}

	current := BaseLabel
	for i, gl := range plan {
		color := gl.tone.pick(ramp)
		next := fmt.Sprintf("glow%d", i+1)
		p.Append(Stage{
			Inputs: []string{current},
			Filter: layer(color, gl.opacity, gl.stroke, WithAlpha(color, gl.strokeOpacity)),
			Output: next,
		})
		current = next
	}

	finishOpacity := 0.5
	if req.Enhanced {
		finishOpacity = 0.8
	}
	p.Append(Stage{
		Inputs: []string{current},
		Filter: layer(ramp.Core, 1.0, 1, WithAlpha(ramp.Bright, finishOpacity)),
		Output: FinalLabel,
	})

	return p
}

// canvasStages 生成缩放裁剪到 1080x1920 的准备阶段
func canvasStages(blurBackground, enhanced bool) []Stage {
	fill := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
		CanvasWidth, CanvasHeight, CanvasWidth, CanvasHeight)

	if !blurBackground {
		return []Stage{{Inputs: []string{"0:v"}, Filter: fill, Output: BaseLabel}}
	}

	blur := "boxblur=20"
	if enhanced {
		blur = "gblur=sigma=15"
	}
	return []Stage{
		{Inputs: []string{"0:v"}, Filter: fill + "," + blur, Output: "bg"},
		{
			Inputs: []string{"0:v"},
			Filter: fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", CanvasWidth, CanvasHeight),
			Output: "main",
		},
		{Inputs: []string{"bg", "main"}, Filter: "overlay=(W-w)/2:(H-h)/2", Output: BaseLabel},
	}
}
