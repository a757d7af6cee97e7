package neontext

import (
	"fmt"
	"strconv"
	"strings"
)

// TextLayer 单个drawtext文字层参数
type TextLayer struct {
	Text        string
	FontPath    string
	FontSize    int
	Color       string
	Opacity     float64
	X           string // 水平位置表达式，可引用 w、text_w
	Y           string // 垂直位置表达式，可引用 h、text_h
	StrokeWidth int
	StrokeColor string // 已包含透明度，例如 #FF0000@0.2
}

// BuildLayer 生成一个drawtext滤镜描述
func BuildLayer(l TextLayer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "drawtext=text=%s:fontfile=%s:fontsize=%d:fontcolor=%s:x=%s:y=%s",
		quoteGraphValue(escapeOptionValue(escapeExpansion(expandLineBreaks(l.Text)))),
		optionValue(l.FontPath),
		l.FontSize,
		WithAlpha(l.Color, l.Opacity),
		l.X,
		l.Y,
	)
	if l.StrokeWidth > 0 {
		fmt.Fprintf(&b, ":borderw=%d:bordercolor=%s", l.StrokeWidth, l.StrokeColor)
	}
	return b.String()
}

// WithAlpha 生成 ffmpeg 颜色加透明度写法，例如 #FF0000@0.3
func WithAlpha(color string, opacity float64) string {
	return color + "@" + FormatFraction(opacity)
}

// FormatFraction 以最短形式格式化小数，1.0 输出为 1
func FormatFraction(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PositionExpr 根据归一化锚点生成居中于锚点的位置表达式
func PositionExpr(x, y float64) (string, string) {
	return "w*" + FormatFraction(x) + "-text_w/2", "h*" + FormatFraction(y) + "-text_h/2"
}

// expandLineBreaks 将手动换行标记 \n 转为真实换行
func expandLineBreaks(text string) string {
	return strings.ReplaceAll(text, `\n`, "\n")
}

// escapeExpansion drawtext 会展开 % 序列，文字中的 % 需写成 \%
func escapeExpansion(text string) string {
	return strings.ReplaceAll(text, "%", `\%`)
}

// escapeOptionValue 转义滤镜选项层的特殊字符
func escapeOptionValue(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`)
	return r.Replace(s)
}

// optionValue 仅在含特殊字符时才转义并加引号
func optionValue(s string) string {
	escaped := escapeOptionValue(s)
	if escaped == s {
		return s
	}
	return quoteGraphValue(escaped)
}

// quoteGraphValue 为滤镜图层加单引号，内部单引号写成 '\''
func quoteGraphValue(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
