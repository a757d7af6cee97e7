package neontext

import (
	"sort"
	"strings"
)

// DefaultColor 未知颜色名称时使用的默认颜色
const DefaultColor = "white"

// ColorRamp 四级颜色梯度，从实心核心到外层阴影
type ColorRamp struct {
	Core   string `json:"core"`
	Bright string `json:"bright"`
	Glow   string `json:"glow"`
	Shadow string `json:"shadow"`
}

// palette 颜色名称到梯度的静态映射
var palette = map[string]ColorRamp{
	"white":  {Core: "#FFFFFF", Bright: "#FFFFFF", Glow: "#FFFFFF", Shadow: "#000000"},
	"red":    {Core: "#FFAAAA", Bright: "#FF4444", Glow: "#FF0000", Shadow: "#220000"},
	"blue":   {Core: "#AACCFF", Bright: "#4477FF", Glow: "#0044FF", Shadow: "#000022"},
	"yellow": {Core: "#FFFFCC", Bright: "#FFEE44", Glow: "#FFDD00", Shadow: "#222200"},
	"green":  {Core: "#AAFFAA", Bright: "#44FF44", Glow: "#00DD00", Shadow: "#002200"},
	"purple": {Core: "#FFAAFF", Bright: "#FF44FF", Glow: "#DD00DD", Shadow: "#220022"},
	"orange": {Core: "#FFDDAA", Bright: "#FF9944", Glow: "#FF7700", Shadow: "#221100"},
}

// ResolveColor 根据颜色名称（不区分大小写）返回颜色梯度，未知名称返回白色梯度
func ResolveColor(name string) ColorRamp {
	if ramp, ok := palette[normalizeColor(name)]; ok {
		return ramp
	}
	return palette[DefaultColor]
}

// IsSupportedColor 判断颜色名称是否受支持
func IsSupportedColor(name string) bool {
	_, ok := palette[normalizeColor(name)]
	return ok
}

// SupportedColors 返回按字母排序的全部颜色名称
func SupportedColors() []string {
	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tones 按 core、bright、glow、shadow 顺序返回四个颜色值
func (r ColorRamp) Tones() [4]string {
	return [4]string{r.Core, r.Bright, r.Glow, r.Shadow}
}

func normalizeColor(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
