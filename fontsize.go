package neontext

import (
	"math"
	"unicode/utf8"
)

const (
	// BaseFontSize 默认字号
	BaseFontSize = 80
	// MinFontSize 自动缩放的最小可读字号
	MinFontSize = 30
	// UsableWidth 1080px 画布留边后的可用宽度
	UsableWidth = 950

	glyphWidthRatio = 0.6
	safetyMargin    = 0.9
)

// EstimateFontSize 根据文字长度估算字号，explicit 大于 0 时直接使用
func EstimateFontSize(text string, explicit int) int {
	if explicit > 0 {
		return explicit
	}

	length := utf8.RuneCountInString(text)
	estimatedWidth := float64(length) * BaseFontSize * glyphWidthRatio
	if estimatedWidth <= UsableWidth {
		return BaseFontSize
	}

	size := int(math.Floor(UsableWidth * safetyMargin / (float64(length) * glyphWidthRatio)))
	if size < MinFontSize {
		size = MinFontSize
	}
	return size
}
