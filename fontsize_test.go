package neontext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateFontSize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		explicit int
		want     int
	}{
		{name: "short text keeps base size", text: "GOAL!", want: 80},
		{name: "19 chars still fits", text: strings.Repeat("A", 19), want: 80},
		{name: "20 chars shrinks", text: strings.Repeat("A", 20), want: 71},
		{name: "40 chars", text: strings.Repeat("B", 40), want: 35},
		{name: "200 chars clamps to floor", text: strings.Repeat("C", 200), want: 30},
		{name: "explicit size wins", text: strings.Repeat("D", 200), explicit: 120, want: 120},
		{name: "multibyte counted as runes", text: "霓虹灯文字效果", want: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateFontSize(tt.text, tt.explicit))
		})
	}
}

func TestEstimateFontSize_Bounds(t *testing.T) {
	for n := 1; n <= 300; n++ {
		size := EstimateFontSize(strings.Repeat("x", n), 0)
		assert.GreaterOrEqual(t, size, MinFontSize)
		assert.LessOrEqual(t, size, BaseFontSize)
	}
}
