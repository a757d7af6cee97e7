package neontext

import "strings"

// Stage 滤镜图中的一个阶段，消费 Inputs 标签并输出到 Output 标签
type Stage struct {
	Inputs []string `json:"inputs"`
	Filter string   `json:"filter"`
	Output string   `json:"output"`
}

// String 生成 [in]filter[out] 形式的滤镜描述
func (s Stage) String() string {
	var b strings.Builder
	for _, in := range s.Inputs {
		b.WriteString("[" + in + "]")
	}
	b.WriteString(s.Filter)
	if s.Output != "" {
		b.WriteString("[" + s.Output + "]")
	}
	return b.String()
}

// Pipeline 有序的滤镜阶段列表
type Pipeline struct {
	Stages    []Stage `json:"stages"`
	PrepCount int     `json:"prepCount"` // 画布准备阶段数量
}

// Append 追加一个阶段
func (p *Pipeline) Append(stage Stage) {
	p.Stages = append(p.Stages, stage)
}

// Prep 返回画布准备阶段
func (p *Pipeline) Prep() []Stage {
	return p.Stages[:p.PrepCount]
}

// TextStages 返回画布准备之后的全部文字阶段
func (p *Pipeline) TextStages() []Stage {
	return p.Stages[p.PrepCount:]
}

// OutputLabel 返回管道最终输出标签
func (p *Pipeline) OutputLabel() string {
	if len(p.Stages) == 0 {
		return ""
	}
	return p.Stages[len(p.Stages)-1].Output
}

// FilterComplex 生成 ffmpeg -filter_complex 参数
func (p *Pipeline) FilterComplex() string {
	parts := make([]string, len(p.Stages))
	for i, stage := range p.Stages {
		parts[i] = stage.String()
	}
	return strings.Join(parts, ";")
}
