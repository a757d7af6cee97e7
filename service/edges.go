package service

// EdgeMap 二值边缘图，非零表示边缘像素
type EdgeMap struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewEdgeMap 创建空边缘图
func NewEdgeMap(width, height int) *EdgeMap {
	return &EdgeMap{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// Set 标记边缘像素
func (m *EdgeMap) Set(x, y int) {
	m.Pix[y*m.Width+x] = 255
}

// At 判断是否为边缘像素
func (m *EdgeMap) At(x, y int) bool {
	return m.Pix[y*m.Width+x] != 0
}

// CountRows 统计 [y0, y1) 行内的边缘像素数
func (m *EdgeMap) CountRows(y0, y1 int) int {
	if y0 < 0 {
		y0 = 0
	}
	if y1 > m.Height {
		y1 = m.Height
	}
	if y0 > y1 {
		return 0
	}
	count := 0
	for _, v := range m.Pix[y0*m.Width : y1*m.Width] {
		if v != 0 {
			count++
		}
	}
	return count
}

// BandCounts 统计顶部和底部 fraction 高度条带内的边缘像素数
func (m *EdgeMap) BandCounts(fraction float64) (top, bottom int) {
	band := int(float64(m.Height) * fraction)
	return m.CountRows(0, band), m.CountRows(m.Height-band, m.Height)
}

// EdgeDetector 读取图片并生成边缘图
type EdgeDetector interface {
	Detect(imagePath string) (*EdgeMap, error)
	Close() error
}
