//go:build gocv

package service

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// CannyDetector 基于 OpenCV 的边缘检测
type CannyDetector struct {
	Low  float32
	High float32
}

// NewEdgeDetector 创建 OpenCV 边缘检测器
func NewEdgeDetector(low, high float64) (EdgeDetector, error) {
	return &CannyDetector{Low: float32(low), High: float32(high)}, nil
}

// Detect 读取图片、转灰度并执行 Canny
func (d *CannyDetector) Detect(imagePath string) (*EdgeMap, error) {
	img := gocv.IMRead(imagePath, gocv.IMReadColor)
	defer img.Close()
	if img.Empty() {
		return nil, errors.Errorf("cannot read frame %s", imagePath)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, d.Low, d.High)

	m := NewEdgeMap(edges.Cols(), edges.Rows())
	for y := 0; y < edges.Rows(); y++ {
		for x := 0; x < edges.Cols(); x++ {
			if edges.GetUCharAt(y, x) != 0 {
				m.Set(x, y)
			}
		}
	}
	return m, nil
}

// Close 无需释放资源
func (d *CannyDetector) Close() error {
	return nil
}
