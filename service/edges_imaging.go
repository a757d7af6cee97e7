//go:build !gocv

package service

import (
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ImagingEdgeDetector 纯 Go 实现的边缘检测
type ImagingEdgeDetector struct {
	Low  float64
	High float64
}

// NewEdgeDetector 创建默认构建下的边缘检测器
func NewEdgeDetector(low, high float64) (EdgeDetector, error) {
	return &ImagingEdgeDetector{Low: low, High: high}, nil
}

// Detect 读取图片并检测边缘
func (d *ImagingEdgeDetector) Detect(imagePath string) (*EdgeMap, error) {
	img, err := imaging.Open(imagePath)
	if err != nil {
		return nil, errors.Wrap(err, "open frame")
	}
	return Canny(toGray(img), d.Low, d.High), nil
}

// Close 无需释放资源
func (d *ImagingEdgeDetector) Close() error {
	return nil
}
