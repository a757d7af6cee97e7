package service

import (
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// Canny 对灰度图做 Sobel 梯度、非极大值抑制和双阈值连接
func Canny(gray *image.Gray, low, high float64) *EdgeMap {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	edges := NewEdgeMap(w, h)
	if w < 3 || h < 3 {
		return edges
	}

	lum := func(x, y int) float64 {
		return float64(gray.Pix[y*gray.Stride+x])
	}

	mag := make([]float64, w*h)
	gxs := make([]float64, w*h)
	gys := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := -lum(x-1, y-1) - 2*lum(x-1, y) - lum(x-1, y+1) +
				lum(x+1, y-1) + 2*lum(x+1, y) + lum(x+1, y+1)
			gy := -lum(x-1, y-1) - 2*lum(x, y-1) - lum(x+1, y-1) +
				lum(x-1, y+1) + 2*lum(x, y+1) + lum(x+1, y+1)
			i := y*w + x
			gxs[i], gys[i] = gx, gy
			mag[i] = math.Abs(gx) + math.Abs(gy)
		}
	}

	// 非极大值抑制，沿梯度方向比较两侧
	const tan22, tan67 = 0.4142, 2.4142
	strong := make([]bool, w*h)
	weak := make([]bool, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			m := mag[i]
			if m <= low {
				continue
			}

			ax, ay := math.Abs(gxs[i]), math.Abs(gys[i])
			var n1, n2 float64
			switch {
			case ay <= ax*tan22:
				n1, n2 = mag[i-1], mag[i+1]
			case ay >= ax*tan67:
				n1, n2 = mag[i-w], mag[i+w]
			case gxs[i]*gys[i] > 0:
				n1, n2 = mag[i-w-1], mag[i+w+1]
			default:
				n1, n2 = mag[i-w+1], mag[i+w-1]
			}
			if m <= n1 || m < n2 {
				continue
			}

			if m > high {
				strong[i] = true
			} else {
				weak[i] = true
			}
		}
	}

	// 从强边缘出发连接相邻的弱边缘
	stack := make([]int, 0, w)
	for i, s := range strong {
		if s {
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		edges.Pix[i] = 255

		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				n := ny*w + nx
				if weak[n] {
					weak[n] = false
					stack = append(stack, n)
				}
			}
		}
	}
	return edges
}

// toGray 转为单通道灰度图
func toGray(img image.Image) *image.Gray {
	nrgba := imaging.Grayscale(img)
	gray := image.NewGray(nrgba.Bounds())
	draw.Draw(gray, gray.Bounds(), nrgba, nrgba.Bounds().Min, draw.Src)
	return gray
}
