package imaging

import (
	"image"
	"math"
)

// шаг перебора окон: баланс между точностью якоря и стоимостью прохода
const cropScanStep = 16

// bestCropWindow выбирает окно width x height внутри картинки с наибольшей
// энтропией яркости - кадрируется самая "интересная" область вместо
// наивного центра (поведение entropy-стратегии из оригинального API)
func bestCropWindow(img image.Image, width, height int) image.Rectangle {
	bounds := img.Bounds()
	maxX := bounds.Dx() - width
	maxY := bounds.Dy() - height
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}

	if maxX == 0 && maxY == 0 {
		return image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+width, bounds.Min.Y+height)
	}

	lum := luminance(img)

	bestX, bestY := 0, 0
	bestEntropy := -1.0

	for y := 0; ; y += cropScanStep {
		if y > maxY {
			y = maxY
		}
		for x := 0; ; x += cropScanStep {
			if x > maxX {
				x = maxX
			}

			e := windowEntropy(lum, bounds.Dx(), x, y, width, height)
			if e > bestEntropy {
				bestEntropy = e
				bestX, bestY = x, y
			}

			if x == maxX {
				break
			}
		}
		if y == maxY {
			break
		}
	}

	return image.Rect(
		bounds.Min.X+bestX,
		bounds.Min.Y+bestY,
		bounds.Min.X+bestX+width,
		bounds.Min.Y+bestY+height,
	)
}

// luminance переводит картинку в плоский массив яркости 0..255
func luminance(img image.Image) []uint8 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	lum := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// ITU-R BT.601
			v := (299*r + 587*g + 114*b) / 1000
			lum[y*w+x] = uint8(v >> 8)
		}
	}

	return lum
}

// windowEntropy - энтропия Шеннона гистограммы яркости окна
func windowEntropy(lum []uint8, stride, x, y, width, height int) float64 {
	var hist [256]int
	for dy := 0; dy < height; dy++ {
		row := (y + dy) * stride
		for dx := 0; dx < width; dx++ {
			hist[lum[row+x+dx]]++
		}
	}

	total := float64(width * height)
	entropy := 0.0
	for _, count := range hist {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}

	return entropy
}
