// Package imaging реализует перекодирование загружаемых картинок:
// cover-crop с якорем в самой детальной области и сжатие в JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP decoder
)

const jpegQuality = 90

type Processor struct {
	quality int
}

func NewProcessor() *Processor {
	return &Processor{quality: jpegQuality}
}

// Transcode вписывает исходную картинку в точный размер width x height:
// масштабирует до полного покрытия, обрезает перелив по окну с максимальной
// энтропией и кодирует результат в JPEG фиксированного качества.
func (p *Processor) Transcode(data []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("некорректный целевой размер %dx%d", width, height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("ошибка при декодировании изображения: %w", err)
	}

	covered := coverResize(img, width, height)
	cropped := imaging.Crop(covered, bestCropWindow(covered, width, height))

	var buf bytes.Buffer
	err = imaging.Encode(&buf, cropped, imaging.JPEG, imaging.JPEGQuality(p.quality))
	if err != nil {
		return nil, fmt.Errorf("ошибка при кодировании изображения: %w", err)
	}

	return buf.Bytes(), nil
}

// coverResize масштабирует картинку так, чтобы она полностью накрыла
// целевой прямоугольник: одна сторона совпадает с целевой, вторая переливает
func coverResize(img image.Image, width, height int) *image.NRGBA {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	scale := math.Max(
		float64(width)/float64(srcW),
		float64(height)/float64(srcH),
	)

	newW := int(math.Ceil(float64(srcW) * scale))
	newH := int(math.Ceil(float64(srcH) * scale))
	if newW < width {
		newW = width
	}
	if newH < height {
		newH = height
	}

	return imaging.Resize(img, newW, newH, imaging.Lanczos)
}
