// Package imageprocessor уменьшает загружаемые аватары до заданного размера
package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

type Processor struct {
	quality int // JPEG quality (1-100)
	maxSide int
}

func NewProcessor(quality, maxSide int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	if maxSide <= 0 {
		maxSide = 400
	}
	return &Processor{quality: quality, maxSide: maxSide}
}

// Fit вписывает картинку в квадрат maxSide с сохранением пропорций.
// Картинка, которая уже помещается, возвращается как есть.
func (p *Processor) Fit(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if format != "jpeg" && format != "png" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	b := img.Bounds()
	if b.Dx() <= p.maxSide && b.Dy() <= p.maxSide {
		return data, nil
	}

	w, h := scaled(b.Dx(), b.Dy(), p.maxSide)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	var buf bytes.Buffer
	if format == "png" {
		err = png.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.quality})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

func scaled(width, height, maxSide int) (int, int) {
	if width >= height {
		h := height * maxSide / width
		return maxSide, max(h, 1)
	}
	w := width * maxSide / height
	return max(w, 1), maxSide
}
