package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/wethinkt/go-lightbox/internal/media"
)

// Load decodes the image at path. Undecodable data is reported as
// media.ErrUnsupported.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads any registered image format.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("decode: %w", media.ErrUnsupported)
		}
		return nil, fmt.Errorf("decode: %w: %v", media.ErrUnsupported, err)
	}
	return img, nil
}

// Rotate turns img clockwise by degrees, which must be a multiple of 90.
func Rotate(img image.Image, degrees int) image.Image {
	degrees = ((degrees % 360) + 360) % 360
	if degrees == 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var dst *image.RGBA
	if degrees == 180 {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	} else {
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.At(b.Min.X+x, b.Min.Y+y)
			switch degrees {
			case 90:
				dst.Set(h-1-y, x, c)
			case 180:
				dst.Set(w-1-x, h-1-y, c)
			case 270:
				dst.Set(y, w-1-x, c)
			}
		}
	}
	return dst
}

// FitScale is the factor that fits a w×h image inside boxW×boxH without
// enlarging it.
func FitScale(w, h, boxW, boxH int) float64 {
	if w <= 0 || h <= 0 || boxW <= 0 || boxH <= 0 {
		return 1
	}
	return math.Min(1, math.Min(float64(boxW)/float64(w), float64(boxH)/float64(h)))
}

// Transform rotates img, scales it to zoom times its fit size and crops the
// centre when the result exceeds the box. Zoom 1 is fit-to-box.
func Transform(img image.Image, rotation int, zoom float64, boxW, boxH int) image.Image {
	img = Rotate(img, rotation)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || boxW <= 0 || boxH <= 0 {
		return img
	}

	scale := FitScale(w, h, boxW, boxH) * zoom
	dstW := max(1, int(math.Round(float64(w)*scale)))
	dstH := max(1, int(math.Round(float64(h)*scale)))

	// Visible part of the scaled image, mapped back to source pixels.
	visW, visH := min(dstW, boxW), min(dstH, boxH)
	srcW := min(w, max(1, int(math.Round(float64(visW)/scale))))
	srcH := min(h, max(1, int(math.Round(float64(visH)/scale))))
	x0 := b.Min.X + (w-srcW)/2
	y0 := b.Min.Y + (h-srcH)/2
	src := image.Rect(x0, y0, x0+srcW, y0+srcH)

	dst := image.NewRGBA(image.Rect(0, 0, visW, visH))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}
