package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/ansi/sixel"
)

// Sixel encodes img as a complete sixel DCS sequence.
func Sixel(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := (&sixel.Encoder{}).Encode(&buf, img); err != nil {
		return "", fmt.Errorf("sixel encode: %w", err)
	}
	return ansi.SixelGraphics(0, 1, 0, buf.Bytes()), nil
}

// Blocks draws img with upper half-block cells, two pixel rows per line,
// using truecolor foreground for the top pixel and background for the bottom.
func Blocks(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := rgb(img.At(x, y))
			bottom := top
			if y+1 < b.Max.Y {
				bottom = rgb(img.At(x, y+1))
			}
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		sb.WriteString("\x1b[0m")
	}
	return sb.String()
}

func rgb(c color.Color) color.RGBA {
	r, g, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
}

// FormatByteSize formats a byte count for display.
func FormatByteSize(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fGB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fMB", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.0fKB", float64(n)/1_000)
	default:
		return fmt.Sprintf("%dB", n)
	}
}
