package render

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi/kitty"
	"github.com/wethinkt/go-lightbox/internal/media"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Protocol
	}{
		{"kitty term", map[string]string{"TERM": "xterm-kitty"}, ProtocolKitty},
		{"ghostty", map[string]string{"TERM_PROGRAM": "ghostty"}, ProtocolKitty},
		{"wezterm", map[string]string{"TERM_PROGRAM": "WezTerm"}, ProtocolKitty},
		{"foot", map[string]string{"TERM_PROGRAM": "foot"}, ProtocolSixel},
		{"xterm", map[string]string{"TERM": "xterm-256color"}, ProtocolBlocks},
		{"truecolor", map[string]string{"COLORTERM": "truecolor"}, ProtocolBlocks},
		{"dumb", map[string]string{"TERM": "dumb"}, ProtocolNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(envOf(tt.env)); got != tt.want {
				t.Errorf("Detect() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseProtocol(t *testing.T) {
	env := envOf(map[string]string{"TERM": "xterm-kitty"})
	tests := []struct {
		in   string
		want Protocol
	}{
		{"auto", ProtocolKitty},
		{"", ProtocolKitty},
		{"sixel", ProtocolSixel},
		{"Blocks", ProtocolBlocks},
		{"none", ProtocolNone},
	}
	for _, tt := range tests {
		got, err := ParseProtocol(tt.in, env)
		if err != nil || got != tt.want {
			t.Errorf("ParseProtocol(%q) = %s, %v; want %s", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseProtocol("ascii", env); err == nil {
		t.Error("expected error for unknown protocol")
	}
	if ProtocolSixel.ForTUI() != ProtocolBlocks || ProtocolKitty.ForTUI() != ProtocolKitty {
		t.Error("ForTUI mapping wrong")
	}
}

// quadrant returns a w×h image whose top-left pixel is red and the rest blue.
func quadrant(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	return img
}

func isRed(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r > 0xf000 && g == 0 && b == 0
}

func TestRotate(t *testing.T) {
	src := quadrant(4, 2)
	tests := []struct {
		deg        int
		w, h       int
		redX, redY int
	}{
		{0, 4, 2, 0, 0},
		{90, 2, 4, 1, 0},
		{180, 4, 2, 3, 1},
		{270, 2, 4, 0, 3},
		{360, 4, 2, 0, 0},
		{-90, 2, 4, 0, 3},
	}
	for _, tt := range tests {
		out := Rotate(src, tt.deg)
		b := out.Bounds()
		if b.Dx() != tt.w || b.Dy() != tt.h {
			t.Errorf("Rotate(%d) size = %dx%d, want %dx%d", tt.deg, b.Dx(), b.Dy(), tt.w, tt.h)
			continue
		}
		if !isRed(out.At(tt.redX, tt.redY)) {
			t.Errorf("Rotate(%d): red pixel not at (%d,%d)", tt.deg, tt.redX, tt.redY)
		}
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		w, h, bw, bh int
		want         float64
	}{
		{100, 50, 200, 200, 1},
		{400, 100, 200, 200, 0.5},
		{100, 400, 200, 200, 0.5},
		{0, 10, 10, 10, 1},
	}
	for _, tt := range tests {
		if got := FitScale(tt.w, tt.h, tt.bw, tt.bh); got != tt.want {
			t.Errorf("FitScale(%d,%d,%d,%d) = %v, want %v", tt.w, tt.h, tt.bw, tt.bh, got, tt.want)
		}
	}
}

func TestTransform(t *testing.T) {
	src := quadrant(400, 200)
	tests := []struct {
		name     string
		rotation int
		zoom     float64
		w, h     int
	}{
		{"fit", 0, 1, 100, 50},
		{"zoom out", 0, 0.5, 50, 25},
		{"zoom in crops width", 0, 1.5, 100, 75},
		{"zoom past box crops", 0, 3, 100, 100},
		{"rotated fit", 90, 1, 50, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Transform(src, tt.rotation, tt.zoom, 100, 100)
			b := out.Bounds()
			if b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func TestKittyPlaceholders(t *testing.T) {
	grid := KittyPlaceholders(42, 3, 2)
	lines := strings.Split(grid, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, string(kitty.Placeholder)); n != 3 {
			t.Errorf("row %d: %d placeholders, want 3", i, n)
		}
	}
	if !strings.Contains(grid, "\x1b[38;2;0;0;42m") {
		t.Error("missing foreground colour for image 42")
	}
	if !strings.Contains(grid, "\x1b[39m") {
		t.Error("missing foreground reset")
	}
}

func TestTracker(t *testing.T) {
	tr := NewTracker()
	a, fresh := tr.ID("a")
	if !fresh {
		t.Error("first ID should be fresh")
	}
	again, fresh := tr.ID("a")
	if fresh || again != a {
		t.Errorf("repeat ID = %d fresh=%v, want %d false", again, fresh, a)
	}
	if b, _ := tr.ID("b"); b == a {
		t.Error("different keys share an ID")
	}
	tr.Forget()
	if _, fresh := tr.ID("a"); !fresh {
		t.Error("Forget did not clear assignments")
	}
}

func TestBlocks(t *testing.T) {
	out := Blocks(quadrant(3, 3))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("3 pixel rows should give 2 lines, got %d", len(lines))
	}
	if n := strings.Count(lines[0], "▀"); n != 3 {
		t.Errorf("line 0 has %d cells, want 3", n)
	}
	if !strings.HasPrefix(out, "\x1b[38;2;255;0;0m\x1b[48;2;0;0;255m") {
		t.Errorf("first cell colours wrong: %q", out[:40])
	}
}

func TestSixel(t *testing.T) {
	seq, err := Sixel(quadrant(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(seq, "\x1bP") {
		t.Errorf("not a DCS sequence: %q", seq[:min(10, len(seq))])
	}
}

func TestFormatByteSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512B"},
		{1500, "2KB"},
		{2_500_000, "2.5MB"},
		{3_000_000_000, "3.0GB"},
	}
	for _, tt := range tests {
		if got := FormatByteSize(tt.n); got != tt.want {
			t.Errorf("FormatByteSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func writeImage(t *testing.T, dir, name string, img image.Image) media.Item {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()
	item, err := media.Classify(path, media.DefaultScanOptions())
	if err != nil {
		t.Fatal(err)
	}
	return item
}

func TestRendererProtocols(t *testing.T) {
	item := writeImage(t, t.TempDir(), "q.png", quadrant(64, 32))

	for _, p := range []Protocol{ProtocolKitty, ProtocolSixel, ProtocolBlocks, ProtocolNone} {
		t.Run(p.String(), func(t *testing.T) {
			r := New(p)
			frame, err := r.Render(Request{Item: item, Zoom: 1, Columns: 20, Rows: 10})
			if err != nil {
				t.Fatal(err)
			}
			if frame.Width != 64 || frame.Height != 32 {
				t.Errorf("source size = %dx%d", frame.Width, frame.Height)
			}
			if frame.Body == "" {
				t.Error("empty body")
			}
			if !strings.Contains(frame.Caption, "64x32") {
				t.Errorf("caption = %q", frame.Caption)
			}
			if p != ProtocolNone && (frame.Columns > 20 || frame.Rows > 10) {
				t.Errorf("frame %dx%d exceeds the 20x10 box", frame.Columns, frame.Rows)
			}
			if p == ProtocolKitty && frame.Transmit == "" {
				t.Error("first kitty frame must carry a transmit sequence")
			}
		})
	}
}

func TestRendererKittyReusesTransmittedImage(t *testing.T) {
	item := writeImage(t, t.TempDir(), "q.png", quadrant(16, 16))
	r := New(ProtocolKitty)
	req := Request{Item: item, Zoom: 1, Columns: 10, Rows: 5}
	if _, err := r.Render(req); err != nil {
		t.Fatal(err)
	}
	again, err := r.Render(req)
	if err != nil {
		t.Fatal(err)
	}
	if again.Transmit != "" {
		t.Error("unchanged view was transmitted twice")
	}
	req.Rotation = 90
	rotated, _ := r.Render(req)
	if rotated.Transmit == "" {
		t.Error("rotated view needs a new transmission")
	}
}

func TestRendererCellSize(t *testing.T) {
	item := writeImage(t, t.TempDir(), "q.png", quadrant(64, 64))
	req := Request{Item: item, Zoom: 1, Columns: 4, Rows: 4}

	r := New(ProtocolKitty)
	frame, err := r.Render(req)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Columns != 4 || frame.Rows != 2 {
		t.Errorf("default cells = %dx%d, want 4x2", frame.Columns, frame.Rows)
	}

	r.SetCellSize(0, 5)
	r.SetCellSize(16, 16)
	frame, err = r.Render(req)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Columns != 4 || frame.Rows != 4 {
		t.Errorf("square cells = %dx%d, want 4x4", frame.Columns, frame.Rows)
	}
}

func TestRendererErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := New(ProtocolBlocks)

	_, err := r.Render(Request{Item: media.NewItem(bad, media.TypeImage), Zoom: 1, Columns: 10, Rows: 10})
	if !errors.Is(err, media.ErrUnsupported) {
		t.Errorf("broken image err = %v, want ErrUnsupported", err)
	}

	_, err = r.Render(Request{Item: media.NewItem(filepath.Join(dir, "notes.md"), media.TypeOther)})
	if !errors.Is(err, media.ErrUnsupported) {
		t.Errorf("non-image err = %v, want ErrUnsupported", err)
	}

	_, err = r.Render(Request{Item: media.NewItem(filepath.Join(dir, "missing.png"), media.TypeImage)})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want ErrNotExist", err)
	}
}

func TestCaption(t *testing.T) {
	item := media.Item{Source: "/x/a.png", MediaType: "image/png", Size: 2048}
	if got := Caption(item, 10, 20); got != "[image/png 10x20, 2KB]" {
		t.Errorf("Caption = %q", got)
	}
	item.MediaType = ""
	if got := Caption(item, 0, 0); got != "[png 2KB]" {
		t.Errorf("Caption without dims = %q", got)
	}
}
