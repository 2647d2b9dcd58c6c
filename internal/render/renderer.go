package render

import (
	"fmt"
	"image"

	"github.com/wethinkt/go-lightbox/internal/media"
	"github.com/wethinkt/go-lightbox/internal/tuilog"
)

// Typical cell size in pixels.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Request describes one view of an item.
type Request struct {
	Item     media.Item
	Zoom     float64
	Rotation int
	Columns  int // available cells
	Rows     int
}

func (r Request) key() string {
	return fmt.Sprintf("%s|%d|%.2f|%d|%dx%d", r.Item.Source, r.Item.ModTime.UnixNano(), r.Zoom, r.Rotation, r.Columns, r.Rows)
}

// Frame is a rendered view.
type Frame struct {
	Protocol Protocol
	Body     string // text placed in the view
	Transmit string // escape sequence to send before the body is shown; kitty only
	Columns  int    // cells used by Body
	Rows     int
	Width    int // decoded image size before transforms
	Height   int
	Caption  string
}

// Renderer produces frames for one terminal.
type Renderer struct {
	proto   Protocol
	cellW   int
	cellH   int
	tracker *Tracker
}

// New creates a renderer for proto with the default cell size.
func New(proto Protocol) *Renderer {
	return &Renderer{
		proto:   proto,
		cellW:   DefaultCellWidth,
		cellH:   DefaultCellHeight,
		tracker: NewTracker(),
	}
}

// SetCellSize overrides the cell size in pixels. Non-positive sizes are ignored.
func (r *Renderer) SetCellSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	r.cellW, r.cellH = w, h
}

// ForTerminal creates a renderer for proto using the cell size reported by
// the terminal on fd, or the default size when it reports none.
func ForTerminal(proto Protocol, fd int) *Renderer {
	r := New(proto)
	if w, h, ok := CellSize(fd); ok {
		r.SetCellSize(w, h)
	}
	return r
}

// Protocol returns the protocol frames are encoded with.
func (r *Renderer) Protocol() Protocol { return r.proto }

// Render decodes and transforms the requested image. Non-images and
// undecodable files return media.ErrUnsupported.
func (r *Renderer) Render(req Request) (Frame, error) {
	if !req.Item.IsImage() {
		return Frame{}, fmt.Errorf("%s: %w", req.Item.Name, media.ErrUnsupported)
	}
	defer tuilog.Log.Timed("render", "item", req.Item.Name, "protocol", r.proto)()

	img, err := Load(req.Item.Source)
	if err != nil {
		return Frame{}, fmt.Errorf("%s: %w", req.Item.Name, err)
	}
	bounds := img.Bounds()
	frame := Frame{
		Protocol: r.proto,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}
	frame.Caption = Caption(req.Item, frame.Width, frame.Height)

	cols, rows := max(1, req.Columns), max(1, req.Rows)
	switch r.proto {
	case ProtocolKitty:
		out := Transform(img, req.Rotation, req.Zoom, cols*r.cellW, rows*r.cellH)
		frame.Columns, frame.Rows = r.cells(out)
		id, fresh := r.tracker.ID(req.key())
		if fresh {
			seq, err := KittyTransmit(id, out, frame.Columns, frame.Rows)
			if err != nil {
				return Frame{}, err
			}
			frame.Transmit = seq
		}
		frame.Body = KittyPlaceholders(id, frame.Columns, frame.Rows)
	case ProtocolSixel:
		out := Transform(img, req.Rotation, req.Zoom, cols*r.cellW, rows*r.cellH)
		frame.Columns, frame.Rows = r.cells(out)
		seq, err := Sixel(out)
		if err != nil {
			return Frame{}, err
		}
		frame.Body = seq
	case ProtocolBlocks:
		out := Transform(img, req.Rotation, req.Zoom, cols, rows*2)
		ob := out.Bounds()
		frame.Columns, frame.Rows = ob.Dx(), (ob.Dy()+1)/2
		frame.Body = Blocks(out)
	default:
		frame.Body = frame.Caption
		frame.Columns, frame.Rows = len([]rune(frame.Caption)), 1
	}
	return frame, nil
}

func (r *Renderer) cells(img image.Image) (cols, rows int) {
	b := img.Bounds()
	cols = max(1, (b.Dx()+r.cellW-1)/r.cellW)
	rows = max(1, (b.Dy()+r.cellH-1)/r.cellH)
	return cols, rows
}

// Caption describes an item in one line, e.g. "[image/png 640x480, 12KB]".
// Unknown dimensions are omitted.
func Caption(item media.Item, width, height int) string {
	mt := item.MediaType
	if mt == "" {
		mt = item.Ext()
	}
	size := FormatByteSize(item.Size)
	if width > 0 && height > 0 {
		return fmt.Sprintf("[%s %dx%d, %s]", mt, width, height, size)
	}
	return fmt.Sprintf("[%s %s]", mt, size)
}
