package render

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi/kitty"
)

// Tracker hands out stable kitty image IDs per rendered view, so an image
// already sent to the terminal is only referenced by placeholders again.
type Tracker struct {
	mu     sync.Mutex
	nextID int32
	ids    map[string]int32
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{ids: make(map[string]int32)}
}

// ID returns the image ID for key and whether it still has to be transmitted.
func (t *Tracker) ID(key string) (id int32, fresh bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[key]; ok {
		return id, false
	}
	// IDs are carried in 24-bit foreground colours.
	t.nextID = t.nextID%0xFFFFFF + 1
	t.ids[key] = t.nextID
	return t.nextID, true
}

// Forget drops every assignment, e.g. after the terminal was cleared.
func (t *Tracker) Forget() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.ids)
}

// KittyPlaceholders builds the unicode placeholder grid the terminal
// replaces with image id.
func KittyPlaceholders(id int32, columns, rows int) string {
	fg := fmt.Sprintf("\x1b[38;2;%d;%d;%dm", byte(id>>16), byte(id>>8), byte(id))
	const reset = "\x1b[39m"
	placeholder := string(kitty.Placeholder)

	var sb strings.Builder
	for row := range rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(fg)
		diacritic := string(kitty.Diacritic(row))
		for range columns {
			sb.WriteString(placeholder)
			sb.WriteString(diacritic)
		}
		sb.WriteString(reset)
	}
	return sb.String()
}

// KittyTransmit encodes img for virtual placement over columns×rows cells.
func KittyTransmit(id int32, img image.Image, columns, rows int) (string, error) {
	var buf bytes.Buffer
	err := kitty.EncodeGraphics(&buf, img, &kitty.Options{
		Action:           kitty.TransmitAndPut,
		Format:           kitty.PNG,
		Transmission:     kitty.Direct,
		ID:               int(id),
		Columns:          columns,
		Rows:             rows,
		VirtualPlacement: true,
		Chunk:            true,
		Quite:            1,
	})
	if err != nil {
		return "", fmt.Errorf("kitty encode: %w", err)
	}
	return buf.String(), nil
}

// KittyDirect encodes img for immediate display at the cursor.
func KittyDirect(img image.Image) (string, error) {
	var buf bytes.Buffer
	err := kitty.EncodeGraphics(&buf, img, &kitty.Options{
		Action:       kitty.TransmitAndPut,
		Format:       kitty.PNG,
		Transmission: kitty.Direct,
		Chunk:        true,
		Quite:        2,
	})
	if err != nil {
		return "", fmt.Errorf("kitty encode: %w", err)
	}
	return buf.String(), nil
}
