package tui

import (
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"

	"github.com/wethinkt/go-lightbox/internal/media"
	"github.com/wethinkt/go-lightbox/internal/render"
	"github.com/wethinkt/go-lightbox/internal/tuilog"
)

// Preview reads at most this much of a non-image file.
const previewLimit = 64 << 10

// renderPreview shows a non-image item: markdown through glamour, other
// text verbatim, anything else as its caption.
func renderPreview(item media.Item, width int) string {
	caption := render.Caption(item, 0, 0)
	data, err := readHead(item.Source, previewLimit)
	if err != nil || !utf8.Valid(data) || !isText(item) {
		return caption
	}

	text := string(data)
	if item.Ext() == "md" || item.Ext() == "markdown" {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(max(20, width-4)),
		)
		if err == nil {
			if out, err := r.Render(text); err == nil {
				return out
			}
		}
		tuilog.Log.Warn("markdown preview failed", "item", item.Name, "error", err)
	}
	return caption + "\n\n" + strings.TrimRight(text, "\n")
}

func isText(item media.Item) bool {
	return strings.HasPrefix(item.MediaType, "text/") || item.MediaType == "application/json"
}

func readHead(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit))
}
