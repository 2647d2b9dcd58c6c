package tui

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"

	"github.com/wethinkt/go-lightbox/internal/media"
	"github.com/wethinkt/go-lightbox/internal/render"
)

// galleryItem implements list.Item. index is the position in the viewer's
// collection, which differs from the list index while filtering.
type galleryItem struct {
	item  media.Item
	index int
}

func (i galleryItem) Title() string { return i.item.Name }
func (i galleryItem) Description() string {
	return fmt.Sprintf("%s · %s", i.item.FileType, render.FormatByteSize(i.item.Size))
}
func (i galleryItem) FilterValue() string { return i.item.Name }

func galleryItems(items []media.Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = galleryItem{item: it, index: i}
	}
	return out
}

// galleryDelegate renders one line per item.
type galleryDelegate struct {
	styles Styles
}

func (d galleryDelegate) Height() int                             { return 1 }
func (d galleryDelegate) Spacing() int                            { return 0 }
func (d galleryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d galleryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	gi, ok := item.(galleryItem)
	if !ok {
		return
	}
	marker := "▫ "
	if gi.item.IsImage() {
		marker = "▣ "
	}
	line := marker + gi.item.Name + "  " + render.FormatByteSize(gi.item.Size)

	switch {
	case m.FilterState() == list.Filtering && m.FilterValue() == "":
		fmt.Fprint(w, d.styles.ItemDimmed.Render(line))
	case index == m.Index():
		fmt.Fprint(w, d.styles.ItemSelected.Render(line))
	default:
		fmt.Fprint(w, d.styles.ItemNormal.Render(line))
	}
}

func newGalleryList(items []media.Item, styles Styles) list.Model {
	l := list.New(galleryItems(items), galleryDelegate{styles: styles}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	return l
}
