package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/wethinkt/go-lightbox/internal/i18n"
	"github.com/wethinkt/go-lightbox/internal/viewer"
)

// galleryKeyMap defines the bindings of the gallery page.
type galleryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Help key.Binding
	Quit key.Binding
}

func defaultGalleryKeyMap() galleryKeyMap {
	return galleryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", i18n.T("tui.help.open", "open")),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", i18n.T("tui.help.more", "more")),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", i18n.T("tui.help.quit", "quit")),
		),
	}
}

func (k galleryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Help, k.Quit}
}

func (k galleryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Open}, {k.Help, k.Quit}}
}

// viewerKeyMap mirrors viewer.Bindings for the help bar. The router, not
// these bindings, decides what a key does.
type viewerKeyMap struct {
	Close   key.Binding
	Prev    key.Binding
	Next    key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Rotate  key.Binding
	Quit    key.Binding
}

func defaultViewerKeyMap() viewerKeyMap {
	return viewerKeyMap{
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", i18n.T("tui.help.close", "close")),
		),
		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", i18n.T("tui.help.previous", "previous")),
		),
		Next: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", i18n.T("tui.help.next", "next")),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", i18n.T("tui.help.zoomIn", "zoom in")),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", i18n.T("tui.help.zoomOut", "zoom out")),
		),
		Rotate: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", i18n.T("tui.help.rotate", "rotate")),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", i18n.T("tui.help.quit", "quit")),
		),
	}
}

// forItem enables only the bindings the router would act on.
func (k viewerKeyMap) forItem(count int, isImage bool) viewerKeyMap {
	k.Prev.SetEnabled(count > 1)
	k.Next.SetEnabled(count > 1)
	k.ZoomIn.SetEnabled(isImage)
	k.ZoomOut.SetEnabled(isImage)
	k.Rotate.SetEnabled(isImage)
	return k
}

func (k viewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Close, k.Prev, k.Next, k.ZoomIn, k.ZoomOut, k.Rotate}
}

func (k viewerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Close, k.Prev, k.Next}, {k.ZoomIn, k.ZoomOut, k.Rotate}, {k.Quit}}
}

// keyName translates a bubbletea key into the standard key name published
// on the key bus. Printable keys pass through unchanged.
func keyName(msg tea.KeyMsg) string {
	switch s := msg.String(); s {
	case "esc":
		return viewer.KeyEscape
	case "left":
		return viewer.KeyArrowLeft
	case "right":
		return viewer.KeyArrowRight
	case "shift+r":
		return "R"
	default:
		return s
	}
}
