package tui

import (
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wethinkt/go-lightbox/internal/i18n"
	"github.com/wethinkt/go-lightbox/internal/media"
	"github.com/wethinkt/go-lightbox/internal/render"
	"github.com/wethinkt/go-lightbox/internal/tuilog"
	"github.com/wethinkt/go-lightbox/internal/viewer"
)

// Options configures the gallery model.
type Options struct {
	Theme    string
	Protocol render.Protocol
	Updates  <-chan []media.Item // rescanned collections, may be nil
	Lock     *viewer.ScrollLock  // nil means viewer.PageScroll
}

// frameMsg carries a finished render. key identifies the request so stale
// frames can be dropped.
type frameMsg struct {
	key   string
	frame render.Frame
	err   error
}

type itemsMsg struct {
	items []media.Item
	ok    bool
}

// Model is the gallery page with the viewer overlay on top of it.
type Model struct {
	state    *viewer.State
	bus      *viewer.KeyBus
	router   *viewer.KeyRouter
	lock     *viewer.ScrollLock
	renderer *render.Renderer
	updates  <-chan []media.Item

	list    list.Model
	preview viewport.Model
	help    help.Model
	gkeys   galleryKeyMap
	vkeys   viewerKeyMap
	styles  Styles

	frame   render.Frame
	pending string
	status  string
	width   int
	height  int
}

// NewModel builds the gallery over items. Call Init (bubbletea does) to
// attach the key router.
func NewModel(items []media.Item, opts Options) Model {
	lock := opts.Lock
	if lock == nil {
		lock = viewer.PageScroll
	}
	state := viewer.New(items)
	styles := NewStyles(opts.Theme)
	return Model{
		state:    state,
		bus:      viewer.NewKeyBus(),
		router:   viewer.NewKeyRouter(state, lock),
		lock:     lock,
		renderer: render.ForTerminal(opts.Protocol.ForTUI(), int(os.Stdout.Fd())),
		updates:  opts.Updates,
		list:     newGalleryList(items, styles),
		preview:  viewport.New(),
		help:     help.New(),
		gkeys:    defaultGalleryKeyMap(),
		vkeys:    defaultViewerKeyMap(),
		styles:   styles,
	}
}

// State exposes the viewer state machine.
func (m Model) State() *viewer.State { return m.state }

// Close detaches the key router, releasing the scroll lock if held.
func (m Model) Close() { m.router.Detach() }

func (m Model) Init() tea.Cmd {
	m.router.Attach(m.bus)
	tuilog.Log.Info("gallery started", "items", m.state.Len(), "protocol", m.renderer.Protocol())
	return m.waitForItems()
}

func (m Model) waitForItems() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	ch := m.updates
	return func() tea.Msg {
		items, ok := <-ch
		return itemsMsg{items: items, ok: ok}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		cmd := m.renderCurrent()
		return m, cmd

	case tea.KeyMsg:
		if m.state.IsOpen() {
			return m.updateViewer(msg)
		}
		return m.updateGallery(msg)

	case tea.MouseWheelMsg:
		// The lock is process-wide, so another holder of viewer.PageScroll
		// freezes the gallery even while this model's viewer is closed.
		if m.lock.Locked() {
			return m, nil
		}

	case frameMsg:
		if msg.key != m.pending {
			return m, nil
		}
		m.pending = ""
		if msg.err != nil {
			tuilog.Log.Warn("render failed", "error", msg.err)
			m.frame = render.Frame{}
			if !m.state.LoadError() {
				m.state.SetLoadError(true)
			}
			return m, nil
		}
		m.frame = msg.frame
		if msg.frame.Transmit != "" {
			return m, tea.Raw(msg.frame.Transmit)
		}
		return m, nil

	case itemsMsg:
		if !msg.ok {
			return m, nil
		}
		m.state.SetItems(msg.items)
		cmd := m.list.SetItems(galleryItems(msg.items))
		m.status = i18n.T("tui.status.rescanned", "collection updated")
		tuilog.Log.Info("collection updated", "items", len(msg.items))
		cmds := []tea.Cmd{cmd, m.renderCurrent(), m.waitForItems()}
		return m, tea.Batch(cmds...)
	}

	if m.state.IsOpen() {
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateGallery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.gkeys.Quit):
		return m.quit()
	case key.Matches(msg, m.gkeys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.gkeys.Open):
		gi, ok := m.list.SelectedItem().(galleryItem)
		if !ok {
			return m, nil
		}
		if err := m.state.Open(gi.index); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
		cmd := m.renderCurrent()
		return m, cmd
	}

	// Held here only by another holder of the shared lock; see MouseWheelMsg.
	if m.lock.Locked() {
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateViewer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.vkeys.Quit) {
		return m.quit()
	}

	before := m.state.Snapshot()
	m.bus.Publish(keyName(msg))
	after := m.state.Snapshot()

	if !after.Open {
		m.frame, m.pending = render.Frame{}, ""
		if m.list.FilterState() == list.Unfiltered {
			m.list.Select(after.Index)
		}
		return m, nil
	}
	if after.Index != before.Index || after.Zoom != before.Zoom || after.Rotation != before.Rotation {
		cmd := m.renderCurrent()
		return m, cmd
	}

	// Keys the router ignored scroll a text preview.
	if item, ok := m.state.CurrentItem(); ok && !item.IsImage() {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.router.Detach()
	return m, tea.Quit
}

func (m *Model) resize() {
	listHeight := max(1, m.height-4)
	m.list.SetSize(m.width, listHeight)
	m.preview.SetWidth(max(1, m.width-4))
	m.preview.SetHeight(max(1, m.height-6))
}

// viewerBox is the cell area available to the rendered item.
func (m Model) viewerBox() (cols, rows int) {
	return max(1, m.width-4), max(1, m.height-6)
}

// renderCurrent starts rendering the current item when the viewer is open.
// Non-image items are previewed synchronously.
func (m *Model) renderCurrent() tea.Cmd {
	if !m.state.IsOpen() || m.width == 0 {
		return nil
	}
	item, ok := m.state.CurrentItem()
	if !ok {
		return nil
	}
	cols, rows := m.viewerBox()
	if !item.IsImage() {
		m.frame, m.pending = render.Frame{}, ""
		m.preview.SetContent(renderPreview(item, cols))
		m.preview.GotoTop()
		return nil
	}

	req := render.Request{
		Item:     item,
		Zoom:     m.state.ZoomLevel(),
		Rotation: m.state.Rotation(),
		Columns:  cols,
		Rows:     rows,
	}
	reqKey := fmt.Sprintf("%s|%v|%d|%dx%d", item.Source, req.Zoom, req.Rotation, cols, rows)
	m.pending = reqKey
	r := m.renderer
	return func() tea.Msg {
		frame, err := r.Render(req)
		return frameMsg{key: reqKey, frame: frame, err: err}
	}
}

func (m Model) View() tea.View {
	var content string
	if m.width == 0 {
		content = i18n.T("common.loading", "Loading...")
	} else if m.state.IsOpen() {
		content = m.viewerView()
	} else {
		content = m.galleryView()
	}
	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) galleryView() string {
	title := m.styles.Title.Render(i18n.T("tui.gallery.title", "Gallery"))
	count := m.styles.Info.Render("  " + i18n.Tn("tui.status.items", "{{.Count}} item", "{{.Count}} items", m.state.Len()))
	header := title + count
	if m.status != "" {
		header += "  " + m.styles.Info.Render(m.status)
	}
	if m.lock.Locked() {
		header += "  " + m.styles.Locked.Render(i18n.T("tui.gallery.scrollLocked", "list locked while the viewer is open"))
	}

	body := m.list.View()
	if m.state.Len() == 0 {
		body = m.styles.Info.Render(i18n.T("tui.gallery.empty", "No media found"))
	}
	return header + "\n\n" + body + "\n" + m.styles.Help.Render(m.help.View(m.gkeys))
}

func (m Model) viewerView() string {
	snap := m.state.Snapshot()
	item := snap.Item
	if item == nil {
		return ""
	}

	parts := []string{
		m.styles.Title.Render(item.Name),
		i18n.Tf("tui.viewer.counter", "%d / %d", snap.Index+1, snap.Count),
	}
	if item.IsImage() {
		parts = append(parts, i18n.Tf("tui.viewer.zoom", "zoom %d%%", int(snap.Zoom*100+0.5)))
		if snap.Rotation != 0 {
			parts = append(parts, i18n.Tf("tui.viewer.rotation", "rotated %d°", snap.Rotation))
		}
	}
	header := strings.Join(parts, m.styles.Info.Render(" • "))

	cols, rows := m.viewerBox()
	var body string
	switch {
	case snap.LoadError:
		body = m.styles.Error.Render(i18n.T("tui.viewer.loadError", "Could not load this item"))
	case !item.IsImage():
		body = m.preview.View()
	case m.frame.Body == "":
		body = m.styles.Info.Render(i18n.T("common.loading", "Loading..."))
	default:
		body = m.frame.Body
		if m.frame.Caption != "" {
			body += "\n" + m.styles.Caption.Render(m.frame.Caption)
		}
	}
	body = m.styles.Overlay.Render(lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, body))

	keys := m.vkeys.forItem(snap.Count, item.IsImage())
	footer := m.styles.Help.Render(m.help.View(keys))
	return header + "\n" + m.styles.Frame.Render(body) + "\n" + footer
}
