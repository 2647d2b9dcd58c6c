package tui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/wethinkt/go-lightbox/internal/media"
	"github.com/wethinkt/go-lightbox/internal/tuilog"
)

// termSizeOpts seeds the program with the current terminal size so the first
// frame is laid out correctly.
func termSizeOpts() []tea.ProgramOption {
	var opts []tea.ProgramOption
	for _, fd := range []int{int(os.Stdout.Fd()), int(os.Stdin.Fd()), int(os.Stderr.Fd())} {
		if !term.IsTerminal(fd) {
			continue
		}
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			opts = append(opts, tea.WithWindowSize(w, h))
			break
		}
	}
	return opts
}

// Run shows the gallery until the user quits. The key router is detached
// on every exit path, so the scroll lock never outlives the program.
func Run(items []media.Item, opts Options) error {
	model := NewModel(items, opts)
	defer model.Close()

	p := tea.NewProgram(model, termSizeOpts()...)
	if _, err := p.Run(); err != nil {
		tuilog.Log.Error("tui exited with error", "error", err)
		return err
	}
	return nil
}
