package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-lightbox/internal/render"
	"github.com/wethinkt/go-lightbox/internal/tui"
	"github.com/wethinkt/go-lightbox/internal/tuilog"
)

var viewCmd = &cobra.Command{
	Use:   "view [paths...]",
	Short: "Launch the interactive gallery (default)",
	Long: `Browse the collection in a gallery and open items in a fullscreen
viewer. Directories are scanned for files, sorted by name; files given
explicitly keep their order.

While the viewer is open the gallery does not scroll. Images can be
zoomed and rotated; other files are previewed as text or markdown.`,
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	paths := collectionPaths(args)
	items, err := loadCollection(ctx, paths)
	if err != nil {
		return err
	}

	updates, stop, err := startWatcher(ctx, paths)
	if err != nil {
		tuilog.Log.Warn("watch disabled", "error", err)
	}
	defer stop()

	proto, err := render.ParseProtocol(cfg.Graphics, os.Getenv)
	if err != nil {
		return err
	}

	tuilog.Log.Info("Starting TUI", "items", len(items), "graphics", proto)
	return tui.Run(items, tui.Options{
		Theme:    cfg.Theme,
		Protocol: proto,
		Updates:  updates,
	})
}
