package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wethinkt/go-lightbox/internal/media"
	"github.com/wethinkt/go-lightbox/internal/render"
	"github.com/wethinkt/go-lightbox/internal/viewer"
)

// show command flags
var (
	showZoom     float64
	showRotate   int
	showGraphics string
)

var showCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Render one image to the terminal and exit",
	Long: `Render a single image with the configured graphics protocol, fitted to
the terminal. Unlike the gallery, sixel output is printed directly.

Examples:
  lightbox show cat.png
  lightbox show scan.tiff --rotate 90 --zoom 2
  lightbox show cat.png --graphics blocks`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().Float64Var(&showZoom, "zoom", viewer.DefaultZoom, fmt.Sprintf("zoom factor (%.2g to %.2g)", viewer.MinZoom, viewer.MaxZoom))
	showCmd.Flags().IntVar(&showRotate, "rotate", 0, "clockwise rotation in degrees (multiple of 90)")
	showCmd.Flags().StringVar(&showGraphics, "graphics", "", "graphics protocol (auto, kitty, sixel, blocks, none; default from config)")
}

func runShow(cmd *cobra.Command, args []string) error {
	if showZoom < viewer.MinZoom || showZoom > viewer.MaxZoom {
		return fmt.Errorf("zoom %v outside [%v, %v]", showZoom, viewer.MinZoom, viewer.MaxZoom)
	}
	if showRotate%90 != 0 {
		return fmt.Errorf("rotation %d is not a multiple of 90", showRotate)
	}
	rotation := ((showRotate % 360) + 360) % 360

	item, err := media.Classify(args[0], scanOptions())
	if err != nil {
		return err
	}

	graphics := cfg.Graphics
	if showGraphics != "" {
		graphics = showGraphics
	}
	proto, err := render.ParseProtocol(graphics, os.Getenv)
	if err != nil {
		return err
	}

	cols, rows := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		cols, rows = w, h
	}

	out := cmd.OutOrStdout()
	if !item.IsImage() {
		fmt.Fprintln(out, render.Caption(item, 0, 0))
		return nil
	}

	frame, err := render.ForTerminal(proto, int(os.Stdout.Fd())).Render(render.Request{
		Item:     item,
		Zoom:     showZoom,
		Rotation: rotation,
		Columns:  cols,
		Rows:     max(1, rows-2),
	})
	if err != nil {
		return err
	}
	fmt.Fprint(out, frame.Transmit)
	fmt.Fprintln(out, frame.Body)
	if proto != render.ProtocolNone {
		fmt.Fprintln(out, frame.Caption)
	}
	return nil
}
