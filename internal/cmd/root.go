// Package cmd provides the CLI commands for lightbox.
package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-lightbox/internal/config"
	"github.com/wethinkt/go-lightbox/internal/i18n"
	"github.com/wethinkt/go-lightbox/internal/media"
	"github.com/wethinkt/go-lightbox/internal/tuilog"
)

// global flags
var (
	profileFile *os.File // held open for profiling
	logPath     string
	verbose     bool
	outputJSON  bool
)

// collection flags, shared by the commands that scan paths
var (
	recursive     bool
	includeHidden bool
	noWatch       bool
)

// cfg is loaded once per invocation by the root pre-run hook.
var cfg = config.Default()

// rootCmd is the root command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "lightbox [paths...]",
	Short: "Browse images and files in a terminal lightbox",
	Long: `lightbox shows a gallery of the images and files under the given paths
and opens a fullscreen viewer on Enter.

In the viewer:
  Escape        close
  ←/→           previous / next item (wraps around)
  + or =, -     zoom in / out (images)
  r or R        rotate a quarter turn (images)

Running without a subcommand launches the interactive gallery.

Examples:
  lightbox                        # Gallery of the current directory
  lightbox ~/Pictures -r          # Include subdirectories
  lightbox list --json photos/    # Print the collection
  lightbox serve photos/          # Control the viewer over HTTP`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Start pprof profiling if LIGHTBOX_PROFILE is set
		if profilePath := os.Getenv("LIGHTBOX_PROFILE"); profilePath != "" {
			f, err := os.Create(profilePath)
			if err != nil {
				return fmt.Errorf("create profile file: %w", err)
			}
			profileFile = f

			if err := pprof.StartCPUProfile(f); err != nil {
				f.Close()
				profileFile = nil
				return fmt.Errorf("start CPU profile: %w", err)
			}
		}

		level, err := tuilog.ParseLevel(os.Getenv(tuilog.EnvLogLevel))
		if err != nil {
			return err
		}
		if verbose {
			level = tuilog.LevelDebug
		}
		if err := tuilog.Init(logPath, level); err != nil {
			return err
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		i18n.Init(i18n.ResolveLocale(cfg.Language))
		tuilog.Log.Debug("config loaded", "theme", cfg.Theme, "graphics", cfg.Graphics, "language", cfg.Language)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		// Stop CPU profiling
		if profileFile != nil {
			pprof.StopCPUProfile()
			profileFile.Close()
			profileFile = nil
		}
		return tuilog.Log.Close()
	},
	RunE: runView,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug log level)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write log to file (default: $LIGHTBOX_LOG_FILE)")

	for _, c := range []*cobra.Command{rootCmd, viewCmd, listCmd, serveCmd} {
		addCollectionFlags(c)
	}

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func addCollectionFlags(c *cobra.Command) {
	c.Flags().BoolVarP(&recursive, "recursive", "r", false, "include subdirectories")
	c.Flags().BoolVar(&includeHidden, "hidden", false, "include hidden files")
	c.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload when files change")
}

// scanOptions merges the configuration with the collection flags.
func scanOptions() media.ScanOptions {
	opts := media.ScanOptions{
		Recursive:       cfg.Media.Recursive || recursive,
		IncludeHidden:   cfg.Media.IncludeHidden || includeHidden,
		ImageExtensions: cfg.Media.ImageExtensions,
	}
	if len(opts.ImageExtensions) == 0 {
		opts.ImageExtensions = media.DefaultScanOptions().ImageExtensions
	}
	return opts
}

// collectionPaths defaults to the working directory.
func collectionPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// loadCollection scans paths with the effective options.
func loadCollection(ctx context.Context, paths []string) ([]media.Item, error) {
	done := tuilog.Log.Timed("scan", "paths", len(paths))
	defer done()
	items, err := media.Scan(ctx, paths, scanOptions())
	if err != nil {
		return nil, err
	}
	tuilog.Log.Info("collection loaded", "items", len(items))
	return items, nil
}

// startWatcher reloads the collection on file changes unless watching is
// disabled. The returned stop function is always safe to call.
func startWatcher(ctx context.Context, paths []string) (<-chan []media.Item, func(), error) {
	if noWatch || !cfg.Watch.Enabled {
		return nil, func() {}, nil
	}
	w, err := media.NewWatcher(paths, scanOptions(), cfg.Watch.DebounceDuration())
	if err != nil {
		return nil, func() {}, err
	}
	ch, err := w.Start(ctx)
	if err != nil {
		w.Stop()
		return nil, func() {}, err
	}
	return ch, func() { w.Stop() }, nil
}
