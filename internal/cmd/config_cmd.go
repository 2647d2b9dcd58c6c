package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-lightbox/internal/config"
	"github.com/wethinkt/go-lightbox/internal/i18n"
	"github.com/wethinkt/go-lightbox/internal/tui/theme"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the configuration and where it lives",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of config.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configLanguageCmd = &cobra.Command{
	Use:   "language [lang]",
	Short: "Get or set the display language",
	Long: `Get or set the display language. Use a BCP 47 tag (e.g., en, de).

Examples:
  lightbox config language        # show current language
  lightbox config language de     # switch to German`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintf(out, "Current language: %s\n", i18n.ResolveLocale(cfg.Language))
			fmt.Fprintf(out, "Available: %v\n", i18n.Available())
			return nil
		}

		cfg.Language = args[0]
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "Language set to: %s\n", args[0])
		return nil
	},
}

var configThemeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "List themes or set the active one",
	Long: `List the available themes or set the active one.

Built-in themes are dark and light. JSON files in the themes directory
under the config home are listed after them and take precedence.

Examples:
  lightbox config theme           # list themes, * marks the active one
  lightbox config theme light     # switch to the light theme`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, t := range theme.ListAvailable() {
				marker := " "
				if t.Name == cfg.Theme {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-12s %s\n", marker, t.Name, t.Description)
			}
			return nil
		}

		if _, err := theme.LoadByName(args[0]); err != nil {
			return fmt.Errorf("unknown theme %q", args[0])
		}
		cfg.Theme = args[0]
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "Theme set to: %s\n", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configLanguageCmd)
	configCmd.AddCommand(configThemeCmd)
}
