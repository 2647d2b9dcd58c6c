package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-lightbox/internal/render"
)

var listCmd = &cobra.Command{
	Use:   "list [paths...]",
	Short: "Print the collection in viewer order",
	Long: `Print the items lightbox would show for the given paths, in the order
the viewer navigates them.

Examples:
  lightbox list                   # Current directory
  lightbox list -r ~/Pictures     # Recursive
  lightbox list --json a.png b/   # Machine-readable`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	items, err := loadCollection(cmd.Context(), collectionPaths(args))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTYPE\tSIZE\tNAME")
	for i, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, item.FileType, render.FormatByteSize(item.Size), item.Name)
	}
	return w.Flush()
}
