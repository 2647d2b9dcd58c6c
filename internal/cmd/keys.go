package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-lightbox/internal/viewer"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Print the viewer key bindings",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		bindings := viewer.Bindings()
		if outputJSON {
			return json.NewEncoder(out).Encode(bindings)
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEYS\tWHEN\tACTION")
		for _, b := range bindings {
			fmt.Fprintf(w, "%s\t%s\t%s\n", strings.Join(b.Keys, ", "), b.Condition, b.Action)
		}
		return w.Flush()
	},
}

func init() {
	keysCmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
}
