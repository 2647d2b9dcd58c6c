package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-lightbox/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(version.GetInfo("lightbox"))
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.String("lightbox"))
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
}
