package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the language version inference table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, entry := range newAppService().Tables() {
				fmt.Fprintf(out, "%s\t%s\t%s\n", entry.Language, entry.Platform, strings.Join(entry.SupportedVersions, ", "))
			}
			return nil
		},
	}
}
