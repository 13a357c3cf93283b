package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pricehound/pricehound/internal/buildinfo"
)

// NewRootCommand builds the pricehound command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pricehound",
		Short: "Grocery price tracker",
		Long: "pricehound imports grocery price list CSV exports into a local\n" +
			"SQLite database and enriches the resulting product catalog with\n" +
			"representative images from public catalogs.",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newEnrichCommand())

	return rootCmd
}
