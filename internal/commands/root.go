package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/folha-dev/folha/internal/buildinfo"
	"github.com/folha-dev/folha/internal/logging"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "folha",
		Short:   "Payroll summary extraction from Nasajon PDF reports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetLogger(logging.NewTextLogger(os.Stderr, verbose))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log extraction details to stderr")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newBatchCommand())

	return rootCmd
}
