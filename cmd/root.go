// Package cmd provides the command-line interface for fsql. It implements
// the launcher subcommands (shell, exec, connect, endpoint, version) on the
// Cobra CLI framework; the session engine itself lives under internal/.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
// Bare `fsql` drops straight into the interactive session.
var rootCmd = &cobra.Command{
	Use:           "fsql",
	Short:         "Interactive SQL session against a hosted webtrigger endpoint",
	Long: `fsql is an interactive terminal for issuing SQL statements against a
hosted query endpoint (a webtrigger function reachable over HTTP) and
rendering the results. Run it bare to start the session, or use the
subcommands for one-shot execution and endpoint management.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("fsql %s\n", Version)
			return nil
		}
		return runShell(cmd.Context())
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
}
