package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chatch/forge-fsql/internal/format"
	"github.com/chatch/forge-fsql/internal/terminal"
)

var execTimeout int

// execCmd runs a single statement and exits: the scripting companion to
// the interactive shell.
var execCmd = &cobra.Command{
	Use:   "exec <sql>",
	Short: "Execute a single SQL statement and print the result",
	Long: `The exec command sends one SQL statement to the configured webtrigger
endpoint, prints the formatted result, and exits. The exit code is
non-zero when the statement fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := buildClient(execTimeout)
		if err != nil {
			return err
		}

		stmt := strings.Join(args, " ")

		var stopSpinner func()
		if terminal.IsInteractive() {
			stopSpinner = terminal.StartSpinner(os.Stdout, "running query")
		}
		res := cl.Execute(cmd.Context(), stmt)
		if stopSpinner != nil {
			stopSpinner()
		}

		fmt.Println(format.FormatResult(res))
		if res.Error != "" {
			return errors.New("query failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().IntVar(&execTimeout, "timeout", 0, "Query timeout in seconds (default 30)")
}
