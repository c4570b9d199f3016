package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatch/forge-fsql/internal/config"
	"github.com/chatch/forge-fsql/internal/history"
	"github.com/chatch/forge-fsql/internal/schema"
	"github.com/chatch/forge-fsql/internal/session"
	"github.com/chatch/forge-fsql/internal/terminal"
)

var (
	shellNoSchema bool
	shellTimeout  int
)

// shellCmd starts the interactive session explicitly. Bare `fsql` does the
// same; this subcommand exists so the flags have an obvious home.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive SQL session",
	Long: `The shell command starts an interactive session against the configured
webtrigger endpoint. SQL statements end with ; and may span multiple
lines; administrative commands start with . (try .help). When stdin is
not a terminal, statements are read from it without prompts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd.Context())
	},
}

// runShell wires the session from configuration and runs it to completion.
func runShell(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cl, err := buildClient(shellTimeout)
	if err != nil {
		return err
	}

	histPath, err := history.DefaultPath()
	if err != nil {
		return err
	}
	hist, err := history.Open(histPath, history.DefaultMax)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Config{}
	}
	opts := session.Options{
		SkipSchemaPreload: shellNoSchema || config.NoSchemaFromEnv() || cfg.SkipSchemaPreload,
	}
	s := session.New(cl, schema.NewStore(), hist, opts)

	if !terminal.IsInteractive() {
		return s.RunScript(ctx, os.Stdin)
	}
	return s.Run(ctx)
}

func init() {
	rootCmd.AddCommand(shellCmd)
	for _, cmd := range []*cobra.Command{rootCmd, shellCmd} {
		cmd.Flags().BoolVar(&shellNoSchema, "no-schema", false, "Skip schema preloading at startup")
		cmd.Flags().IntVar(&shellTimeout, "timeout", 0, "Query timeout in seconds (default 30)")
	}
}
