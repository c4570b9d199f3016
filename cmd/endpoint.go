package cmd

import (
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/chatch/forge-fsql/internal/config"
	"github.com/chatch/forge-fsql/internal/logging"
)

// endpointCmd shows the currently configured webtrigger endpoint with the
// secret token path masked, so users can verify where their queries go
// without exposing the credential.
var endpointCmd = &cobra.Command{
	Use:   "endpoint",
	Short: "Show the configured webtrigger endpoint",
	Long: `The endpoint command displays the currently configured webtrigger URL
with its secret token segment masked. This helps verify which hosted
function you're querying without exposing the credential.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if env := strings.TrimSpace(os.Getenv(config.EnvWebtriggerURL)); env != "" {
			pterm.Println("Using endpoint from " + config.EnvWebtriggerURL + " environment variable")
			pterm.Println()
			showEndpoint(env)
			return nil
		}

		endpoint, err := resolveEndpoint()
		if err != nil {
			pterm.Println("⚠️  No webtrigger endpoint configured")
			pterm.Println("   Please run: fsql connect")
			return nil
		}
		pterm.Println("Using endpoint from OS keychain")
		pterm.Println()
		showEndpoint(endpoint)
		return nil
	},
}

func showEndpoint(endpoint string) {
	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Webtrigger Endpoint")).
		WithPadding(1).
		Println(logging.MaskURL(endpoint))
	pterm.Println()
	pterm.Println("To update this endpoint, run: fsql connect")
	pterm.Println()
}

func init() {
	rootCmd.AddCommand(endpointCmd)
}
