package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/chatch/forge-fsql/internal/config"
	"github.com/chatch/forge-fsql/internal/keychain"
)

// disconnectCmd removes the stored webtrigger endpoint from the keychain.
var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Remove the stored webtrigger endpoint",
	Long: `The disconnect command removes the webtrigger URL from the OS keychain.
It does not affect an endpoint supplied through the ` + config.EnvWebtriggerURL + `
environment variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			pterm.Println("⚠️  Secure storage is not available on this system; nothing to remove.")
			return nil
		}
		if err := km.ClearWebtriggerURL(); err != nil {
			return err
		}

		if cfg, err := config.Load(); err == nil {
			cfg.Endpoint.Provided = false
			_ = config.Save(cfg)
		}

		pterm.Println("✅ Endpoint removed.")
		pterm.Println("   Run 'fsql connect' to configure a new one.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
}
