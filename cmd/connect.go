package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/chatch/forge-fsql/internal/client"
	"github.com/chatch/forge-fsql/internal/config"
	"github.com/chatch/forge-fsql/internal/httperrors"
	"github.com/chatch/forge-fsql/internal/keychain"
	"github.com/chatch/forge-fsql/internal/terminal"
)

// connectCmd configures the webtrigger endpoint. It prompts for the URL
// (which embeds a secret token, so the typed input is wiped from the
// terminal afterwards), probes it with a trivial statement, and stores it
// in the OS keychain.
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Configure and verify the webtrigger endpoint",
	Long: `The connect command prompts for the webtrigger URL of the hosted query
function, verifies it by executing a trivial probe statement, and stores
it securely in the OS keychain for future sessions.

The URL embeds a secret token; it is wiped from the terminal after entry
and never written to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		reader := bufio.NewReader(os.Stdin)
		promptText := "Enter webtrigger URL (e.g., https://<app>.example-dev.net/x1/<token>): "
		fmt.Print(promptText)
		rawURL, _ := reader.ReadString('\n')
		rawURL = strings.TrimSpace(rawURL)

		// Wipe the prompt and the token-bearing input from the terminal.
		terminal.ClearPreviousLines(len(promptText) + len(rawURL))

		if rawURL == "" {
			return errors.New("webtrigger URL is required")
		}
		if err := validateEndpointURL(rawURL); err != nil {
			pterm.Println("❌ " + err.Error())
			pterm.Println("   Example: https://<app>.example-dev.net/x1/<token>")
			return err
		}

		stopSpinner := terminal.StartSpinner(os.Stdout, "verifying endpoint")
		cl := client.New(rawURL, 10*time.Second)
		res := cl.Execute(ctx, "SELECT 1")
		stopSpinner()

		if res.Error != "" {
			host := httperrors.ExtractHostFromURL(rawURL)
			return httperrors.FormatNetworkError(errors.New(res.Error), "verifying "+host)
		}

		km, err := keychain.GetManager()
		if err != nil {
			pterm.Println("❌ Secure storage is not available on this system.")
			pterm.Println("   Endpoint verified but not saved; export " + config.EnvWebtriggerURL + " instead.")
			return err
		}
		if err := km.SaveWebtriggerURL(rawURL); err != nil {
			pterm.Println("❌ Failed to save the endpoint securely.")
			return err
		}

		if cfg, err := config.Load(); err == nil {
			cfg.Endpoint.Provided = true
			_ = config.Save(cfg)
		}

		pterm.Println("✅ Endpoint verified and saved!")
		pterm.Println("   You're ready to run 'fsql'")
		return nil
	},
}

// validateEndpointURL checks that the input is an absolute http(s) URL.
func validateEndpointURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("URL must use http or https")
	}
	if u.Host == "" {
		return errors.New("URL is missing a host")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(connectCmd)
}
