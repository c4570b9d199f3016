package cmd

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/chatch/forge-fsql/internal/client"
	"github.com/chatch/forge-fsql/internal/config"
	"github.com/chatch/forge-fsql/internal/keychain"
)

// errNoEndpoint is returned when no webtrigger URL has been configured.
var errNoEndpoint = errors.New("no webtrigger endpoint configured; set " +
	config.EnvWebtriggerURL + " or run: fsql connect")

// resolveEndpoint returns the webtrigger URL from the environment or the
// OS keychain, environment first so scripts and CI can bypass secure
// storage.
func resolveEndpoint() (string, error) {
	if env := strings.TrimSpace(os.Getenv(config.EnvWebtriggerURL)); env != "" {
		return env, nil
	}
	km, err := keychain.GetManager()
	if err != nil {
		return "", errNoEndpoint
	}
	url, err := km.LoadWebtriggerURL()
	if err != nil || strings.TrimSpace(url) == "" {
		return "", errNoEndpoint
	}
	return strings.TrimSpace(url), nil
}

// buildClient resolves the endpoint and constructs the query client with
// the effective timeout (flag > env > config file > default).
func buildClient(flagTimeoutSeconds int) (*client.Client, error) {
	endpoint, err := resolveEndpoint()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		cfg.TimeoutSeconds = config.DefaultTimeoutSeconds
	}
	seconds := config.TimeoutFromEnv(cfg.TimeoutSeconds)
	if flagTimeoutSeconds > 0 {
		seconds = flagTimeoutSeconds
	}

	return client.New(endpoint, time.Duration(seconds)*time.Second), nil
}
