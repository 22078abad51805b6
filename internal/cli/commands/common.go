package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	cliconfig "github.com/voltms/voltconsole/internal/cli/config"
	"github.com/voltms/voltconsole/internal/cli/siteselect"
	"github.com/voltms/voltconsole/internal/identity"
	"github.com/voltms/voltconsole/internal/session"
)

// cliLogger returns a quiet logger for CLI runs; normal output goes through
// fmt, the logger only carries warnings.
func cliLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()
}

// resolveSite loads the project config and picks the site to operate on.
func resolveSite(siteAlias string) (*cliconfig.Site, error) {
	cfg, err := cliconfig.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'voltconsole init' to create a configuration file", err)
	}

	site, err := siteselect.ResolveSite(cfg, siteAlias)
	if err != nil {
		return nil, err
	}

	if site.BaseURL == "" {
		return nil, fmt.Errorf("site %q has no base_url. Please edit %s", site.Alias, cliconfig.ConfigFileName)
	}

	return site, nil
}

// buildSession wires the session core for a site: durable store, identity
// gateway with 401 eviction, and a fresh controller.
func buildSession(site *cliconfig.Site) (*session.Controller, session.Store) {
	log := cliLogger()
	store := session.NewOSStore(site.Alias)
	gateway := identity.New(site.BaseURL, store, log)
	return session.NewController(gateway, store, log), store
}
