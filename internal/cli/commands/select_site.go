package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voltms/voltconsole/internal/cli/config"
	"github.com/voltms/voltconsole/internal/cli/siteselect"
	"github.com/voltms/voltconsole/internal/cli/userconfig"
)

// NewSelectSiteCmd creates the select-site command
func NewSelectSiteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select-site",
		Short: "Choose which configured site later commands operate on",
		RunE:  runSelectSite,
	}
}

func runSelectSite(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nRun 'voltconsole init' to create a configuration file", err)
	}

	site, err := siteselect.PromptSiteSelection(cfg)
	if err != nil {
		return err
	}

	if err := userconfig.SetSelectedSite(site.Alias); err != nil {
		return fmt.Errorf("failed to save selected site: %w", err)
	}

	fmt.Printf("✓ Selected site %s (%s)\n", site.Alias, site.BaseURL)
	return nil
}
