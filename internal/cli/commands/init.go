package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voltms/voltconsole/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var alias string

	cmd := &cobra.Command{
		Use:   "init <api-base-url>",
		Short: "Register a site in voltconsole.yaml",
		Long: `Add a WordPress site to ./voltconsole.yaml, creating the file if needed.
The base URL is the REST API root, e.g. https://voltms.com/wp-json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0], alias)
		},
	}

	cmd.Flags().StringVar(&alias, "alias", "", "Alias for the site (default: derived from position)")

	return cmd
}

func runInit(baseURL, alias string) error {
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return fmt.Errorf("base URL must start with http:// or https://")
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Printf("Found existing %s\n", config.ConfigFileName)
	} else {
		cfg = &config.Config{}
		isNewConfig = true
	}

	for _, site := range cfg.Sites {
		if site.BaseURL == baseURL {
			fmt.Printf("Site %s already exists in %s as %q\n", baseURL, config.ConfigFileName, site.Alias)
			return nil
		}
	}

	if alias == "" {
		if len(cfg.Sites) == 0 {
			alias = "production"
		} else {
			alias = fmt.Sprintf("site-%d", len(cfg.Sites)+1)
		}
	}
	if _, err := cfg.GetSiteByAlias(alias); err == nil {
		return fmt.Errorf("alias %q is already taken", alias)
	}

	cfg.Sites = append(cfg.Sites, config.Site{
		Alias:   alias,
		BaseURL: baseURL,
	})

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if isNewConfig {
		fmt.Printf("✓ Created ./%s with site %s (%s)\n", config.ConfigFileName, baseURL, alias)
	} else {
		fmt.Printf("✓ Added site %s (%s) to ./%s\n", baseURL, alias, config.ConfigFileName)
	}

	return nil
}
