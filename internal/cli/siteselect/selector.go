package siteselect

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/voltms/voltconsole/internal/cli/config"
	"github.com/voltms/voltconsole/internal/cli/userconfig"
)

// ResolveSite determines which site to use based on the following priority:
// 1. If siteAlias is provided, use that site
// 2. If the user has a selected site in their local config, use that
// 3. If only one site is configured, use that
// 4. Otherwise, prompt the user to select a site interactively
func ResolveSite(projectConfig *config.Config, siteAlias string) (*config.Site, error) {
	if siteAlias != "" {
		return projectConfig.GetSiteByAlias(siteAlias)
	}

	selected, err := userconfig.GetSelectedSite()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if selected != "" {
		site, err := projectConfig.GetSiteByAlias(selected)
		if err != nil {
			// Selected site no longer exists in project config, clear it and continue
			_ = userconfig.SetSelectedSite("")
		} else {
			return site, nil
		}
	}

	if len(projectConfig.Sites) == 1 {
		site := &projectConfig.Sites[0]
		if err := userconfig.SetSelectedSite(site.Alias); err != nil {
			fmt.Printf("Warning: failed to save selected site: %v\n", err)
		}
		return site, nil
	}

	site, err := PromptSiteSelection(projectConfig)
	if err != nil {
		return nil, err
	}

	if err := userconfig.SetSelectedSite(site.Alias); err != nil {
		fmt.Printf("Warning: failed to save selected site: %v\n", err)
	}

	return site, nil
}

// PromptSiteSelection shows an interactive prompt for the user to select a site
func PromptSiteSelection(projectConfig *config.Config) (*config.Site, error) {
	if len(projectConfig.Sites) == 0 {
		return nil, fmt.Errorf("no sites configured in %s", config.ConfigFileName)
	}

	labels := make([]string, len(projectConfig.Sites))
	for i, site := range projectConfig.Sites {
		labels[i] = fmt.Sprintf("%s (%s)", site.Alias, site.BaseURL)
	}

	prompt := promptui.Select{
		Label: "Select a site",
		Items: labels,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site selection cancelled: %w", err)
	}

	return &projectConfig.Sites[idx], nil
}
