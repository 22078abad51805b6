package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voltms/voltconsole/internal/session"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	var site string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the locally cached session without calling the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(site)
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "Site alias from voltconsole.yaml")

	return cmd
}

func runStatus(siteAlias string) error {
	site, err := resolveSite(siteAlias)
	if err != nil {
		return err
	}

	store := session.NewOSStore(site.Alias)

	fmt.Printf("Site: %s (%s)\n", site.Alias, site.BaseURL)

	if _, err := store.LoadToken(); err != nil {
		if errors.Is(err, session.ErrNotStored) {
			fmt.Println("Session: none (not logged in)")
			return nil
		}
		return fmt.Errorf("failed to read session: %w", err)
	}

	fmt.Println("Session: token cached (unverified, run 'voltconsole whoami' to check)")

	isAdmin, err := store.LoadIsAdmin()
	switch {
	case err == nil && isAdmin:
		fmt.Println("Cached role: Admin")
	case err == nil:
		fmt.Println("Cached role: User")
	}

	if creds, err := store.LoadCredentials(); err == nil {
		fmt.Printf("Remembered credentials: %s\n", creds.Username)
	}

	return nil
}
