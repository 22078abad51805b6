package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var site string
	var forget bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		Long: `Clear the locally cached token and role flag. No request is made to the
remote API; the token is simply forgotten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(site, forget)
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "Site alias from voltconsole.yaml")
	cmd.Flags().BoolVar(&forget, "forget", false, "Also drop remembered credentials")

	return cmd
}

func runLogout(siteAlias string, forget bool) error {
	site, err := resolveSite(siteAlias)
	if err != nil {
		return err
	}

	ctrl, store := buildSession(site)
	ctrl.Logout()

	if forget {
		if err := store.DeleteCredentials(); err != nil {
			return fmt.Errorf("failed to drop remembered credentials: %w", err)
		}
	}

	fmt.Printf("✓ Logged out of %s\n", site.Alias)
	return nil
}
