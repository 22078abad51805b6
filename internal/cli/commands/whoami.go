package commands

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/voltms/voltconsole/internal/session"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var site string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile behind the current session",
		Long: `Restore the session from the keychain and verify it against the identity
API. A rejected or expired token clears the session, same as logout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(site)
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "Site alias from voltconsole.yaml")

	return cmd
}

func runWhoami(siteAlias string) error {
	site, err := resolveSite(siteAlias)
	if err != nil {
		return err
	}

	ctrl, _ := buildSession(site)
	ctrl.Rehydrate(context.Background())

	snap := ctrl.Snapshot()
	if snap.State == session.StateAnonymous {
		return fmt.Errorf("not authenticated. Please run 'voltconsole login' first")
	}

	fmt.Printf("Site: %s (%s)\n", site.Alias, site.BaseURL)
	fmt.Printf("User: %s (%s)\n", snap.Profile.Name, snap.Profile.Slug)
	if snap.IsAdmin {
		fmt.Println("Role: Admin")
	} else {
		fmt.Println("Role: User")
	}

	printTokenExpiry(snap.Token)
	return nil
}

// printTokenExpiry decodes the token's registered claims without verifying
// the signature; the server already vouched for the token, this is display
// only.
func printTokenExpiry(token string) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return
	}
	if claims.ExpiresAt != nil {
		fmt.Printf("Token expires: %s\n", claims.ExpiresAt.Time.Local().Format("2006-01-02 15:04:05"))
	}
}
