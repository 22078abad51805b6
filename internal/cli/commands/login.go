package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/voltms/voltconsole/internal/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var username, password, site string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the site's identity API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(username, password, site, remember)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (or set VOLT_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set VOLT_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&site, "site", "", "Site alias from voltconsole.yaml")
	cmd.Flags().BoolVar(&remember, "remember", false, "Remember these credentials in the OS keychain")

	return cmd
}

func runLogin(username, password, siteAlias string, remember bool) error {
	// Check for environment variables (useful for CI/CD)
	if username == "" {
		username = os.Getenv("VOLT_USERNAME")
	}
	if password == "" {
		password = os.Getenv("VOLT_PASSWORD")
	}

	site, err := resolveSite(siteAlias)
	if err != nil {
		return err
	}

	ctrl, store := buildSession(site)

	// Prefill from remembered credentials when nothing was supplied
	if username == "" && password == "" {
		if creds, err := store.LoadCredentials(); err == nil {
			username = creds.Username
			password = creds.Password
			fmt.Printf("Using remembered credentials for %s\n", username)
		} else if !errors.Is(err, session.ErrNotStored) {
			fmt.Printf("Warning: failed to load remembered credentials: %v\n", err)
		}
	}

	if username == "" {
		if !term.IsTerminal(int(syscall.Stdin)) {
			return fmt.Errorf("username is required in non-interactive mode (use --username flag or VOLT_USERNAME env var)")
		}
		fmt.Print("Username: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(line)
		if username == "" {
			return fmt.Errorf("username is required")
		}
	}

	if password == "" {
		if !term.IsTerminal(int(syscall.Stdin)) {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or VOLT_PASSWORD env var)")
		}
		fmt.Print("Password: ")
		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(bytePassword)
		fmt.Println() // New line after password input
	}

	fmt.Printf("Logging in to %s (%s)...\n", site.Alias, site.BaseURL)

	profile, err := ctrl.Login(context.Background(), username, password, remember)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s\n", profile.Name)
	if profile.IsSuperAdmin {
		fmt.Println("  Role: Admin")
	}
	if remember {
		fmt.Println("  Credentials remembered in the OS keychain")
	}

	return nil
}
