package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/slotfinder/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Calendar",
		Long: `Run the OAuth flow to authorize read access to Google Calendar.

Visit the printed URL in your browser, sign in with your Google account,
grant access, and paste the authorization code back into the prompt.
Tokens are stored per account and refreshed automatically afterwards.

Requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET to be set in the
environment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(account)
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to authorize (default: 'default')")

	return cmd
}

func runAuth(account string) error {
	if google.HasTokenForAccount(account) {
		fmt.Printf("Account %q is already authorized. Continuing will replace the stored token.\n\n", account)
	}

	fmt.Println("Visit this URL in your browser to authorize access to Google Calendar:")
	fmt.Printf("\n  %s\n\n", google.GetAuthURLForAccount(account))
	fmt.Print("Enter authorization code: ")

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("authorization code must not be empty")
	}

	if err := google.SaveTokenForAccount(context.Background(), account, code); err != nil {
		return fmt.Errorf("failed to save token for account %s: %w", account, err)
	}

	fmt.Printf("\nAuthorization complete. Token stored for account %q.\n", account)
	return nil
}
