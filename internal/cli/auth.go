package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mcpscan/internal/repository"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the GitHub token used for private repositories",
	}

	var token string
	login := &cobra.Command{
		Use:   "login",
		Short: "Store a GitHub Personal Access Token in the OS credential store",
		Long: `Login stores a GitHub Personal Access Token in the OS credential store. The
token is read from --token or, when that is not given, from the first line of
stdin. $` + repository.TokenEnvVar + ` and $GITHUB_TOKEN take precedence over the
stored token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "GitHub token: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = strings.TrimSpace(line)
			}
			if err := repository.NewCredentialManager().StoreGitHubToken(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token stored")
			return nil
		},
	}
	login.Flags().StringVar(&token, "token", "", "Token to store (read from stdin when omitted)")
	cmd.AddCommand(login)

	cmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Remove the stored GitHub token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := repository.NewCredentialManager().DeleteGitHubToken(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token removed")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether a GitHub token is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := repository.NewCredentialManager().GetGitHubToken(); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Not authenticated: %v\n", err)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Authenticated: GitHub token available")
			return nil
		},
	})

	return cmd
}
