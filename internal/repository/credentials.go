package repository

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	credentialService = "mcpscan"
	githubTokenKey    = "github_pat"

	// TokenEnvVar overrides the stored token. GITHUB_TOKEN is honoured as
	// well when it is unset.
	TokenEnvVar = "MCPSCAN_GITHUB_TOKEN"
)

// ErrNoToken is returned when neither the environment nor the credential
// store holds a token.
var ErrNoToken = errors.New("no GitHub token configured")

// CredentialManager reads and writes the GitHub Personal Access Token in
// the OS credential store.
type CredentialManager struct {
	service string
}

func NewCredentialManager() *CredentialManager {
	return &CredentialManager{service: credentialService}
}

// StoreGitHubToken validates the token format and stores it.
func (cm *CredentialManager) StoreGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if err := validateTokenFormat(token); err != nil {
		return fmt.Errorf("invalid token format: %w", err)
	}
	if err := keyring.Set(cm.service, githubTokenKey, token); err != nil {
		return fmt.Errorf("failed to store token in credential store: %w", err)
	}
	return nil
}

// GetGitHubToken returns the token from the environment if set, otherwise
// from the credential store. ErrNoToken is wrapped when there is none.
func (cm *CredentialManager) GetGitHubToken() (string, error) {
	for _, name := range []string{TokenEnvVar, "GITHUB_TOKEN"} {
		if token := strings.TrimSpace(os.Getenv(name)); token != "" {
			return token, nil
		}
	}

	token, err := keyring.Get(cm.service, githubTokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w - run 'mcpscan auth login' or set %s", ErrNoToken, TokenEnvVar)
		}
		return "", fmt.Errorf("failed to retrieve token from credential store: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w - stored token is empty", ErrNoToken)
	}
	return token, nil
}

// DeleteGitHubToken removes the stored token. A missing token is not an
// error.
func (cm *CredentialManager) DeleteGitHubToken() error {
	err := keyring.Delete(cm.service, githubTokenKey)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from credential store: %w", err)
	}
	return nil
}

// HasGitHubToken reports whether a token is available without returning it.
func (cm *CredentialManager) HasGitHubToken() bool {
	_, err := cm.GetGitHubToken()
	return err == nil
}

// validateTokenFormat checks the prefixes GitHub uses for its token types.
func validateTokenFormat(token string) error {
	if len(token) < 20 {
		return fmt.Errorf("token too short (minimum 20 characters)")
	}
	for _, prefix := range []string{"ghp_", "github_pat_", "gho_", "ghu_", "ghs_"} {
		if strings.HasPrefix(token, prefix) {
			return nil
		}
	}
	return fmt.Errorf("token does not match expected GitHub PAT format (should start with ghp_ or github_pat_)")
}
