package repository

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"mcpscan/internal/annotation"
	"mcpscan/internal/logging"
)

// DefaultHost is used when a repository reference does not name one.
const DefaultHost = "github.com"

// Source produces the files of one repository.
type Source interface {
	Fetch(ctx context.Context, logger *logging.AppLogger) (*RepositoryData, error)
}

// RepositoryConfig names a remote repository. An empty Branch selects the
// remote's default branch.
type RepositoryConfig struct {
	Host   string `json:"host,omitempty" yaml:"host,omitempty"`
	Owner  string `json:"owner" yaml:"owner"`
	Repo   string `json:"repo" yaml:"repo"`
	Branch string `json:"branch,omitempty" yaml:"branch,omitempty"`
}

// RepositoryData is a fetched repository. Description, Stars and Forks
// are only known when the hosting API could be queried.
type RepositoryData struct {
	Name          string                   `json:"name" yaml:"name"`
	Description   string                   `json:"description" yaml:"description"`
	DefaultBranch string                   `json:"defaultBranch" yaml:"default_branch"`
	Files         []annotation.FileContent `json:"files,omitempty" yaml:"files,omitempty"`
	Stars         int                      `json:"stars" yaml:"stars"`
	Forks         int                      `json:"forks" yaml:"forks"`
}

var (
	namePattern      = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	shorthandPattern = regexp.MustCompile(`^([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)$`)
	sshPattern       = regexp.MustCompile(`^(?:ssh://)?git@([^:/]+)[:/]([^/]+)/(.+?)(?:\.git)?/?$`)
)

// HostOrDefault returns Host, or DefaultHost when it is empty.
func (c RepositoryConfig) HostOrDefault() string {
	if c.Host == "" {
		return DefaultHost
	}
	return c.Host
}

// CloneURL returns the HTTPS clone URL of the repository.
func (c RepositoryConfig) CloneURL() string {
	return fmt.Sprintf("https://%s/%s/%s.git", c.HostOrDefault(), c.Owner, c.Repo)
}

// String returns "owner/repo", with "@branch" when a branch is set.
func (c RepositoryConfig) String() string {
	s := c.Owner + "/" + c.Repo
	if c.HostOrDefault() != DefaultHost {
		s = c.Host + "/" + s
	}
	if c.Branch != "" {
		s += "@" + c.Branch
	}
	return s
}

// Validate checks the owner, repository and branch names.
func (c RepositoryConfig) Validate() error {
	if c.Owner == "" {
		return fmt.Errorf("repository owner cannot be empty")
	}
	if c.Repo == "" {
		return fmt.Errorf("repository name cannot be empty")
	}
	if !namePattern.MatchString(c.Owner) {
		return fmt.Errorf("invalid repository owner %q", c.Owner)
	}
	if !namePattern.MatchString(c.Repo) {
		return fmt.Errorf("invalid repository name %q", c.Repo)
	}
	if c.Branch != "" {
		if strings.Contains(c.Branch, "..") || strings.ContainsAny(c.Branch, " ~^:?*[\\") ||
			strings.HasPrefix(c.Branch, "/") || strings.HasSuffix(c.Branch, "/") {
			return fmt.Errorf("invalid branch name %q", c.Branch)
		}
	}
	return nil
}

// ParseRepositoryURL accepts the forms a user is likely to paste:
//
//	owner/repo
//	https://github.com/owner/repo(.git)
//	https://github.com/owner/repo/tree/branch
//	git@github.com:owner/repo.git
//
// The branch is only set by the /tree/ form.
func ParseRepositoryURL(raw string) (RepositoryConfig, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RepositoryConfig{}, fmt.Errorf("repository URL cannot be empty")
	}

	if m := shorthandPattern.FindStringSubmatch(raw); m != nil {
		cfg := RepositoryConfig{Host: DefaultHost, Owner: m[1], Repo: strings.TrimSuffix(m[2], ".git")}
		return cfg, cfg.Validate()
	}

	if m := sshPattern.FindStringSubmatch(raw); m != nil {
		cfg := RepositoryConfig{Host: m[1], Owner: m[2], Repo: m[3]}
		return cfg, cfg.Validate()
	}

	u, err := url.Parse(raw)
	if err != nil {
		return RepositoryConfig{}, fmt.Errorf("invalid URL format: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return RepositoryConfig{}, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return RepositoryConfig{}, fmt.Errorf("URL missing host component")
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return RepositoryConfig{}, fmt.Errorf("URL path should contain owner/repo: %s", u.Path)
	}

	cfg := RepositoryConfig{
		Host:  u.Host,
		Owner: parts[0],
		Repo:  strings.TrimSuffix(parts[1], ".git"),
	}
	if len(parts) > 3 && parts[2] == "tree" {
		cfg.Branch = strings.Join(parts[3:], "/")
	}
	return cfg, cfg.Validate()
}
