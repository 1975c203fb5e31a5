package repository

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	githttp "github.com/go-git/go-git/v6/plumbing/transport/http"
	"github.com/go-git/go-git/v6/storage/memory"

	"mcpscan/internal/annotation"
	"mcpscan/internal/filemanager"
	"mcpscan/internal/logging"
	"mcpscan/pkg/fileops"
)

type cloneFunc func(ctx context.Context, opts *git.CloneOptions) (*git.Repository, error)

// GitSource fetches a remote repository without touching the disk: the
// clone lives in memory storage and files are read from the HEAD tree.
type GitSource struct {
	Config RepositoryConfig

	// URL overrides Config.CloneURL(), e.g. for a local path.
	URL string
	// Depth of the clone; 0 fetches full history.
	Depth int

	Loader      *filemanager.Loader
	Credentials *CredentialManager
	// Metadata is queried for description, stars and forks. Nil skips it.
	Metadata *MetadataClient

	clone cloneFunc
}

// NewGitSource returns a shallow, single-branch source for cfg. GitHub
// metadata is looked up when the repository is hosted on github.com.
func NewGitSource(cfg RepositoryConfig, loader *filemanager.Loader) *GitSource {
	gs := &GitSource{
		Config:      cfg,
		Depth:       1,
		Loader:      loader,
		Credentials: NewCredentialManager(),
	}
	if cfg.HostOrDefault() == DefaultHost {
		gs.Metadata = NewMetadataClient()
	}
	return gs
}

func (gs *GitSource) remoteURL() string {
	if gs.URL != "" {
		return gs.URL
	}
	return gs.Config.CloneURL()
}

// Fetch clones the repository and returns the files that pass the loader.
func (gs *GitSource) Fetch(ctx context.Context, logger *logging.AppLogger) (*RepositoryData, error) {
	start := time.Now()
	target := gs.remoteURL()

	if gs.URL == "" {
		if err := gs.Config.Validate(); err != nil {
			return nil, &FetchError{Message: err.Error(), Status: http.StatusBadRequest, Err: err}
		}
	}
	if gs.Loader == nil {
		loader, err := filemanager.NewLoader(filemanager.DefaultOptions(), logger)
		if err != nil {
			return nil, err
		}
		gs.Loader = loader
	}

	if logger != nil {
		logger.Info("Fetching git repository", "url", target, "branch", gs.Config.Branch)
	}

	repo, err := gs.cloneWithAuth(ctx, target, logger)
	if err != nil {
		return nil, translateCloneError(err, target)
	}

	files, branch, err := readTree(repo, gs.Loader, logger)
	if err != nil {
		return nil, &FetchError{Message: "failed to read repository tree: " + err.Error(), Status: http.StatusInternalServerError, Err: err}
	}

	data := &RepositoryData{
		Name:          gs.Config.Repo,
		DefaultBranch: branch,
		Files:         files,
	}
	if data.Name == "" {
		data.Name = nameFromURL(target)
	}

	if gs.Metadata != nil && gs.Config.Owner != "" {
		meta, err := gs.Metadata.Get(ctx, gs.Config.Owner, gs.Config.Repo, gs.token())
		if err != nil {
			if logger != nil {
				logger.Warn("Repository metadata unavailable", "repo", gs.Config.String(), "error", err)
			}
		} else {
			data.Description = meta.Description
			data.Stars = meta.Stars
			data.Forks = meta.Forks
			if gs.Config.Branch == "" && meta.DefaultBranch != "" {
				data.DefaultBranch = meta.DefaultBranch
			}
		}
	}

	if logger != nil {
		logger.Info("Git repository fetched", "url", target, "branch", data.DefaultBranch, "files", len(files))
		logger.LogPerformance("repository.GitSource.Fetch", start)
	}
	return data, nil
}

// cloneWithAuth tries the remote without credentials first and retries
// with the stored token only when the remote rejects anonymous access.
func (gs *GitSource) cloneWithAuth(ctx context.Context, target string, logger *logging.AppLogger) (*git.Repository, error) {
	repo, err := gs.performClone(ctx, target, nil)
	if err == nil {
		return repo, nil
	}
	if !isAuthenticationError(err) {
		return nil, err
	}

	if logger != nil {
		logger.Debug("Public access failed, trying with authentication", "url", target)
	}

	auth, authErr := gs.authentication()
	if authErr != nil {
		return nil, &FetchError{
			Message: "authentication required for " + target + ": " + authErr.Error(),
			Status:  http.StatusUnauthorized,
			Err:     authErr,
		}
	}
	return gs.performClone(ctx, target, auth)
}

func (gs *GitSource) performClone(ctx context.Context, target string, auth *githttp.BasicAuth) (*git.Repository, error) {
	opts := &git.CloneOptions{
		URL:   target,
		Depth: gs.Depth,
	}
	if auth != nil {
		opts.Auth = auth
	}
	if gs.Config.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(gs.Config.Branch)
		opts.SingleBranch = true
	}

	clone := gs.clone
	if clone == nil {
		clone = cloneInMemory
	}
	return clone(ctx, opts)
}

func cloneInMemory(ctx context.Context, opts *git.CloneOptions) (*git.Repository, error) {
	return git.CloneContext(ctx, memory.NewStorage(), nil, opts)
}

// authentication builds GitHub PAT basic auth (username "token").
func (gs *GitSource) authentication() (*githttp.BasicAuth, error) {
	credentials := gs.Credentials
	if credentials == nil {
		credentials = NewCredentialManager()
	}
	token, err := credentials.GetGitHubToken()
	if err != nil {
		return nil, err
	}
	return &githttp.BasicAuth{Username: "token", Password: token}, nil
}

func (gs *GitSource) token() string {
	if gs.Credentials == nil {
		return ""
	}
	token, err := gs.Credentials.GetGitHubToken()
	if err != nil {
		return ""
	}
	return token
}

// readTree returns the accepted files of the HEAD commit sorted by path,
// and the branch HEAD points at.
func readTree(repo *git.Repository, loader *filemanager.Loader, logger *logging.AppLogger) ([]annotation.FileContent, string, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, "", fmt.Errorf("failed to load HEAD commit: %w", err)
	}
	iter, err := commit.Files()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list files: %w", err)
	}
	defer iter.Close()

	maxSize := loader.Options().MaxFileSize
	var files []annotation.FileContent
	err = iter.ForEach(func(f *object.File) error {
		if fileops.ValidateRelativePath(f.Name) != nil || !loader.MatchPath(f.Name) {
			return nil
		}
		if f.Size > maxSize {
			skipTreeFile(logger, f.Name, fmt.Sprintf("larger than %d bytes", maxSize))
			return nil
		}
		if binary, err := f.IsBinary(); err == nil && binary {
			skipTreeFile(logger, f.Name, "binary content")
			return nil
		}

		content, err := f.Contents()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		if reason := loader.Accept(f.Name, []byte(content)); reason != "" {
			skipTreeFile(logger, f.Name, reason)
			return nil
		}

		files = append(files, annotation.FileContent{
			Path:        f.Name,
			Content:     content,
			ContentHash: f.Hash.String(),
		})
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	slices.SortFunc(files, func(a, b annotation.FileContent) int {
		return strings.Compare(a.Path, b.Path)
	})

	branch := ""
	if head.Name().IsBranch() {
		branch = head.Name().Short()
	}
	return files, branch, nil
}

func skipTreeFile(logger *logging.AppLogger, name, reason string) {
	if logger != nil {
		logger.Debug("Skipping file", "path", name, "reason", reason)
	}
}

// nameFromURL derives a repository name from the last path element.
func nameFromURL(target string) string {
	target = strings.TrimRight(target, "/\\")
	target = strings.TrimSuffix(target, ".git")
	target = strings.TrimRight(target, "/\\")
	if i := strings.LastIndexAny(target, "/\\:"); i >= 0 {
		target = target[i+1:]
	}
	return target
}
