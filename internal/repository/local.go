package repository

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"mcpscan/internal/filemanager"
	"mcpscan/internal/logging"
	"mcpscan/pkg/fileops"
)

// LocalSource is a directory on disk.
type LocalSource struct {
	Path   string
	Loader *filemanager.Loader
}

func NewLocalSource(path string, loader *filemanager.Loader) *LocalSource {
	return &LocalSource{Path: path, Loader: loader}
}

// Fetch loads the directory. The repository name is the directory's base
// name; there is no branch.
func (ls *LocalSource) Fetch(ctx context.Context, logger *logging.AppLogger) (*RepositoryData, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Message: "local fetch was cancelled", Status: http.StatusInternalServerError, Err: err}
	}

	root, err := fileops.ResolveScanRoot(ls.Path)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, os.ErrNotExist) {
			status = http.StatusNotFound
		}
		return nil, &FetchError{Message: err.Error(), Status: status, Err: err}
	}

	loader := ls.Loader
	if loader == nil {
		if loader, err = filemanager.NewLoader(filemanager.DefaultOptions(), logger); err != nil {
			return nil, err
		}
	}

	files, err := loader.LoadDirectory(root)
	if err != nil {
		return nil, &FetchError{Message: err.Error(), Status: http.StatusInternalServerError, Err: err}
	}

	return &RepositoryData{
		Name:  filepath.Base(root),
		Files: files,
	}, nil
}

func (ls *LocalSource) String() string {
	return ls.Path
}
