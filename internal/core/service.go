// Package core ties the pieces together: it loads or fetches files,
// analyzes them and wraps the result in a report. The CLI, the HTTP API and
// the MCP server all go through a Service.
package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"mcpscan/internal/annotation"
	"mcpscan/internal/config"
	"mcpscan/internal/filemanager"
	"mcpscan/internal/logging"
	"mcpscan/internal/report"
	"mcpscan/internal/repository"
)

// SourceFactory builds the Source used for a remote repository.
type SourceFactory func(cfg repository.RepositoryConfig, loader *filemanager.Loader) repository.Source

// Option configures a Service.
type Option func(*Service)

// WithSourceFactory replaces the git source, e.g. with a local fixture.
func WithSourceFactory(f SourceFactory) Option {
	return func(s *Service) { s.newSource = f }
}

// WithFetchConcurrency bounds parallel repository fetches.
func WithFetchConcurrency(n int) Option {
	return func(s *Service) { s.concurrency = n }
}

type Service struct {
	cfg         *config.Config
	logger      *logging.AppLogger
	loader      *filemanager.Loader
	analyzer    *annotation.Analyzer
	newSource   SourceFactory
	concurrency int
}

// NewService builds a service from cfg. A nil cfg means defaults.
func NewService(cfg *config.Config, logger *logging.AppLogger, opts ...Option) (*Service, error) {
	if cfg == nil {
		defaults := config.DefaultConfig()
		cfg = &defaults
	}

	loader, err := filemanager.NewLoader(filemanager.OptionsFromConfig(cfg.Scan), logger)
	if err != nil {
		return nil, fmt.Errorf("invalid scan options: %w", err)
	}

	s := &Service{
		cfg:    cfg,
		logger: logger,
		loader: loader,
		analyzer: annotation.NewAnalyzer(logger, annotation.ExtractOptions{
			StringAware: cfg.Parser.StringAwareBraces,
		}),
		newSource: func(rc repository.RepositoryConfig, l *filemanager.Loader) repository.Source {
			return repository.NewGitSource(rc, l)
		},
		concurrency: repository.DefaultFetchConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) Config() *config.Config {
	return s.cfg
}

func (s *Service) Loader() *filemanager.Loader {
	return s.loader
}

// AnalyzeFiles analyzes files that are already in memory.
func (s *Service) AnalyzeFiles(files []annotation.FileContent) *report.Report {
	return report.New(s.analyzer.Analyze(files), len(files), nil)
}

// AnalyzeCode analyzes one pasted file. An empty path becomes
// filemanager.PastedPath.
func (s *Service) AnalyzeCode(path, code string) *report.Report {
	return s.AnalyzeFiles([]annotation.FileContent{filemanager.FromString(path, code)})
}

// AnalyzePaths loads files and directories named on a command line, "-"
// being stdin, and analyzes them together.
func (s *Service) AnalyzePaths(args []string, stdin io.Reader) (*report.Report, error) {
	files, err := s.loader.LoadPaths(args, stdin)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeFiles(files), nil
}

// AnalyzeDirectory analyzes a local directory and reports it as a
// repository named after the directory.
func (s *Service) AnalyzeDirectory(ctx context.Context, path string) (*report.Report, error) {
	data, err := repository.NewLocalSource(path, s.loader).Fetch(ctx, s.logger)
	if err != nil {
		return nil, err
	}
	return report.New(s.analyzer.Analyze(data.Files), len(data.Files), data), nil
}

// AnalyzeRepository fetches a remote repository and analyzes its files.
// Fetch failures are *repository.FetchError.
func (s *Service) AnalyzeRepository(ctx context.Context, rc repository.RepositoryConfig) (*report.Report, error) {
	reports, err := s.AnalyzeRepositories(ctx, []repository.RepositoryConfig{rc})
	if err != nil {
		return nil, err
	}
	return reports[0], nil
}

// AnalyzeRepositories fetches repositories concurrently and returns one
// report per repository, in order.
func (s *Service) AnalyzeRepositories(ctx context.Context, rcs []repository.RepositoryConfig) ([]*report.Report, error) {
	start := time.Now()

	sources := make([]repository.Source, len(rcs))
	for i, rc := range rcs {
		sources[i] = s.newSource(rc, s.loader)
	}

	fetched, err := repository.FetchAll(ctx, sources, s.concurrency, s.logger)
	if err != nil {
		return nil, err
	}

	reports := make([]*report.Report, len(fetched))
	for i, data := range fetched {
		reports[i] = report.New(s.analyzer.Analyze(data.Files), len(data.Files), data)
	}

	if s.logger != nil {
		s.logger.LogPerformance("core.AnalyzeRepositories", start)
	}
	return reports, nil
}
