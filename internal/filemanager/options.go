package filemanager

import (
	"slices"

	"mcpscan/internal/config"
	"mcpscan/pkg/fileops"
)

// Options controls which files a Loader accepts.
type Options struct {
	Include       []string
	Exclude       []string
	SkipDirs      []string
	MaxDepth      int
	MaxFileSize   int64
	IncludeHidden bool
}

// DefaultOptions mirrors the defaults of a fresh config file.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig().Scan)
}

// OptionsFromConfig copies the scan section of the user config.
func OptionsFromConfig(scan config.ScanConfig) Options {
	opts := Options{
		Include:       slices.Clone(scan.Include),
		Exclude:       slices.Clone(scan.Exclude),
		SkipDirs:      slices.Clone(scan.SkipDirs),
		MaxDepth:      scan.MaxDepth,
		MaxFileSize:   scan.MaxFileSize,
		IncludeHidden: scan.IncludeHidden,
	}
	if opts.SkipDirs == nil {
		opts.SkipDirs = slices.Clone(fileops.DefaultSkipDirs)
	}
	if opts.MaxDepth < 1 {
		opts.MaxDepth = config.DefaultMaxDepth
	}
	if opts.MaxFileSize < 1 {
		opts.MaxFileSize = config.DefaultMaxFileSize
	}
	return opts
}
