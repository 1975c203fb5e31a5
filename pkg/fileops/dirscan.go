package fileops

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// ScanOptions configures a directory walk.
type ScanOptions struct {
	// MaxDepth limits recursion. Entries directly inside the root are at
	// depth 1.
	MaxDepth int

	// IncludeHidden includes files and directories whose names start with '.'.
	IncludeHidden bool

	// SkipDirs holds directory names (not paths) that are never entered.
	SkipDirs []string

	// Match, when set, decides whether a file is reported. It receives the
	// slash-separated path relative to the root.
	Match func(rel string) bool

	// SkipUnreadable skips entries that cannot be opened or stat'ed instead
	// of failing the whole walk.
	SkipUnreadable bool
}

// FileInfo describes one regular file found by a scan.
type FileInfo struct {
	// Name is the base filename
	Name string
	// Path is slash-separated and relative to the scan root
	Path    string
	Size    int64
	ModTime time.Time
}

// DefaultSkipDirs are directories that rarely hold hand-written sources.
var DefaultSkipDirs = []string{
	".git",
	"node_modules",
	"vendor",
	"dist",
	"build",
	"target",
	".next",
	".cache",
	"__pycache__",
}

// DefaultScanOptions returns the options used when none are given.
func DefaultScanOptions() *ScanOptions {
	return &ScanOptions{
		MaxDepth:       15,
		SkipDirs:       slices.Clone(DefaultSkipDirs),
		SkipUnreadable: true,
	}
}

// Scanner walks one directory tree inside an os.Root, so no entry it reads
// can resolve outside the tree.
type Scanner struct {
	root     *os.Root
	rootPath string
	// realRoot is rootPath with symlinks resolved.
	realRoot string
	opts     *ScanOptions
	visited  map[string]bool
}

// NewScanner opens scanPath for walking. opts may be nil. The caller must
// Close the scanner.
func NewScanner(scanPath string, opts *ScanOptions) (*Scanner, error) {
	if opts == nil {
		opts = DefaultScanOptions()
	}
	if opts.MaxDepth < 1 {
		return nil, fmt.Errorf("max depth must be at least 1, got %d", opts.MaxDepth)
	}

	absPath, err := ResolveScanRoot(scanPath)
	if err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot create secure scan root: %w", err)
	}

	realRoot, err := canonical(absPath)
	if err != nil {
		root.Close()
		return nil, fmt.Errorf("cannot resolve scan root: %w", err)
	}

	return &Scanner{root: root, rootPath: absPath, realRoot: realRoot, opts: opts}, nil
}

// Root returns the absolute path of the scanned directory.
func (s *Scanner) Root() string {
	return s.rootPath
}

// Close releases the underlying root. It is safe to call more than once.
func (s *Scanner) Close() error {
	if s.root == nil {
		return nil
	}
	err := s.root.Close()
	s.root = nil
	return err
}

// Scan walks the tree and returns every matching regular file in lexical
// order.
func (s *Scanner) Scan() ([]FileInfo, error) {
	if s.root == nil {
		return nil, fmt.Errorf("scanner has been closed")
	}

	s.visited = make(map[string]bool)
	var results []FileInfo
	if err := s.walk(".", 1, &results); err != nil {
		return nil, fmt.Errorf("directory scan failed: %w", err)
	}
	return results, nil
}

// ReadFile reads a file by its slash-separated path relative to the root.
func (s *Scanner) ReadFile(rel string) ([]byte, error) {
	if s.root == nil {
		return nil, fmt.Errorf("scanner has been closed")
	}

	target, err := s.inRoot(rel)
	if err != nil {
		return nil, err
	}
	f, err := s.root.Open(target)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func (s *Scanner) walk(dir string, depth int, results *[]FileInfo) error {
	if depth > s.opts.MaxDepth {
		return nil
	}

	// Symlinked directories can lead back to an ancestor.
	target, err := s.inRoot(dir)
	if err != nil {
		return s.skipOrFail(err)
	}
	if s.visited[target] {
		return nil
	}
	s.visited[target] = true

	f, err := s.root.Open(target)
	if err != nil {
		return s.skipOrFail(fmt.Errorf("failed to open directory %s: %w", dir, err))
	}
	entries, err := f.ReadDir(-1)
	f.Close()
	if err != nil {
		return s.skipOrFail(fmt.Errorf("failed to read directory %s: %w", dir, err))
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})

	for _, entry := range entries {
		name := entry.Name()
		if !s.opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		rel := path.Join(dir, name)

		info, err := s.stat(entry, rel)
		if err != nil {
			if err := s.skipOrFail(err); err != nil {
				return err
			}
			continue
		}

		if info.IsDir() {
			if slices.Contains(s.opts.SkipDirs, name) {
				continue
			}
			if err := s.walk(rel, depth+1, results); err != nil {
				return err
			}
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}
		if s.opts.Match != nil && !s.opts.Match(rel) {
			continue
		}

		*results = append(*results, FileInfo{
			Name:    name,
			Path:    rel,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return nil
}

// stat returns the info of an entry, following a symlink only when its
// target stays inside the root.
func (s *Scanner) stat(entry fs.DirEntry, rel string) (fs.FileInfo, error) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Info()
	}

	full := filepath.Join(s.rootPath, filepath.FromSlash(rel))
	if err := ValidateSymlinkContainment(full, s.rootPath); err != nil {
		return nil, err
	}
	target, err := s.inRoot(rel)
	if err != nil {
		return nil, err
	}
	return s.root.Stat(target)
}

// inRoot resolves every symlink along rel and returns the result relative
// to the real root. os.Root refuses links with absolute targets even when
// they point inside the tree, so lookups go through this path instead.
func (s *Scanner) inRoot(rel string) (string, error) {
	full := filepath.Join(s.rootPath, filepath.FromSlash(rel))
	resolved, err := filepath.EvalSymlinks(full)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", rel, err)
	}
	target, err := filepath.Rel(s.realRoot, resolved)
	if err != nil || target == ".." || strings.HasPrefix(target, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes scan root: %s -> %s", rel, resolved)
	}
	return target, nil
}

func (s *Scanner) skipOrFail(err error) error {
	if s.opts.SkipUnreadable {
		return nil
	}
	return err
}

// Scan is a convenience wrapper that opens, walks and closes a scanner.
func Scan(scanPath string, opts *ScanOptions) ([]FileInfo, error) {
	scanner, err := NewScanner(scanPath, opts)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	return scanner.Scan()
}
