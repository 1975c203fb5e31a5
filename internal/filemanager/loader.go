package filemanager

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"mcpscan/internal/annotation"
	"mcpscan/internal/logging"
	"mcpscan/pkg/fileops"
)

// PastedPath is the path given to content read from stdin or a request body
// when the caller does not name it.
const PastedPath = "input.ts"

// markdownExtensions are checked for a front matter opt-out.
var markdownExtensions = []string{
	".md", ".mdx", ".mdown", ".mkd", ".markdown",
}

// scanMatter is the front matter a Markdown file can carry to keep itself
// out of the analysis:
//
//	---
//	mcpscan:
//	  ignore: true
//	---
type scanMatter struct {
	Mcpscan struct {
		Ignore bool `yaml:"ignore" toml:"ignore" json:"ignore"`
	} `yaml:"mcpscan" toml:"mcpscan" json:"mcpscan"`
}

// Loader reads files that pass its Options.
type Loader struct {
	opts   Options
	filter *Filter
	logger *logging.AppLogger
}

// NewLoader compiles the filter patterns of opts. logger may be nil.
func NewLoader(opts Options, logger *logging.AppLogger) (*Loader, error) {
	filter, err := NewFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}
	if opts.MaxDepth < 1 {
		opts.MaxDepth = DefaultOptions().MaxDepth
	}
	if opts.MaxFileSize < 1 {
		opts.MaxFileSize = DefaultOptions().MaxFileSize
	}
	return &Loader{opts: opts, filter: filter, logger: logger}, nil
}

// Options returns the effective options, with defaults filled in.
func (l *Loader) Options() Options {
	return l.opts
}

// MatchPath reports whether a slash-separated relative path passes the
// include and exclude patterns and does not sit in a skipped or hidden
// directory.
func (l *Loader) MatchPath(rel string) bool {
	segments := strings.Split(rel, "/")
	for i, seg := range segments {
		if !l.opts.IncludeHidden && strings.HasPrefix(seg, ".") {
			return false
		}
		if i < len(segments)-1 && slices.Contains(l.opts.SkipDirs, seg) {
			return false
		}
	}
	if len(segments)-1 >= l.opts.MaxDepth {
		return false
	}
	return l.filter.Match(rel)
}

// Accept decides whether already read content should be analyzed. The
// returned reason is empty when it should.
func (l *Loader) Accept(rel string, data []byte) string {
	if int64(len(data)) > l.opts.MaxFileSize {
		return fmt.Sprintf("larger than %d bytes", l.opts.MaxFileSize)
	}
	if fileops.IsProbablyBinary(data) {
		return "binary content"
	}
	if isMarkdownFile(rel) && optsOut(data) {
		return "opted out in front matter"
	}
	return ""
}

// LoadDirectory walks root and returns the accepted files in walk order,
// with paths relative to root.
func (l *Loader) LoadDirectory(root string) ([]annotation.FileContent, error) {
	start := time.Now()

	scanner, err := fileops.NewScanner(root, &fileops.ScanOptions{
		MaxDepth:       l.opts.MaxDepth,
		IncludeHidden:  l.opts.IncludeHidden,
		SkipDirs:       l.opts.SkipDirs,
		Match:          l.filter.Match,
		SkipUnreadable: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create directory scanner: %w", err)
	}
	defer scanner.Close()

	infos, err := scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	files := make([]annotation.FileContent, 0, len(infos))
	for _, info := range infos {
		if info.Size > l.opts.MaxFileSize {
			l.skip(info.Path, fmt.Sprintf("larger than %d bytes", l.opts.MaxFileSize))
			continue
		}

		data, err := scanner.ReadFile(info.Path)
		if err != nil {
			l.skip(info.Path, err.Error())
			continue
		}
		if reason := l.Accept(info.Path, data); reason != "" {
			l.skip(info.Path, reason)
			continue
		}

		files = append(files, newFileContent(info.Path, data))
	}

	if l.logger != nil {
		l.logger.Debug("Loaded directory", "root", scanner.Root(), "scanned", len(infos), "accepted", len(files))
		l.logger.LogPerformance("filemanager.LoadDirectory", start)
	}
	return files, nil
}

// LoadFile reads a single file named on the command line. Include and
// exclude patterns do not apply: naming a file is an explicit request.
func (l *Loader) LoadFile(name string) (annotation.FileContent, error) {
	info, err := os.Stat(name)
	if err != nil {
		return annotation.FileContent{}, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return annotation.FileContent{}, fmt.Errorf("%s is a directory", name)
	}
	if info.Size() > l.opts.MaxFileSize {
		return annotation.FileContent{}, fmt.Errorf("file size %d bytes exceeds limit %d bytes", info.Size(), l.opts.MaxFileSize)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return annotation.FileContent{}, fmt.Errorf("failed to read file: %w", err)
	}
	if fileops.IsProbablyBinary(data) {
		return annotation.FileContent{}, fmt.Errorf("%s looks like a binary file", name)
	}

	return newFileContent(filepath.ToSlash(filepath.Clean(name)), data), nil
}

// LoadPaths loads every argument in order: directories are walked, files
// are read, and "-" reads stdin.
func (l *Loader) LoadPaths(args []string, stdin io.Reader) ([]annotation.FileContent, error) {
	var files []annotation.FileContent
	for _, arg := range args {
		if arg == "-" {
			fc, err := LoadReader(PastedPath, stdin)
			if err != nil {
				return nil, err
			}
			files = append(files, fc)
			continue
		}

		info, err := os.Stat(fileops.ExpandPath(arg))
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if !info.IsDir() {
			fc, err := l.LoadFile(fileops.ExpandPath(arg))
			if err != nil {
				return nil, err
			}
			files = append(files, fc)
			continue
		}

		loaded, err := l.LoadDirectory(arg)
		if err != nil {
			return nil, err
		}
		if len(args) > 1 {
			prefix := filepath.ToSlash(filepath.Clean(arg))
			for i := range loaded {
				loaded[i].Path = path.Join(prefix, loaded[i].Path)
			}
		}
		files = append(files, loaded...)
	}
	return files, nil
}

func (l *Loader) skip(rel, reason string) {
	if l.logger != nil {
		l.logger.Debug("Skipping file", "path", rel, "reason", reason)
	}
}

// LoadReader reads pasted content. name defaults to PastedPath.
func LoadReader(name string, r io.Reader) (annotation.FileContent, error) {
	if r == nil {
		return annotation.FileContent{}, fmt.Errorf("no input to read")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return annotation.FileContent{}, fmt.Errorf("failed to read input: %w", err)
	}
	if name == "" {
		name = PastedPath
	}
	return newFileContent(name, data), nil
}

// FromString wraps in-memory content, as pasted into an API request.
func FromString(name, content string) annotation.FileContent {
	if name == "" {
		name = PastedPath
	}
	return newFileContent(name, []byte(content))
}

func newFileContent(rel string, data []byte) annotation.FileContent {
	return annotation.FileContent{
		Path:        rel,
		Content:     string(data),
		ContentHash: BlobHash(data),
	}
}

func isMarkdownFile(name string) bool {
	return slices.Contains(markdownExtensions, strings.ToLower(path.Ext(name)))
}

// optsOut reports whether Markdown content asks to be skipped. Malformed
// front matter does not opt out.
func optsOut(data []byte) bool {
	var matter scanMatter
	if _, err := frontmatter.Parse(bytes.NewReader(data), &matter); err != nil {
		return false
	}
	return matter.Mcpscan.Ignore
}
