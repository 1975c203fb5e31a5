package filemanager

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Filter matches slash-separated relative paths against include and exclude
// glob patterns. "*" stays within one path segment, "**" crosses segments.
// A path is accepted when it matches some include pattern (or there are
// none) and no exclude pattern.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewFilter compiles the patterns. A pattern without a slash also matches
// the file's base name anywhere in the tree, so "*.ts" behaves as users
// expect.
func NewFilter(include, exclude []string) (*Filter, error) {
	inc, err := compileAll(include)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}
	exc, err := compileAll(exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}
	return &Filter{include: inc, exclude: exc}, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	var out []glob.Glob
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		forms := []string{p}
		if !strings.Contains(p, "/") {
			forms = append(forms, "**/"+p)
		}
		for _, form := range forms {
			g, err := glob.Compile(form, '/')
			if err != nil {
				return nil, fmt.Errorf("%q: %w", p, err)
			}
			out = append(out, g)
		}
	}
	return out, nil
}

// Match reports whether rel passes the filter.
func (f *Filter) Match(rel string) bool {
	if f == nil {
		return true
	}
	for _, g := range f.exclude {
		if g.Match(rel) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, g := range f.include {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
