package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsSymlink checks if a given path is a symbolic link without following it.
func IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat path: %w", err)
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

// IsWithin reports whether target, after resolving symlinks on both sides,
// is base itself or lies beneath it.
func IsWithin(target, base string) bool {
	targetAbs, err := canonical(target)
	if err != nil {
		return false
	}
	baseAbs, err := canonical(base)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(baseAbs, targetAbs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

// ValidateSymlinkContainment checks that the link at linkPath resolves to a
// location inside root. Broken links fail.
func ValidateSymlinkContainment(linkPath, root string) error {
	isLink, err := IsSymlink(linkPath)
	if err != nil {
		return err
	}
	if !isLink {
		return fmt.Errorf("path is not a symbolic link: %s", linkPath)
	}

	resolved, err := filepath.EvalSymlinks(linkPath)
	if err != nil {
		return fmt.Errorf("symlink resolution failed: %w", err)
	}
	if !IsWithin(resolved, root) {
		return fmt.Errorf("symlink target escapes scan root: %s -> %s", linkPath, resolved)
	}
	return nil
}

// canonical returns the absolute path with symlinks resolved where possible,
// so /tmp and /private/tmp compare equal on macOS.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
