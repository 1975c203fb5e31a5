package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ExpandPath replaces a leading "~/" with the user's home directory.
//
//	expanded := fileops.ExpandPath("~/src/project")
//	// Returns something like "/home/user/src/project"
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ResolveScanRoot expands, absolutizes and checks a directory the user asked
// to scan. Relative paths with ".." are fine here: the user names the root
// on purpose. System directories are refused.
func ResolveScanRoot(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("scan path cannot be empty")
	}

	absPath, err := filepath.Abs(ExpandPath(path))
	if err != nil {
		return "", fmt.Errorf("cannot resolve scan path: %w", err)
	}

	if IsReservedDirectory(absPath) {
		return "", fmt.Errorf("cannot scan reserved/system directory: %s", absPath)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot access scan path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("scan path is not a directory: %s", absPath)
	}

	return absPath, nil
}

// ValidateRelativePath rejects a path that is empty, absolute, or climbs out
// of its base with "..". Used for names that come from outside, such as
// file paths in API requests or git tree entries.
func ValidateRelativePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must be relative: %s", path)
	}

	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("path traversal not allowed: %s", path)
	}
	return nil
}

// IsReservedDirectory reports whether path is, or lies under, a system
// directory that should never be scanned or written to. Paths that cannot
// be resolved count as reserved.
func IsReservedDirectory(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return true
	}
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = resolved
	}
	absPath = filepath.Clean(absPath)

	if absPath == filepath.VolumeName(absPath)+string(os.PathSeparator) {
		return true
	}

	for _, reserved := range reservedDirectories() {
		if resolved, err := filepath.EvalSymlinks(reserved); err == nil {
			reserved = resolved
		}
		reserved = filepath.Clean(reserved)

		if strings.EqualFold(absPath, reserved) {
			return true
		}
		prefix := strings.ToLower(reserved) + string(os.PathSeparator)
		if strings.HasPrefix(strings.ToLower(absPath), prefix) && !isTempDirectory(absPath) {
			return true
		}
	}

	return false
}

func reservedDirectories() []string {
	var dirs []string

	switch runtime.GOOS {
	case "windows":
		dirs = []string{
			`C:\Windows`,
			`C:\Program Files`,
			`C:\Program Files (x86)`,
		}
	case "darwin":
		dirs = []string{
			"/System",
			"/bin",
			"/sbin",
			"/usr/bin",
			"/usr/sbin",
			"/etc",
			"/private/etc",
			"/var/db",
			"/var/root",
		}
	default:
		dirs = []string{
			"/bin",
			"/sbin",
			"/usr/bin",
			"/usr/sbin",
			"/etc",
			"/boot",
			"/dev",
			"/proc",
			"/sys",
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".ssh"),
			filepath.Join(home, ".gnupg"),
		)
	}

	return dirs
}

// isTempDirectory keeps per-user temp dirs (macOS puts them under /var)
// usable even when an ancestor is reserved.
func isTempDirectory(path string) bool {
	if runtime.GOOS == "darwin" && strings.Contains(path, "/var/folders/") {
		return true
	}

	tmp := filepath.Clean(os.TempDir())
	return path == tmp || strings.HasPrefix(path, tmp+string(os.PathSeparator))
}
