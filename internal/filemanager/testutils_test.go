package filemanager

import (
	"os"
	"path/filepath"
	"testing"

	"mcpscan/internal/annotation"
)

// createTempDirStructure creates files (slash-separated paths to content)
// in a fresh temporary directory.
func createTempDirStructure(t *testing.T, structure map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for rel, content := range structure {
		full := filepath.Join(tempDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", rel, err)
		}
	}

	return tempDir
}

func newTestLoader(t *testing.T, opts Options) *Loader {
	t.Helper()
	loader, err := NewLoader(opts, nil)
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}
	return loader
}

func pathsOf(files []annotation.FileContent) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}
