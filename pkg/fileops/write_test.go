package fileops

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "report.json")

	if err := AtomicWriteFile(path, []byte(`{"tools":[]}`), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != `{"tools":[]}` {
		t.Errorf("Unexpected content %q", data)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0644 {
			t.Errorf("Expected mode 0644, got %o", info.Mode().Perm())
		}
	}

	if err := AtomicWriteFile(path, []byte("second"), 0644); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("Expected overwrite, got %q", data)
	}
}

func TestAtomicWrite_FailureLeavesTargetUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := AtomicWrite(path, 0644, func(w io.Writer) error {
		w.Write([]byte("partial"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected wrapped write error, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "original" {
		t.Errorf("Target changed after failed write: %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected temporary file to be removed, found %d entries", len(entries))
	}
}

func TestEnsureDirectoryExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c")

	for i := 0; i < 2; i++ {
		if err := EnsureDirectoryExists(path); err != nil {
			t.Fatalf("EnsureDirectoryExists failed: %v", err)
		}
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		t.Errorf("Expected directory at %s", path)
	}
}
