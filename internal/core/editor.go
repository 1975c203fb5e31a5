package core

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ResolveEditor returns the editor command: $VISUAL, then $EDITOR, then
// nano or vi if installed.
func ResolveEditor() ([]string, error) {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(name)); len(fields) > 0 {
			return fields, nil
		}
	}
	for _, fallback := range []string{"nano", "vi"} {
		if _, err := exec.LookPath(fallback); err == nil {
			return []string{fallback}, nil
		}
	}
	return nil, fmt.Errorf("no editor found: set $EDITOR")
}

// EditFile opens path in the user's editor attached to the terminal.
func EditFile(path string) error {
	editor, err := ResolveEditor()
	if err != nil {
		return err
	}
	cmd := exec.Command(editor[0], append(editor[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s failed: %w", editor[0], err)
	}
	return nil
}
