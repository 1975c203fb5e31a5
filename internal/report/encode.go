package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Encode writes r to w in the given format. pretty indents JSON; the other
// formats are always human-oriented.
func Encode(w io.Writer, r *Report, format string, pretty bool) error {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}
		return nil

	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}
		return enc.Close()

	case FormatMarkdown, "md":
		_, err := io.WriteString(w, Markdown(r))
		return err

	case FormatText:
		_, err := io.WriteString(w, Summary(w, r, 0))
		return err

	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
