package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

const styleDetectTimeout = 200 * time.Millisecond

// DetectStyle picks a glamour style for out. GLAMOUR_STYLE wins when set to
// a concrete style; output that is not a terminal gets "notty". Background
// detection gives up after a short timeout on terminals that never answer.
func DetectStyle(out io.Writer) string {
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" && style != "auto" {
		return style
	}

	output := termenv.NewOutput(out)
	if output.Profile == termenv.Ascii {
		return "notty"
	}

	ch := make(chan string, 1)
	go func() {
		if output.HasDarkBackground() {
			ch <- "dark"
			return
		}
		ch <- "light"
	}()

	select {
	case style := <-ch:
		return style
	case <-time.After(styleDetectTimeout):
		return "dark"
	}
}

// Render renders Markdown for a terminal of the given width.
func Render(markdown, style string, width int) (string, error) {
	if width <= 0 {
		width = defaultWidth
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
