package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"mcpscan/internal/annotation"
)

const defaultWidth = 80

// Summary is the plain text form used for terminals and logs. Styling is
// chosen for w, so it degrades to plain text when w is not a terminal.
func Summary(w io.Writer, r *Report, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	renderer := lipgloss.NewRenderer(w)
	title := renderer.NewStyle().Bold(true)
	heading := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	failure := renderer.NewStyle().Foreground(lipgloss.Color("9"))
	dim := renderer.NewStyle().Faint(true)

	var b strings.Builder
	in := r.Insights
	b.WriteString(title.Render(fmt.Sprintf("MCP analysis: %d tools, %d prompts, %d resources, %d relationships, %d errors (%d files)",
		in.ToolCount, in.PromptCount, in.ResourceCount, in.RelationshipCount, in.ErrorCount, in.FileCount)))
	b.WriteString("\n")

	if repo := r.Repository; repo != nil {
		line := fmt.Sprintf("Repository: %s", repo.Name)
		if repo.DefaultBranch != "" {
			line += fmt.Sprintf(" (%s)", repo.DefaultBranch)
		}
		line += fmt.Sprintf(", %d stars, %d forks", repo.Stars, repo.Forks)
		b.WriteString(line + "\n")
		if repo.Description != "" {
			b.WriteString(wrapIndented(repo.Description, width, 2) + "\n")
		}
	}

	if len(r.Tools) > 0 {
		b.WriteString("\n" + heading.Render("Tools") + "\n")
		for _, t := range r.Tools {
			b.WriteString(wrapIndented(fmt.Sprintf("- %s: %s", t.Name, t.Description), width, 2) + "\n")
		}
	}
	if len(r.Prompts) > 0 {
		b.WriteString("\n" + heading.Render("Prompts") + "\n")
		for _, p := range r.Prompts {
			line := "- " + p.Name
			if len(p.Variables) > 0 {
				line += " [" + strings.Join(p.Variables, ", ") + "]"
			}
			b.WriteString(wrapIndented(line, width, 2) + "\n")
		}
	}
	if len(r.Resources) > 0 {
		b.WriteString("\n" + heading.Render("Resources") + "\n")
		for _, res := range r.Resources {
			b.WriteString(wrapIndented(fmt.Sprintf("- %s (%s) %s", res.Name, res.Type, res.Path), width, 2) + "\n")
		}
	}

	if r.Relationships.Edges() > 0 {
		b.WriteString("\n" + heading.Render("Relationships") + "\n")
		for _, section := range []struct {
			label string
			rel   annotation.Relations
		}{
			{"tool -> prompt", r.Relationships.ToolToPrompt},
			{"prompt -> resource", r.Relationships.PromptToResource},
			{"tool -> resource", r.Relationships.ToolToResource},
		} {
			for _, source := range section.rel.Keys() {
				targets, _ := section.rel.Get(source)
				line := dim.Render(section.label) + " " + source + ": " + strings.Join(targets, ", ")
				b.WriteString(wrapIndented(line, width, 2) + "\n")
			}
		}
	}

	if len(r.Errors) > 0 {
		b.WriteString("\n" + heading.Render("Errors") + "\n")
		for _, e := range r.Errors {
			b.WriteString(wrapIndented(failure.Render(fmt.Sprintf("- %s [%s] %s", e.File, e.Type, e.Error)), width, 2) + "\n")
		}
	}

	return b.String()
}

// wrapIndented word-wraps s to width and indents continuation lines.
func wrapIndented(s string, width, pad int) string {
	wrapped := wordwrap.String(s, width-pad)
	lines := strings.Split(wrapped, "\n")
	if len(lines) == 1 {
		return wrapped
	}
	return lines[0] + "\n" + indent.String(strings.Join(lines[1:], "\n"), uint(pad))
}
