// Package ui holds the interactive report pager used by
// "mcpscan report --interactive".
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mcpscan/internal/report"
)

const (
	maxListWidth    = 32
	minPreviewWidth = 20
	helpHeight      = 1
)

type focusArea int

const (
	focusList focusArea = iota
	focusPreview
)

var (
	focusedBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205"))
	blurredBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// sectionItem adapts a report section to the list delegate.
type sectionItem struct {
	section report.Section
}

func (i sectionItem) Title() string       { return i.section.Title }
func (i sectionItem) Description() string { return i.section.Summary }
func (i sectionItem) FilterValue() string { return i.section.Title }

// ReportViewer lists the report sections on the left and shows the selected
// one, rendered with glamour, in a scrollable pane on the right.
type ReportViewer struct {
	sections []report.Section
	list     list.Model
	viewport viewport.Model
	style    string
	focus    focusArea
	current  int
	ready    bool

	// rendered caches glamour output per section and wrap width.
	rendered map[string]string
}

// NewReportViewer builds the pager for r. style is a glamour style name.
func NewReportViewer(r *report.Report, style string) *ReportViewer {
	sections := report.Sections(r)
	items := make([]list.Item, len(sections))
	for i, s := range sections {
		items[i] = sectionItem{section: s}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "MCP Analysis"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true

	return &ReportViewer{
		sections: sections,
		list:     l,
		viewport: vp,
		style:    style,
		current:  -1,
		rendered: make(map[string]string),
	}
}

func (m *ReportViewer) Init() tea.Cmd {
	return nil
}

func (m *ReportViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab":
			if m.focus == focusList {
				m.focus = focusPreview
			} else {
				m.focus = focusList
			}
			return m, nil
		}
		if m.focus == focusPreview {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.showSelected()
	return m, cmd
}

func (m *ReportViewer) resize(width, height int) {
	listWidth := min(maxListWidth, width/3)
	contentHeight := max(1, height-helpHeight)

	m.list.SetSize(listWidth, contentHeight)
	// The preview border takes one cell on every side.
	m.viewport.Width = max(minPreviewWidth, width-listWidth-2)
	m.viewport.Height = max(1, contentHeight-2)
	m.ready = true

	m.current = -1
	m.showSelected()
}

// showSelected loads the selected section into the viewport when the
// selection changed.
func (m *ReportViewer) showSelected() {
	if !m.ready {
		return
	}
	idx := m.list.Index()
	if idx == m.current || idx < 0 || idx >= len(m.sections) {
		return
	}
	m.current = idx
	m.viewport.SetContent(m.render(idx))
	m.viewport.GotoTop()
}

func (m *ReportViewer) render(idx int) string {
	width := max(minPreviewWidth, m.viewport.Width-2)
	key := fmt.Sprintf("%d:%d", idx, width)
	if cached, ok := m.rendered[key]; ok {
		return cached
	}

	out, err := report.Render(m.sections[idx].Markdown, m.style, width)
	if err != nil {
		out = m.sections[idx].Markdown
	}
	m.rendered[key] = out
	return out
}

func (m *ReportViewer) View() string {
	if !m.ready {
		return "Loading report..."
	}

	border := blurredBorder
	if m.focus == focusPreview {
		border = focusedBorder
	}
	preview := border.Width(m.viewport.Width).Height(m.viewport.Height).Render(m.viewport.View())

	help := "↑/↓ section • tab focus preview • q quit"
	if m.focus == focusPreview {
		help = "↑/↓ scroll • tab back to sections • q quit"
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), preview) + "\n" + helpStyle.Render(help)
}

// Run shows the pager on out until the user quits.
func Run(r *report.Report, style string, in io.Reader, out io.Writer) error {
	program := tea.NewProgram(NewReportViewer(r, style),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("report viewer failed: %w", err)
	}
	return nil
}
