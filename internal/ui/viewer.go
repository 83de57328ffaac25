package ui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pubdiff/internal/diff"
	"pubdiff/internal/difffmt"
)

const headerHeight = 2

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	footerStyle  = lipgloss.NewStyle().Faint(true)
)

type viewerModel struct {
	title    string
	result   diff.Result
	viewport viewport.Model
	width    int
	ready    bool
}

// NewViewerModel returns a Bubble Tea model that lets the user scroll
// through a diff result.
func NewViewerModel(title string, result diff.Result) tea.Model {
	return &viewerModel{
		title:  title,
		result: result,
		width:  80,
	}
}

func (m *viewerModel) Init() tea.Cmd {
	return nil
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := msg.Height - headerHeight - 1
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *viewerModel) View() string {
	if !m.ready {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/↓ scroll · q quit"))
	return b.String()
}

func (m *viewerModel) header() string {
	summary := fmt.Sprintf("%s · %s · %s",
		removedStyle.Render(fmt.Sprintf("%d removed", len(m.result.Removed))),
		changedStyle.Render(fmt.Sprintf("%d changed", len(m.result.Changed))),
		addedStyle.Render(fmt.Sprintf("%d added", len(m.result.Added))),
	)
	title := runewidth.Truncate(m.title, m.width, "…")
	return titleStyle.Render(title) + "  " + summary
}

func (m *viewerModel) content() string {
	var buf bytes.Buffer
	opts := difffmt.PrettyOpts{Color: true, ShowCounts: true}
	if err := difffmt.Pretty(&buf, m.result, opts); err != nil {
		return fmt.Sprintf("failed to render diff: %v", err)
	}
	return buf.String()
}

// Run displays the diff result in an interactive viewer and blocks until
// the user quits.
func Run(title string, result diff.Result) error {
	p := tea.NewProgram(NewViewerModel(title, result), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}
