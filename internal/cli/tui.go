package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// TemplateListModel - Interactive template selection
// =============================================================================

// TemplateListModel is the bubbletea model for picking a template out of a
// scanned directory. A template with zero sections can still be selected;
// the converter is the one that decides whether it is usable.
type TemplateListModel struct {
	Templates []TemplateInfo
	Cursor    int
	Selected  *TemplateInfo
	Height    int
	Offset    int
}

// NewTemplateListModel creates a new template list model.
func NewTemplateListModel(templates []TemplateInfo) TemplateListModel {
	return TemplateListModel{
		Templates: templates,
		Cursor:    0,
		Height:    15,
		Offset:    0,
	}
}

func (m TemplateListModel) Init() tea.Cmd {
	return nil
}

func (m TemplateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Templates)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Templates[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TemplateListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Template"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ convert  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Templates) {
		end = len(m.Templates)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		t := m.Templates[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		sections := "—"
		if t.Sections > 0 {
			sections = fmt.Sprintf("%d", t.Sections)
		}

		rows = append(rows, []string{cursor, t.Name, sections, formatSize(t.Size), formatRelativeTime(t.ModTime)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Template", "Sections", "Size", "Modified").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Templates) {
				return lipgloss.NewStyle()
			}
			tmpl := m.Templates[actualIdx]
			hasSections := tmpl.Sections > 0
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 3 || col == 4 {
				if isCurrent {
					base = base.Foreground(colorGray)
				} else {
					base = base.Foreground(colorDim)
				}
			}

			if isCurrent {
				if hasSections {
					if col != 3 && col != 4 {
						return base.Foreground(colorGreen).Bold(true)
					}
					return base.Bold(true)
				}
				return base.Foreground(colorDim).Bold(true)
			} else if hasSections {
				if col != 3 && col != 4 {
					return base.Foreground(colorGreen)
				}
				return base
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Templates))))

	return b.String()
}

// pickTemplate runs the interactive picker over the candidates and returns
// the selection, or nil when the user quit without choosing.
func pickTemplate(candidates []TemplateInfo) (*TemplateInfo, error) {
	prog := tea.NewProgram(NewTemplateListModel(candidates))
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("template picker: %w", err)
	}
	model, ok := final.(TemplateListModel)
	if !ok {
		return nil, fmt.Errorf("template picker: unexpected model %T", final)
	}
	return model.Selected, nil
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

func formatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
