// ABOUTME: Section menu for the clinic TUI
// ABOUTME: Routes to patients, staff, pharmacy, consults, or surgeries

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Section identifies one area of the clinic backend
type Section int

const (
	SectionPatients Section = iota
	SectionEmployees
	SectionMedicines
	SectionConsults
	SectionSurgeries
)

// SectionSelectedMsg is sent when the user picks a section
type SectionSelectedMsg struct {
	Section Section
}

// CancelledMsg is sent when the user quits from the menu
type CancelledMsg struct{}

// Menu is the section selection component
type Menu struct {
	cursor   int
	sections []Section
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// New creates the section menu
func New() *Menu {
	return &Menu{
		sections: []Section{
			SectionPatients,
			SectionEmployees,
			SectionMedicines,
			SectionConsults,
			SectionSurgeries,
		},
	}
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.sections)-1 {
			m.cursor++
		}
	case "enter":
		section := m.sections[m.cursor]
		return m, func() tea.Msg { return SectionSelectedMsg{Section: section} }
	case "q", "esc":
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	return m, nil
}

// View implements tea.Model
func (m *Menu) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Clinic sections"))
	sb.WriteString("\n\n")

	for i, section := range m.sections {
		line := "  " + section.String()
		if i == m.cursor {
			line = selectedStyle.Render("> " + section.String())
		} else {
			line = normalStyle.Render(line)
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n" + helpStyle.Render("↑↓ navigate • enter select • q quit"))
	return sb.String()
}

// String returns the display name of a Section
func (s Section) String() string {
	switch s {
	case SectionPatients:
		return "Patients"
	case SectionEmployees:
		return "Staff"
	case SectionMedicines:
		return "Pharmacy"
	case SectionConsults:
		return "Consults"
	case SectionSurgeries:
		return "Surgeries"
	default:
		return "Unknown"
	}
}
