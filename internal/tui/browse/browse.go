// ABOUTME: Scrollable table browser for listing clinic records
// ABOUTME: Renders column-aligned rows with cursor navigation

package browse

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CancelledMsg is sent when the user leaves the browser
type CancelledMsg struct{}

// Browser is a read-only table of rows with a movable cursor
type Browser struct {
	title   string
	headers []string
	rows    [][]string
	cursor  int
	offset  int
	height  int
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const defaultVisibleRows = 15

// New creates a browser over the given rows
func New(title string, headers []string, rows [][]string) *Browser {
	return &Browser{
		title:   title,
		headers: headers,
		rows:    rows,
		height:  defaultVisibleRows,
	}
}

// SetHeight limits how many rows are visible at once
func (b *Browser) SetHeight(height int) {
	if height > 0 {
		b.height = height
	}
}

// Selected returns the currently highlighted row, or nil when empty
func (b *Browser) Selected() []string {
	if len(b.rows) == 0 {
		return nil
	}
	return b.rows[b.cursor]
}

// Init implements tea.Model
func (b *Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.rows)-1 {
			b.cursor++
		}
	case "g":
		b.cursor = 0
	case "G":
		if len(b.rows) > 0 {
			b.cursor = len(b.rows) - 1
		}
	case "esc", "b":
		return b, func() tea.Msg { return CancelledMsg{} }
	}

	// Keep the cursor inside the visible window
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+b.height {
		b.offset = b.cursor - b.height + 1
	}

	return b, nil
}

// View implements tea.Model
func (b *Browser) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(b.title))
	sb.WriteString("\n\n")

	if len(b.rows) == 0 {
		sb.WriteString(normalStyle.Render("No records."))
		sb.WriteString("\n\n" + helpStyle.Render("b back • q quit"))
		return sb.String()
	}

	widths := b.columnWidths()
	sb.WriteString(headerStyle.Render(formatRow(b.headers, widths)))
	sb.WriteString("\n")

	end := b.offset + b.height
	if end > len(b.rows) {
		end = len(b.rows)
	}
	for i := b.offset; i < end; i++ {
		line := formatRow(b.rows[i], widths)
		if i == b.cursor {
			sb.WriteString(selectedStyle.Render("> " + line))
		} else {
			sb.WriteString(normalStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n" + helpStyle.Render("↑↓ navigate • b back • q quit"))
	return sb.String()
}

// columnWidths computes the widest cell per column, headers included
func (b *Browser) columnWidths() []int {
	widths := make([]int, len(b.headers))
	for i, h := range b.headers {
		widths[i] = len(h)
	}
	for _, row := range b.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

// formatRow pads cells to the column widths
func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		width := len(cell)
		if i < len(widths) {
			width = widths[i]
		}
		padded[i] = cell + strings.Repeat(" ", width-len(cell))
	}
	return strings.Join(padded, "  ")
}
