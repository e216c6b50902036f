// ABOUTME: Login form TUI component
// ABOUTME: Collects username and password and reports submit or cancel

package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SubmitMsg is sent when the user submits credentials
type SubmitMsg struct {
	Username string
	Password string
}

// CancelledMsg is sent when the user cancels
type CancelledMsg struct{}

// Form is the login form component
type Form struct {
	username textinput.Model
	password textinput.Model
	focused  int
	err      string
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// New creates a login form with an optional prefilled username
func New(username string) *Form {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Width = 32
	user.SetValue(username)
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 64
	pass.Width = 32
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	f := &Form{username: user, password: pass}
	if username != "" {
		f.focusField(1)
	}
	return f
}

// SetError shows an error line under the form
func (f *Form) SetError(msg string) {
	f.err = msg
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateInputs(msg)
	}

	// Clear error on any key press
	f.err = ""

	switch keyMsg.String() {
	case "esc":
		return f, func() tea.Msg { return CancelledMsg{} }
	case "tab", "shift+tab", "up", "down":
		f.focusField(1 - f.focused)
		return f, nil
	case "enter":
		if f.focused == 0 {
			f.focusField(1)
			return f, nil
		}
		username := strings.TrimSpace(f.username.Value())
		password := f.password.Value()
		if username == "" || password == "" {
			f.err = "Username and password are required"
			return f, nil
		}
		return f, func() tea.Msg {
			return SubmitMsg{Username: username, Password: password}
		}
	}

	return f.updateInputs(msg)
}

func (f *Form) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	f.username, cmd = f.username.Update(msg)
	cmds = append(cmds, cmd)
	f.password, cmd = f.password.Update(msg)
	cmds = append(cmds, cmd)
	return f, tea.Batch(cmds...)
}

func (f *Form) focusField(i int) {
	f.focused = i
	if i == 0 {
		f.username.Focus()
		f.password.Blur()
	} else {
		f.username.Blur()
		f.password.Focus()
	}
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Log in"))
	sb.WriteString("\n\n")
	sb.WriteString("Username\n")
	sb.WriteString(f.username.View())
	sb.WriteString("\n\nPassword\n")
	sb.WriteString(f.password.View())
	sb.WriteString("\n")

	if f.err != "" {
		sb.WriteString("\n" + errorStyle.Render(f.err) + "\n")
	}

	sb.WriteString("\n" + helpStyle.Render("tab switch field • enter submit • esc quit"))
	return sb.String()
}
