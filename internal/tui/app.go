// ABOUTME: Root bubbletea model for the clinic TUI
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/clinica-gt/clinica-cli/internal/client"
	"github.com/clinica-gt/clinica-cli/internal/session"
	"github.com/clinica-gt/clinica-cli/internal/tui/browse"
	"github.com/clinica-gt/clinica-cli/internal/tui/login"
	"github.com/clinica-gt/clinica-cli/internal/tui/menu"
	"github.com/clinica-gt/clinica-cli/internal/tui/sale"
	"github.com/clinica-gt/clinica-cli/internal/tui/styles"
	"golang.org/x/sync/errgroup"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenMenu
	ScreenBrowse
	ScreenSale
)

// loginDoneMsg is sent when a login attempt completes
type loginDoneMsg struct {
	ok      bool
	errText string
}

// rowsLoadedMsg is sent when a section's records have been fetched
type rowsLoadedMsg struct {
	title     string
	headers   []string
	rows      [][]string
	medicines []client.Medicine
	err       error
}

// saleDoneMsg is sent when a cart submission completes
type saleDoneMsg struct {
	sales []client.Sale
	err   error
}

// countsLoadedMsg carries the menu summary fetched after login
type countsLoadedMsg struct {
	medicines int
	consults  int
	err       error
}

// captureNotifier records session outcomes so the TUI can render them
// instead of printing to the terminal
type captureNotifier struct {
	mu      sync.Mutex
	lastErr string
}

func (n *captureNotifier) Success(msg string) {}

func (n *captureNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.lastErr = msg
}

func (n *captureNotifier) take() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	msg := n.lastErr
	n.lastErr = ""
	return msg
}

// App is the root model for the TUI
type App struct {
	api       *client.Client
	store     *session.Store
	notices   *captureNotifier
	screen    Screen
	width     int
	height    int
	loading   bool
	err       error
	status    string
	counts    string
	section   menu.Section
	medicines []client.Medicine
	spin      spinner.Model

	// Child models
	loginForm  *login.Form
	menuView   *menu.Menu
	browser    *browse.Browser
	saleWizard *sale.Wizard
}

// New creates the TUI application. A restored session skips the login
// screen; an expired token surfaces as a backend error on first load.
func New(api *client.Client, store *session.Store, notices *captureNotifier) *App {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	app := &App{
		api:      api,
		store:    store,
		notices:  notices,
		screen:   ScreenLogin,
		menuView: menu.New(),
		spin:     spin,
	}
	if store.Authenticated() {
		app.screen = ScreenMenu
	} else {
		username := ""
		if user := store.CurrentUser(); user != nil {
			username = user.Username
		}
		app.loginForm = login.New(username)
	}
	return app
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.loginForm != nil {
		return a.loginForm.Init()
	}
	return a.loadCounts()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.browser != nil {
			a.browser.SetHeight(a.contentHeight())
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenMenu:
			return a.updateMenu(msg)
		case ScreenBrowse:
			return a.updateBrowse(msg)
		case ScreenSale:
			return a.updateSale(msg)
		}

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case login.SubmitMsg:
		a.loading = true
		return a, tea.Batch(a.attemptLogin(msg.Username, msg.Password), a.spin.Tick)

	case login.CancelledMsg:
		return a, tea.Quit

	case loginDoneMsg:
		a.loading = false
		if !msg.ok {
			if a.loginForm != nil {
				a.loginForm.SetError(msg.errText)
			}
			return a, nil
		}
		a.screen = ScreenMenu
		a.loginForm = nil
		return a, a.loadCounts()

	case countsLoadedMsg:
		if msg.err == nil {
			a.counts = fmt.Sprintf("%d medicines in stock, %d consults on record", msg.medicines, msg.consults)
		}
		return a, nil

	case menu.SectionSelectedMsg:
		a.section = msg.Section
		a.loading = true
		a.err = nil
		a.status = ""
		return a, tea.Batch(a.loadSection(msg.Section), a.spin.Tick)

	case menu.CancelledMsg:
		return a, tea.Quit

	case browse.CancelledMsg:
		a.screen = ScreenMenu
		a.browser = nil
		a.err = nil
		return a, nil

	case rowsLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
			a.screen = ScreenMenu
			return a, nil
		}
		if msg.medicines != nil {
			a.medicines = msg.medicines
		}
		a.browser = browse.New(msg.title, msg.headers, msg.rows)
		a.browser.SetHeight(a.contentHeight())
		a.screen = ScreenBrowse
		return a, nil

	case sale.CompleteMsg:
		a.loading = true
		a.saleWizard = nil
		return a, tea.Batch(a.submitSale(msg.Cart), a.spin.Tick)

	case sale.CancelledMsg:
		a.screen = ScreenBrowse
		a.saleWizard = nil
		return a, nil

	case saleDoneMsg:
		a.loading = false
		a.screen = ScreenMenu
		a.browser = nil
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		var total float64
		for _, s := range msg.sales {
			total += s.Total
		}
		a.status = fmt.Sprintf("Sale recorded: %d line(s), total %.2f", len(msg.sales), total)
		return a, nil

	default:
		// Forward unknown messages to the login form (cursor blink etc.)
		if a.screen == ScreenLogin && a.loginForm != nil {
			model, cmd := a.loginForm.Update(msg)
			a.loginForm = model.(*login.Form)
			return a, cmd
		}
	}

	return a, nil
}

func (a *App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.loginForm == nil || a.loading {
		return a, nil
	}
	model, cmd := a.loginForm.Update(msg)
	a.loginForm = model.(*login.Form)
	return a, cmd
}

func (a *App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.loading {
		return a, nil
	}
	model, cmd := a.menuView.Update(msg)
	a.menuView = model.(*menu.Menu)
	return a, cmd
}

func (a *App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return a, tea.Quit
	}
	if msg.String() == "s" && a.section == menu.SectionMedicines {
		a.saleWizard = sale.New(a.medicines)
		a.screen = ScreenSale
		return a, a.saleWizard.Init()
	}
	if a.browser == nil {
		return a, nil
	}
	model, cmd := a.browser.Update(msg)
	a.browser = model.(*browse.Browser)
	return a, cmd
}

func (a *App) updateSale(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.saleWizard == nil || a.loading {
		return a, nil
	}
	model, cmd := a.saleWizard.Update(msg)
	a.saleWizard = model.(*sale.Wizard)
	return a, cmd
}

// attemptLogin runs the session login off the UI goroutine
func (a *App) attemptLogin(username, password string) tea.Cmd {
	return func() tea.Msg {
		if a.store.Login(context.Background(), username, password) {
			return loginDoneMsg{ok: true}
		}
		errText := a.notices.take()
		if errText == "" {
			errText = "Login failed"
		}
		return loginDoneMsg{errText: errText}
	}
}

// loadCounts fetches the menu summary figures concurrently. Failures are
// swallowed so the menu is usable without the summary line.
func (a *App) loadCounts() tea.Cmd {
	return func() tea.Msg {
		var (
			medicines []client.Medicine
			consults  []client.Consult
		)

		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			medicines, err = a.api.ListMedicines(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			consults, err = a.api.ListConsults(ctx, client.ConsultFilter{})
			return err
		})
		if err := g.Wait(); err != nil {
			return countsLoadedMsg{err: err}
		}
		return countsLoadedMsg{medicines: len(medicines), consults: len(consults)}
	}
}

// submitSale posts the cart off the UI goroutine
func (a *App) submitSale(cart []client.SaleItem) tea.Cmd {
	return func() tea.Msg {
		sales, err := a.api.SellMedicines(context.Background(), cart)
		return saleDoneMsg{sales: sales, err: err}
	}
}

// loadSection fetches the records for the chosen section
func (a *App) loadSection(section menu.Section) tea.Cmd {
	switch section {
	case menu.SectionPatients:
		return a.loadPatients()
	case menu.SectionEmployees:
		return a.loadEmployees()
	case menu.SectionMedicines:
		return a.loadMedicines()
	case menu.SectionConsults:
		return a.loadConsults()
	case menu.SectionSurgeries:
		return a.loadSurgeries()
	}
	return nil
}

func (a *App) loadPatients() tea.Cmd {
	return func() tea.Msg {
		patients, err := a.api.ListPatients(context.Background())
		if err != nil {
			return rowsLoadedMsg{err: err}
		}
		rows := make([][]string, len(patients))
		for i, p := range patients {
			rows[i] = []string{p.ID, p.Firstnames + " " + p.Lastnames, p.DPI}
		}
		return rowsLoadedMsg{
			title:   "Patients",
			headers: []string{"ID", "Name", "DPI"},
			rows:    rows,
		}
	}
}

func (a *App) loadEmployees() tea.Cmd {
	return func() tea.Msg {
		employees, err := a.api.ListEmployees(context.Background())
		if err != nil {
			return rowsLoadedMsg{err: err}
		}
		rows := make([][]string, len(employees))
		for i, e := range employees {
			status := "active"
			if e.DesactivatedAt != "" {
				status = "deactivated"
			}
			rows[i] = []string{e.ID, e.FirstName + " " + e.LastName, fmt.Sprintf("%.2f", e.Salary), status}
		}
		return rowsLoadedMsg{
			title:   "Staff",
			headers: []string{"ID", "Name", "Salary", "Status"},
			rows:    rows,
		}
	}
}

func (a *App) loadMedicines() tea.Cmd {
	return func() tea.Msg {
		medicines, err := a.api.ListMedicines(context.Background())
		if err != nil {
			return rowsLoadedMsg{err: err}
		}
		rows := make([][]string, len(medicines))
		for i, m := range medicines {
			stock := fmt.Sprintf("%d", m.Quantity)
			if m.Quantity <= m.MinQuantity {
				stock += " (low)"
			}
			rows[i] = []string{m.ID, m.Name, fmt.Sprintf("%.2f", m.Price), stock}
		}
		return rowsLoadedMsg{
			title:     "Pharmacy",
			headers:   []string{"ID", "Name", "Price", "Stock"},
			rows:      rows,
			medicines: medicines,
		}
	}
}

func (a *App) loadConsults() tea.Cmd {
	return func() tea.Msg {
		consults, err := a.api.ListConsults(context.Background(), client.ConsultFilter{})
		if err != nil {
			return rowsLoadedMsg{err: err}
		}
		rows := make([][]string, len(consults))
		for i, c := range consults {
			status := "unpaid"
			if c.IsPaid {
				status = "paid"
			}
			rows[i] = []string{c.ID, c.Patient.Firstnames + " " + c.Patient.Lastnames, fmt.Sprintf("%.2f", c.CostoTotal), status}
		}
		return rowsLoadedMsg{
			title:   "Consults",
			headers: []string{"ID", "Patient", "Total", "Status"},
			rows:    rows,
		}
	}
}

// loadSurgeries fetches surgeries and the type catalog concurrently so
// each row can show its type's cost breakdown
func (a *App) loadSurgeries() tea.Cmd {
	return func() tea.Msg {
		var (
			surgeries []client.Surgery
			types     []client.SurgeryType
		)

		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			surgeries, err = a.api.ListSurgeries(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			types, err = a.api.ListSurgeryTypes(ctx, nil)
			return err
		})
		if err := g.Wait(); err != nil {
			return rowsLoadedMsg{err: err}
		}

		hospitalCost := make(map[string]float64, len(types))
		for _, t := range types {
			hospitalCost[t.ID] = t.HospitalCost
		}

		rows := make([][]string, len(surgeries))
		for i, s := range surgeries {
			rows[i] = []string{
				s.ID,
				s.SurgeryType.Type,
				s.ConsultID,
				fmt.Sprintf("%.2f", s.SurgeryCost),
				fmt.Sprintf("%.2f", hospitalCost[s.SurgeryType.ID]),
			}
		}
		return rowsLoadedMsg{
			title:   "Surgeries",
			headers: []string{"ID", "Type", "Consult", "Cost", "Hospital"},
			rows:    rows,
		}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		content = a.viewLogin()
	case ScreenMenu:
		content = a.viewMenu()
	case ScreenBrowse:
		content = a.viewBrowse()
	case ScreenSale:
		content = a.viewSale()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewLogin() string {
	if a.loading {
		return a.spin.View() + styles.Subtitle.Render("Logging in...")
	}
	if a.loginForm != nil {
		return a.loginForm.View()
	}
	return ""
}

func (a *App) viewMenu() string {
	if a.loading {
		return a.spin.View() + styles.Subtitle.Render("Loading "+a.section.String()+"...")
	}
	content := a.menuView.View()
	if a.counts != "" {
		content += "\n" + styles.Subtitle.Render(a.counts)
	}
	if a.err != nil {
		content += "\n\n" + styles.StatusError.Render("Error: "+a.err.Error())
	}
	if a.status != "" {
		content += "\n\n" + styles.StatusOK.Render(a.status)
	}
	return content
}

func (a *App) viewBrowse() string {
	if a.browser == nil {
		return ""
	}
	content := a.browser.View()
	if a.section == menu.SectionMedicines {
		content += "\n" + styles.Help.Render("s new sale")
	}
	return content
}

func (a *App) viewSale() string {
	if a.loading {
		return a.spin.View() + styles.Subtitle.Render("Submitting sale...")
	}
	if a.saleWizard != nil {
		return a.saleWizard.View()
	}
	return ""
}

// contentHeight calculates the rows available for table content
func (a *App) contentHeight() int {
	// Frame, title, headers, and help line overhead
	height := a.height - 10
	if height < 5 {
		return 5
	}
	return height
}

// wrapWithFrame adds the header bar above the content
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	userStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	header := titleStyle.Render("Clinica")
	if user := a.store.CurrentUser(); user != nil && a.store.Authenticated() {
		header += userStyle.Render("  " + user.Username)
	}

	sb.WriteString(header)
	sb.WriteString("\n\n")
	sb.WriteString(content)
	return sb.String()
}

// Run starts the TUI against the given backend
func Run(api *client.Client, creds *session.TokenFile) error {
	notices := &captureNotifier{}
	store := session.NewStore(api, creds, notices)
	store.Restore()

	app := New(api, store, notices)

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
