// ABOUTME: Tests for the root TUI model
// ABOUTME: Verifies screen routing and session-aware startup

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clinica-gt/clinica-cli/internal/client"
	"github.com/clinica-gt/clinica-cli/internal/session"
	"github.com/clinica-gt/clinica-cli/internal/tui/browse"
	"github.com/clinica-gt/clinica-cli/internal/tui/menu"
	"github.com/clinica-gt/clinica-cli/internal/tui/sale"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	notices := &captureNotifier{}
	creds := session.NewTokenFile(t.TempDir())
	api := client.New("http://localhost:1", creds)
	store := session.NewStore(api, creds, notices)
	return New(api, store, notices)
}

func TestApp_StartsAtLoginWithoutSession(t *testing.T) {
	app := newTestApp(t)

	if app.screen != ScreenLogin {
		t.Errorf("expected login screen, got %v", app.screen)
	}
	if !strings.Contains(app.View(), "Log in") {
		t.Error("expected login form in view")
	}
}

func TestApp_StartsAtMenuWithRestoredSession(t *testing.T) {
	notices := &captureNotifier{}
	creds := session.NewTokenFile(t.TempDir())
	if err := creds.Save("tok-1", "admin"); err != nil {
		t.Fatal(err)
	}
	api := client.New("http://localhost:1", creds)
	store := session.NewStore(api, creds, notices)
	store.Restore()

	app := New(api, store, notices)

	if app.screen != ScreenMenu {
		t.Errorf("expected menu screen for restored session, got %v", app.screen)
	}
	if !strings.Contains(app.View(), "admin") {
		t.Error("expected username in header")
	}
}

func TestApp_LoginFailureShowsError(t *testing.T) {
	app := newTestApp(t)

	app.Update(loginDoneMsg{errText: "bad credentials"})

	if app.screen != ScreenLogin {
		t.Errorf("expected to stay on login screen, got %v", app.screen)
	}
	if !strings.Contains(app.View(), "bad credentials") {
		t.Error("expected error text in view")
	}
}

func TestApp_LoginSuccessMovesToMenu(t *testing.T) {
	app := newTestApp(t)

	app.Update(loginDoneMsg{ok: true})

	if app.screen != ScreenMenu {
		t.Errorf("expected menu screen after login, got %v", app.screen)
	}
}

func TestApp_RowsLoadedMovesToBrowse(t *testing.T) {
	app := newTestApp(t)
	app.screen = ScreenMenu

	app.Update(rowsLoadedMsg{
		title:   "Patients",
		headers: []string{"ID", "Name"},
		rows:    [][]string{{"p1", "Maria Lopez"}},
	})

	if app.screen != ScreenBrowse {
		t.Errorf("expected browse screen, got %v", app.screen)
	}
	if !strings.Contains(app.View(), "Maria Lopez") {
		t.Error("expected row in view")
	}
}

func TestApp_LoadErrorReturnsToMenu(t *testing.T) {
	app := newTestApp(t)
	app.screen = ScreenMenu
	app.Update(menu.SectionSelectedMsg{Section: menu.SectionPatients})

	app.Update(rowsLoadedMsg{err: &client.APIError{Message: "cannot connect"}})

	if app.screen != ScreenMenu {
		t.Errorf("expected menu screen after error, got %v", app.screen)
	}
	if !strings.Contains(app.View(), "cannot connect") {
		t.Error("expected error in view")
	}
}

func TestApp_BrowseBackReturnsToMenu(t *testing.T) {
	app := newTestApp(t)
	app.screen = ScreenBrowse
	app.browser = browse.New("Patients", []string{"ID"}, nil)

	app.Update(browse.CancelledMsg{})

	if app.screen != ScreenMenu {
		t.Errorf("expected menu screen, got %v", app.screen)
	}
}

func TestApp_SaleKeyOpensWizardFromPharmacy(t *testing.T) {
	app := newTestApp(t)
	app.screen = ScreenMenu
	app.section = menu.SectionMedicines

	app.Update(rowsLoadedMsg{
		title:     "Pharmacy",
		headers:   []string{"ID", "Name"},
		rows:      [][]string{{"m1", "Paracetamol"}},
		medicines: []client.Medicine{{ID: "m1", Name: "Paracetamol", Price: 2.50, Quantity: 10}},
	})
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})

	if app.screen != ScreenSale {
		t.Fatalf("expected sale screen, got %v", app.screen)
	}
	if !strings.Contains(app.View(), "New sale") {
		t.Error("expected sale wizard in view")
	}
}

func TestApp_SaleKeyIgnoredOutsidePharmacy(t *testing.T) {
	app := newTestApp(t)
	app.screen = ScreenBrowse
	app.section = menu.SectionPatients
	app.browser = browse.New("Patients", []string{"ID"}, nil)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})

	if app.screen != ScreenBrowse {
		t.Errorf("expected to stay on browse screen, got %v", app.screen)
	}
}

func TestApp_SaleCompleteSubmitsCart(t *testing.T) {
	app := newTestApp(t)
	app.screen = ScreenSale
	app.saleWizard = sale.New(nil)

	_, cmd := app.Update(sale.CompleteMsg{Cart: []client.SaleItem{{MedicineID: "m1", Quantity: 2}}})

	if !app.loading {
		t.Error("expected loading while the cart is submitted")
	}
	if cmd == nil {
		t.Error("expected submit command")
	}
}

func TestApp_SaleDoneShowsStatusOnMenu(t *testing.T) {
	app := newTestApp(t)
	app.screen = ScreenSale

	app.Update(saleDoneMsg{sales: []client.Sale{{ID: "s1", Total: 5.00}, {ID: "s2", Total: 3.00}}})

	if app.screen != ScreenMenu {
		t.Fatalf("expected menu screen, got %v", app.screen)
	}
	if !strings.Contains(app.View(), "Sale recorded: 2 line(s), total 8.00") {
		t.Errorf("expected sale summary in view:\n%s", app.View())
	}
}

func TestApp_SaleCancelReturnsToBrowse(t *testing.T) {
	app := newTestApp(t)
	app.screen = ScreenSale
	app.saleWizard = sale.New(nil)
	app.browser = browse.New("Pharmacy", []string{"ID"}, nil)

	app.Update(sale.CancelledMsg{})

	if app.screen != ScreenBrowse {
		t.Errorf("expected browse screen, got %v", app.screen)
	}
	if app.saleWizard != nil {
		t.Error("expected wizard to be discarded")
	}
}

func TestApp_CountsLoadedShowsSummary(t *testing.T) {
	app := newTestApp(t)
	app.screen = ScreenMenu

	app.Update(countsLoadedMsg{medicines: 12, consults: 4})

	if !strings.Contains(app.View(), "12 medicines in stock, 4 consults on record") {
		t.Errorf("expected counts summary in view:\n%s", app.View())
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestCaptureNotifier_TakeClears(t *testing.T) {
	n := &captureNotifier{}
	n.Error("boom")

	if got := n.take(); got != "boom" {
		t.Errorf("expected boom, got %q", got)
	}
	if got := n.take(); got != "" {
		t.Errorf("expected cleared notifier, got %q", got)
	}
}
