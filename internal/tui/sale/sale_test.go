// ABOUTME: Tests for the pharmacy sale wizard
// ABOUTME: Verifies cart building, validation, and completion messages

package sale

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clinica-gt/clinica-cli/internal/client"
)

func testCatalog() []client.Medicine {
	return []client.Medicine{
		{ID: "m1", Name: "Paracetamol", Price: 2.50, Quantity: 100, MinQuantity: 10},
		{ID: "m2", Name: "Amoxicillin", Price: 8.00, Quantity: 3, MinQuantity: 5},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// addItem drives the wizard through one pick-and-quantity round
func addItem(t *testing.T, w *Wizard, qty string) *Wizard {
	t.Helper()
	model, _ := w.Update(keyMsg("a"))
	w = model.(*Wizard)
	for _, r := range qty {
		model, _ = w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		w = model.(*Wizard)
	}
	model, _ = w.Update(keyMsg("enter"))
	return model.(*Wizard)
}

func TestWizard_AddsItemToCart(t *testing.T) {
	w := New(testCatalog())

	w = addItem(t, w, "4")

	cart := w.Cart()
	if len(cart) != 1 {
		t.Fatalf("expected 1 cart line, got %d", len(cart))
	}
	if cart[0].MedicineID != "m1" || cart[0].Quantity != 4 {
		t.Errorf("unexpected cart line: %+v", cart[0])
	}
}

func TestWizard_MergesRepeatedPicks(t *testing.T) {
	w := New(testCatalog())

	w = addItem(t, w, "2")
	w = addItem(t, w, "3")

	cart := w.Cart()
	if len(cart) != 1 {
		t.Fatalf("expected merged cart line, got %d lines", len(cart))
	}
	if cart[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", cart[0].Quantity)
	}
}

func TestWizard_RejectsZeroQuantity(t *testing.T) {
	w := New(testCatalog())

	w = addItem(t, w, "0")

	if len(w.Cart()) != 0 {
		t.Error("expected empty cart for zero quantity")
	}
	if !strings.Contains(w.View(), "positive") {
		t.Error("expected validation message in view")
	}
}

func TestWizard_RejectsQuantityOverStock(t *testing.T) {
	w := New(testCatalog())

	// Move to the second medicine, which has 3 in stock
	model, _ := w.Update(keyMsg("j"))
	w = model.(*Wizard)
	w = addItem(t, w, "5")

	if len(w.Cart()) != 0 {
		t.Error("expected empty cart when quantity exceeds stock")
	}
	if !strings.Contains(w.View(), "in stock") {
		t.Error("expected stock message in view")
	}
}

func TestWizard_RejectsRepeatedAddsExceedingStock(t *testing.T) {
	w := New(testCatalog())

	// Second medicine has 3 in stock; 2 + 2 must not cart
	model, _ := w.Update(keyMsg("j"))
	w = model.(*Wizard)
	w = addItem(t, w, "2")
	w = addItem(t, w, "2")

	cart := w.Cart()
	if len(cart) != 1 || cart[0].Quantity != 2 {
		t.Fatalf("expected cart capped at first add, got %+v", cart)
	}
	if !strings.Contains(w.View(), "in stock") {
		t.Error("expected stock message in view")
	}
}

func TestWizard_ConfirmEmitsCompleteMsg(t *testing.T) {
	w := New(testCatalog())
	w = addItem(t, w, "2")

	_, cmd := w.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected command on confirm")
	}
	msg, ok := cmd().(CompleteMsg)
	if !ok {
		t.Fatalf("expected CompleteMsg, got %T", cmd())
	}
	if len(msg.Cart) != 1 || msg.Cart[0].MedicineID != "m1" {
		t.Errorf("unexpected cart in message: %+v", msg.Cart)
	}
}

func TestWizard_ConfirmWithEmptyCartErrors(t *testing.T) {
	w := New(testCatalog())

	model, cmd := w.Update(keyMsg("enter"))
	w = model.(*Wizard)
	if cmd != nil {
		t.Error("expected no command for an empty cart")
	}
	if !strings.Contains(w.View(), "at least one item") {
		t.Error("expected validation message in view")
	}
}

func TestWizard_EscCancels(t *testing.T) {
	w := New(testCatalog())

	_, cmd := w.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("expected command on cancel")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Fatalf("expected CancelledMsg, got %T", cmd())
	}
}

func TestWizard_ViewShowsTotal(t *testing.T) {
	w := New(testCatalog())
	w = addItem(t, w, "4")

	if !strings.Contains(w.View(), "Total: 10.00") {
		t.Errorf("expected running total in view:\n%s", w.View())
	}
}
