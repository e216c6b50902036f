// ABOUTME: Pharmacy sale wizard for the clinic TUI
// ABOUTME: Builds a cart from the medicine catalog and submits it

package sale

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/clinica-gt/clinica-cli/internal/client"
)

// CompleteMsg is sent when the user confirms the cart
type CompleteMsg struct {
	Cart []client.SaleItem
}

// CancelledMsg is sent when the user abandons the sale
type CancelledMsg struct{}

// step tracks where the user is inside the wizard
type step int

const (
	stepPick step = iota
	stepQuantity
)

// Wizard is the cart-building component
type Wizard struct {
	medicines []client.Medicine
	cart      []client.SaleItem
	cursor    int
	step      step
	quantity  textinput.Model
	err       string
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	cartStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// New creates a sale wizard over the given catalog
func New(medicines []client.Medicine) *Wizard {
	qty := textinput.New()
	qty.Placeholder = "quantity"
	qty.CharLimit = 5
	qty.Width = 10

	return &Wizard{medicines: medicines, quantity: qty}
}

// Cart returns the line items added so far
func (w *Wizard) Cart() []client.SaleItem {
	return w.cart
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if w.step == stepQuantity {
			var cmd tea.Cmd
			w.quantity, cmd = w.quantity.Update(msg)
			return w, cmd
		}
		return w, nil
	}

	w.err = ""

	switch w.step {
	case stepPick:
		return w.updatePick(keyMsg)
	case stepQuantity:
		return w.updateQuantity(keyMsg)
	}
	return w, nil
}

func (w *Wizard) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if w.cursor > 0 {
			w.cursor--
		}
	case "down", "j":
		if w.cursor < len(w.medicines)-1 {
			w.cursor++
		}
	case "a":
		if len(w.medicines) == 0 {
			return w, nil
		}
		w.step = stepQuantity
		w.quantity.SetValue("")
		return w, w.quantity.Focus()
	case "enter":
		if len(w.cart) == 0 {
			w.err = "Add at least one item before confirming"
			return w, nil
		}
		cart := w.cart
		return w, func() tea.Msg { return CompleteMsg{Cart: cart} }
	case "esc":
		return w, func() tea.Msg { return CancelledMsg{} }
	}
	return w, nil
}

func (w *Wizard) updateQuantity(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		w.step = stepPick
		w.quantity.Blur()
		return w, nil
	case "enter":
		qty, err := strconv.Atoi(strings.TrimSpace(w.quantity.Value()))
		if err != nil || qty <= 0 {
			w.err = "Quantity must be a positive number"
			return w, nil
		}
		medicine := w.medicines[w.cursor]
		if w.inCart(medicine.ID)+qty > medicine.Quantity {
			w.err = fmt.Sprintf("Only %d in stock", medicine.Quantity)
			return w, nil
		}
		w.addToCart(medicine.ID, qty)
		w.step = stepPick
		w.quantity.Blur()
		return w, nil
	}

	var cmd tea.Cmd
	w.quantity, cmd = w.quantity.Update(msg)
	return w, cmd
}

// inCart returns the quantity of a medicine already carted
func (w *Wizard) inCart(medicineID string) int {
	for _, item := range w.cart {
		if item.MedicineID == medicineID {
			return item.Quantity
		}
	}
	return 0
}

// addToCart merges repeated picks of the same medicine into one line
func (w *Wizard) addToCart(medicineID string, qty int) {
	for i, item := range w.cart {
		if item.MedicineID == medicineID {
			w.cart[i].Quantity += qty
			return
		}
	}
	w.cart = append(w.cart, client.SaleItem{MedicineID: medicineID, Quantity: qty})
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("New sale"))
	sb.WriteString("\n\n")

	if len(w.medicines) == 0 {
		sb.WriteString(normalStyle.Render("The catalog is empty."))
		sb.WriteString("\n\n" + helpStyle.Render("esc cancel"))
		return sb.String()
	}

	for i, m := range w.medicines {
		line := fmt.Sprintf("%s  %.2f  stock %d", m.Name, m.Price, m.Quantity)
		if i == w.cursor {
			sb.WriteString(selectedStyle.Render("> " + line))
		} else {
			sb.WriteString(normalStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	if w.step == stepQuantity {
		sb.WriteString("\nQuantity: " + w.quantity.View() + "\n")
	}

	if len(w.cart) > 0 {
		sb.WriteString("\n" + cartStyle.Render(w.cartSummary()) + "\n")
	}

	if w.err != "" {
		sb.WriteString("\n" + errorStyle.Render(w.err) + "\n")
	}

	if w.step == stepQuantity {
		sb.WriteString("\n" + helpStyle.Render("enter add to cart • esc back"))
	} else {
		sb.WriteString("\n" + helpStyle.Render("↑↓ navigate • a add item • enter confirm sale • esc cancel"))
	}
	return sb.String()
}

// cartSummary renders the cart lines with a running total
func (w *Wizard) cartSummary() string {
	price := make(map[string]float64, len(w.medicines))
	name := make(map[string]string, len(w.medicines))
	for _, m := range w.medicines {
		price[m.ID] = m.Price
		name[m.ID] = m.Name
	}

	var sb strings.Builder
	var total float64
	sb.WriteString("Cart:\n")
	for _, item := range w.cart {
		line := price[item.MedicineID] * float64(item.Quantity)
		total += line
		sb.WriteString(fmt.Sprintf("  %s x%d  %.2f\n", name[item.MedicineID], item.Quantity, line))
	}
	sb.WriteString(fmt.Sprintf("  Total: %.2f", total))
	return sb.String()
}
