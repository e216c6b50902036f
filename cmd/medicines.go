// ABOUTME: Pharmacy commands for the clinica CLI
// ABOUTME: Medicine catalog management and cart sales

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/clinica-gt/clinica-cli/internal/client"
	"github.com/spf13/cobra"
)

var (
	medicineName        string
	medicineDescription string
	medicinePrice       float64
	medicineQuantity    int
	medicineMinQuantity int
	saleItems           []string
	saleConsultID       string
)

var medicinesCmd = &cobra.Command{
	Use:   "medicines",
	Short: "Manage the pharmacy inventory",
	Long:  `List, add, and edit medicines, and record cart sales.`,

	PersistentPreRunE: requireSession,
}

var medicinesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the medicine catalog",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runMedicinesList(ctx, os.Stdout))
	},
}

var medicinesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one medicine",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runMedicinesGet(ctx, os.Stdout, args[0]))
	},
}

var medicinesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a medicine to the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runMedicinesCreate(ctx, os.Stdout))
	},
}

var medicinesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a medicine",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runMedicinesUpdate(ctx, os.Stdout, args[0], cmd))
	},
}

var medicinesSellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Record a cart sale",
	Long: `Record a cart sale. Each --item is medicineId:quantity; repeat the flag
for multiple line items. With --consult the sale is billed to that consult
instead of over the counter.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runMedicinesSell(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(medicinesCmd)
	medicinesCmd.AddCommand(medicinesListCmd, medicinesGetCmd, medicinesCreateCmd,
		medicinesUpdateCmd, medicinesSellCmd)

	medicinesCreateCmd.Flags().StringVar(&medicineName, "name", "", "Medicine name")
	medicinesCreateCmd.Flags().StringVar(&medicineDescription, "description", "", "Description")
	medicinesCreateCmd.Flags().Float64Var(&medicinePrice, "price", 0, "Unit price")
	medicinesCreateCmd.Flags().IntVar(&medicineQuantity, "quantity", 0, "Units in stock")
	medicinesCreateCmd.Flags().IntVar(&medicineMinQuantity, "min-quantity", 0, "Restock threshold")
	_ = medicinesCreateCmd.MarkFlagRequired("name")
	_ = medicinesCreateCmd.MarkFlagRequired("price")

	medicinesUpdateCmd.Flags().StringVar(&medicineName, "name", "", "New name")
	medicinesUpdateCmd.Flags().StringVar(&medicineDescription, "description", "", "New description")
	medicinesUpdateCmd.Flags().Float64Var(&medicinePrice, "price", 0, "New unit price")
	medicinesUpdateCmd.Flags().IntVar(&medicineQuantity, "quantity", 0, "New stock count")
	medicinesUpdateCmd.Flags().IntVar(&medicineMinQuantity, "min-quantity", 0, "New restock threshold")

	medicinesSellCmd.Flags().StringArrayVar(&saleItems, "item", nil, "Cart line as medicineId:quantity (repeatable)")
	medicinesSellCmd.Flags().StringVar(&saleConsultID, "consult", "", "Bill the sale to this consult")
	_ = medicinesSellCmd.MarkFlagRequired("item")
}

// runMedicinesList fetches and prints the catalog
func runMedicinesList(ctx context.Context, w io.Writer) int {
	c := newClient()
	medicines, err := c.ListMedicines(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(medicines))
	} else {
		fmt.Fprint(w, formatMedicineList(medicines))
	}
	return 0
}

// runMedicinesGet fetches one medicine
func runMedicinesGet(ctx context.Context, w io.Writer, id string) int {
	c := newClient()
	medicine, err := c.GetMedicine(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(medicine))
	} else {
		fmt.Fprint(w, formatMedicine(medicine))
	}
	return 0
}

// runMedicinesCreate adds a medicine from the flag values
func runMedicinesCreate(ctx context.Context, w io.Writer) int {
	c := newClient()
	medicine, err := c.CreateMedicine(ctx, client.CreateMedicinePayload{
		Name:        medicineName,
		Description: medicineDescription,
		Price:       medicinePrice,
		Quantity:    medicineQuantity,
		MinQuantity: medicineMinQuantity,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(medicine))
	} else {
		fmt.Fprintf(w, "Added %s (%s)\n", medicine.Name, medicine.ID)
	}
	return 0
}

// runMedicinesUpdate edits a medicine; only flags the user set are sent
func runMedicinesUpdate(ctx context.Context, w io.Writer, id string, cmd *cobra.Command) int {
	payload := client.UpdateMedicinePayload{}
	if cmd.Flags().Changed("name") {
		payload.Name = &medicineName
	}
	if cmd.Flags().Changed("description") {
		payload.Description = &medicineDescription
	}
	if cmd.Flags().Changed("price") {
		payload.Price = &medicinePrice
	}
	if cmd.Flags().Changed("quantity") {
		payload.Quantity = &medicineQuantity
	}
	if cmd.Flags().Changed("min-quantity") {
		payload.MinQuantity = &medicineMinQuantity
	}

	c := newClient()
	medicine, err := c.UpdateMedicine(ctx, id, payload)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(medicine))
	} else {
		fmt.Fprintf(w, "Updated %s (%s)\n", medicine.Name, medicine.ID)
	}
	return 0
}

// runMedicinesSell posts a cart sale from the --item flags
func runMedicinesSell(ctx context.Context, w io.Writer) int {
	cart, err := parseCart(saleItems)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := newClient()
	var sales []client.Sale
	if saleConsultID != "" {
		consultCart := make([]client.ConsultSaleItem, len(cart))
		for i, item := range cart {
			consultCart[i] = client.ConsultSaleItem{
				ConsultID:  saleConsultID,
				MedicineID: item.MedicineID,
				Quantity:   item.Quantity,
			}
		}
		sales, err = c.SellMedicinesToConsult(ctx, consultCart)
	} else {
		sales, err = c.SellMedicines(ctx, cart)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(sales))
	} else {
		fmt.Fprint(w, formatSales(sales))
	}
	return 0
}

// parseCart converts id:quantity strings into cart line items
func parseCart(items []string) ([]client.SaleItem, error) {
	cart := make([]client.SaleItem, 0, len(items))
	for _, item := range items {
		id, qtyStr, found := strings.Cut(item, ":")
		if !found || id == "" {
			return nil, fmt.Errorf("invalid --item %q: expected medicineId:quantity", item)
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("invalid quantity in --item %q", item)
		}
		cart = append(cart, client.SaleItem{MedicineID: id, Quantity: qty})
	}
	return cart, nil
}

// formatMedicineList renders the catalog one medicine per line
func formatMedicineList(medicines []client.Medicine) string {
	if len(medicines) == 0 {
		return "No medicines in the catalog.\n"
	}
	var output string
	for _, m := range medicines {
		line := fmt.Sprintf("%s  %s  %.2f  stock %d", m.ID, m.Name, m.Price, m.Quantity)
		if m.Quantity <= m.MinQuantity {
			line += "  [low stock]"
		}
		output += line + "\n"
	}
	output += fmt.Sprintf("\n%d medicine(s)\n", len(medicines))
	return output
}

// formatMedicine renders a single medicine
func formatMedicine(m *client.Medicine) string {
	return fmt.Sprintf(`Medicine:     %s
ID:           %s
Description:  %s
Price:        %.2f
Stock:        %d (restock at %d)
`, m.Name, m.ID, m.Description, m.Price, m.Quantity, m.MinQuantity)
}

// formatSales renders recorded sales with a total line
func formatSales(sales []client.Sale) string {
	var output string
	var total float64
	for _, s := range sales {
		output += fmt.Sprintf("%s  qty %d  @ %.2f  = %.2f\n", s.ID, s.Quantity, s.Price, s.Total)
		total += s.Total
	}
	output += fmt.Sprintf("\nTotal: %.2f\n", total)
	return output
}
