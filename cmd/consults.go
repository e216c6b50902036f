// ABOUTME: Consult commands for the clinica CLI
// ABOUTME: Filtered listing, opening, editing, and paying consults

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/clinica-gt/clinica-cli/internal/client"
	"github.com/spf13/cobra"
)

var (
	consultPatientID   string
	consultPatientDPI  string
	consultEmployeeID  string
	consultIsPaid      bool
	consultIsInternado bool
	consultCost        float64
)

var consultsCmd = &cobra.Command{
	Use:   "consults",
	Short: "Manage consultations",
	Long:  `List, open, edit, and pay patient consultations.`,

	PersistentPreRunE: requireSession,
}

var consultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List consults, optionally filtered",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runConsultsList(ctx, os.Stdout, cmd))
	},
}

var consultsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one consult",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runConsultsGet(ctx, os.Stdout, args[0]))
	},
}

var consultsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a consult for a patient",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runConsultsCreate(ctx, os.Stdout))
	},
}

var consultsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a consult",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runConsultsUpdate(ctx, os.Stdout, args[0], cmd))
	},
}

var consultsPayCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Mark a consult as paid",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runConsultsPay(ctx, os.Stdout, args[0]))
	},
}

var consultsTotalCmd = &cobra.Command{
	Use:   "total <id>",
	Short: "Show the running cost of a consult",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runConsultsTotal(ctx, os.Stdout, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(consultsCmd)
	consultsCmd.AddCommand(consultsListCmd, consultsGetCmd, consultsCreateCmd,
		consultsUpdateCmd, consultsPayCmd, consultsTotalCmd)

	consultsListCmd.Flags().StringVar(&consultPatientID, "patient", "", "Filter by patient id")
	consultsListCmd.Flags().StringVar(&consultPatientDPI, "dpi", "", "Filter by patient national id number")
	consultsListCmd.Flags().StringVar(&consultEmployeeID, "employee", "", "Filter by attending employee id")
	consultsListCmd.Flags().BoolVar(&consultIsPaid, "paid", false, "Filter by payment state")
	consultsListCmd.Flags().BoolVar(&consultIsInternado, "admitted", false, "Filter by admission state")

	consultsCreateCmd.Flags().StringVar(&consultPatientID, "patient", "", "Patient id")
	consultsCreateCmd.Flags().StringVar(&consultEmployeeID, "employee", "", "Attending employee id")
	consultsCreateCmd.Flags().Float64Var(&consultCost, "cost", 0, "Consultation fee")
	_ = consultsCreateCmd.MarkFlagRequired("patient")
	_ = consultsCreateCmd.MarkFlagRequired("employee")
	_ = consultsCreateCmd.MarkFlagRequired("cost")

	consultsUpdateCmd.Flags().BoolVar(&consultIsInternado, "admitted", false, "Set the admission state")
	consultsUpdateCmd.Flags().Float64Var(&consultCost, "cost", 0, "New consultation fee")
}

// runConsultsList fetches consults matching the set filter flags
func runConsultsList(ctx context.Context, w io.Writer, cmd *cobra.Command) int {
	filter := client.ConsultFilter{}
	if cmd.Flags().Changed("patient") {
		filter.PatientID = &consultPatientID
	}
	if cmd.Flags().Changed("dpi") {
		filter.PatientDPI = &consultPatientDPI
	}
	if cmd.Flags().Changed("employee") {
		filter.EmployeeID = &consultEmployeeID
	}
	if cmd.Flags().Changed("paid") {
		filter.IsPaid = &consultIsPaid
	}
	if cmd.Flags().Changed("admitted") {
		filter.IsInternado = &consultIsInternado
	}

	c := newClient()
	consults, err := c.ListConsults(ctx, filter)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(consults))
	} else {
		fmt.Fprint(w, formatConsultList(consults))
	}
	return 0
}

// runConsultsGet fetches one consult
func runConsultsGet(ctx context.Context, w io.Writer, id string) int {
	c := newClient()
	consult, err := c.GetConsult(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(consult))
	} else {
		fmt.Fprint(w, formatConsult(consult))
	}
	return 0
}

// runConsultsCreate opens a consult from the flag values
func runConsultsCreate(ctx context.Context, w io.Writer) int {
	c := newClient()
	consult, err := c.CreateConsult(ctx, client.CreateConsultPayload{
		PatientID:     consultPatientID,
		EmployeeID:    consultEmployeeID,
		CostoConsulta: consultCost,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(consult))
	} else {
		fmt.Fprintf(w, "Opened consult %s for %s %s\n", consult.ID, consult.Patient.Firstnames, consult.Patient.Lastnames)
	}
	return 0
}

// runConsultsUpdate edits a consult; only flags the user set are sent
func runConsultsUpdate(ctx context.Context, w io.Writer, id string, cmd *cobra.Command) int {
	payload := client.UpdateConsultPayload{}
	if cmd.Flags().Changed("admitted") {
		payload.IsInternado = &consultIsInternado
	}
	if cmd.Flags().Changed("cost") {
		payload.CostoConsulta = &consultCost
	}

	c := newClient()
	consult, err := c.UpdateConsult(ctx, id, payload)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(consult))
	} else {
		fmt.Fprintf(w, "Updated consult %s\n", consult.ID)
	}
	return 0
}

// runConsultsPay settles a consult and prints the final total
func runConsultsPay(ctx context.Context, w io.Writer, id string) int {
	c := newClient()
	total, err := c.PayConsult(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(total))
	} else {
		fmt.Fprintf(w, "Paid consult %s: total %.2f\n", total.ConsultID, total.TotalCost)
	}
	return 0
}

// runConsultsTotal prints the running cost of a consult
func runConsultsTotal(ctx context.Context, w io.Writer, id string) int {
	c := newClient()
	total, err := c.ConsultTotal(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(total))
	} else {
		fmt.Fprintf(w, "Consult %s: total %.2f\n", total.ConsultID, total.TotalCost)
	}
	return 0
}

// formatConsultList renders consults one per line
func formatConsultList(consults []client.Consult) string {
	if len(consults) == 0 {
		return "No consults found.\n"
	}
	var output string
	for _, c := range consults {
		status := "unpaid"
		if c.IsPaid {
			status = "paid"
		}
		line := fmt.Sprintf("%s  %s %s  %.2f  [%s]", c.ID, c.Patient.Firstnames, c.Patient.Lastnames, c.CostoTotal, status)
		if c.IsInternado {
			line += " [admitted]"
		}
		output += line + "\n"
	}
	output += fmt.Sprintf("\n%d consult(s)\n", len(consults))
	return output
}

// formatConsult renders a single consult
func formatConsult(c *client.Consult) string {
	status := "unpaid"
	if c.IsPaid {
		status = "paid"
	}
	admitted := "no"
	if c.IsInternado {
		admitted = "yes"
	}
	return fmt.Sprintf(`Consult:   %s
Patient:   %s %s (DPI %s)
Fee:       %.2f
Total:     %.2f
Status:    %s
Admitted:  %s
Opened:    %s
`, c.ID, c.Patient.Firstnames, c.Patient.Lastnames, c.Patient.DPI,
		c.CostoConsulta, c.CostoTotal, status, admitted, c.CreatedAt)
}
