// ABOUTME: Report commands for the clinica CLI
// ABOUTME: Inventory, profit, and staff lifecycle reports

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinica-gt/clinica-cli/internal/client"
	"github.com/spf13/cobra"
)

var (
	reportName           string
	reportStartDate      string
	reportEndDate        string
	reportEmployeeName   string
	reportEmployeeCUI    string
	reportEmployeeTypeID string
	reportHistoryTypes   []string
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Run financial and staff reports",
	Long:  `Run inventory, medication profit, employee profit, and staff lifecycle reports.`,

	PersistentPreRunE: requireSession,
}

var reportsMedicationCmd = &cobra.Command{
	Use:   "medication",
	Short: "Inventory report, optionally filtered by name",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runReportMedication(ctx, os.Stdout, cmd))
	},
}

var reportsMedicationProfitCmd = &cobra.Command{
	Use:   "medication-profit",
	Short: "Profit breakdown per medication",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runReportMedicationProfit(ctx, os.Stdout, cmd))
	},
}

var reportsEmployeeProfitCmd = &cobra.Command{
	Use:   "employee-profit",
	Short: "Profit breakdown per employee",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runReportEmployeeProfit(ctx, os.Stdout, cmd))
	},
}

var reportsLifecycleCmd = &cobra.Command{
	Use:   "lifecycle",
	Short: "Staff lifecycle report (hires, salary changes, deactivations)",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runReportLifecycle(ctx, os.Stdout, cmd))
	},
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(reportsMedicationCmd, reportsMedicationProfitCmd,
		reportsEmployeeProfitCmd, reportsLifecycleCmd)

	reportsMedicationCmd.Flags().StringVar(&reportName, "name", "", "Filter by medication name")

	reportsMedicationProfitCmd.Flags().StringVar(&reportName, "name", "", "Filter by medication name")
	reportsMedicationProfitCmd.Flags().StringVar(&reportStartDate, "start", "", "Start date (YYYY-MM-DD)")
	reportsMedicationProfitCmd.Flags().StringVar(&reportEndDate, "end", "", "End date (YYYY-MM-DD)")

	reportsEmployeeProfitCmd.Flags().StringVar(&reportEmployeeName, "name", "", "Filter by employee name")
	reportsEmployeeProfitCmd.Flags().StringVar(&reportEmployeeCUI, "cui", "", "Filter by employee CUI")

	reportsLifecycleCmd.Flags().StringVar(&reportEmployeeTypeID, "type-id", "", "Filter by employee type")
	reportsLifecycleCmd.Flags().StringVar(&reportStartDate, "start", "", "Start date (YYYY-MM-DD)")
	reportsLifecycleCmd.Flags().StringVar(&reportEndDate, "end", "", "End date (YYYY-MM-DD)")
	reportsLifecycleCmd.Flags().StringSliceVar(&reportHistoryTypes, "history-type", nil, "History type ids to include (repeatable)")
}

// runReportMedication runs the inventory report
func runReportMedication(ctx context.Context, w io.Writer, cmd *cobra.Command) int {
	var name *string
	if cmd.Flags().Changed("name") {
		name = &reportName
	}

	c := newClient()
	medicines, err := c.MedicationReport(ctx, name)
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

// runReportMedicationProfit runs the per-medication profit report
func runReportMedicationProfit(ctx context.Context, w io.Writer, cmd *cobra.Command) int {
	var name *string
	if cmd.Flags().Changed("name") {
		name = &reportName
	}
	start, end, err := parseDateRange(cmd)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := newClient()
	report, err := c.MedicationProfitReport(ctx, name, start, end)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(report))
		return 0
	}

	fmt.Fprint(w, formatFinancialSummary(report.FinancialSummary))
	for _, med := range report.SalePerMedication {
		fmt.Fprintf(w, "\n%s: %d sale(s)\n", med.MedicationName, len(med.Sales))
		for _, s := range med.Sales {
			fmt.Fprintf(w, "  qty %d  total %.2f  profit %.2f\n", s.Quantity, s.Total, s.Profit)
		}
	}
	return 0
}

// runReportEmployeeProfit runs the per-employee profit report
func runReportEmployeeProfit(ctx context.Context, w io.Writer, cmd *cobra.Command) int {
	var name, cui *string
	if cmd.Flags().Changed("name") {
		name = &reportEmployeeName
	}
	if cmd.Flags().Changed("cui") {
		cui = &reportEmployeeCUI
	}

	c := newClient()
	report, err := c.EmployeeProfitReport(ctx, name, cui)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(report))
		return 0
	}

	fmt.Fprint(w, formatFinancialSummary(report.FinancialSummary))
	for _, emp := range report.SalePerEmployee {
		fmt.Fprintf(w, "\n%s (%s): %d sale(s)\n", emp.EmployeeFullName, emp.EmployeeType, len(emp.Sales))
		for _, s := range emp.Sales {
			fmt.Fprintf(w, "  qty %d  total %.2f  profit %.2f\n", s.Quantity, s.Total, s.Profit)
		}
	}
	return 0
}

// runReportLifecycle runs the staff lifecycle report
func runReportLifecycle(ctx context.Context, w io.Writer, cmd *cobra.Command) int {
	filter := client.LifecycleFilter{HistoryTypeIDs: reportHistoryTypes}
	if cmd.Flags().Changed("type-id") {
		filter.EmployeeTypeID = &reportEmployeeTypeID
	}
	start, end, err := parseDateRange(cmd)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	filter.StartDate = start
	filter.EndDate = end

	c := newClient()
	histories, err := c.EmployeeLifecycleReport(ctx, filter)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(histories))
		return 0
	}

	if len(histories) == 0 {
		fmt.Fprintln(w, "No lifecycle entries found.")
		return 0
	}
	for _, h := range histories {
		fmt.Fprintf(w, "%s  %s  %s\n", h.HistoryDate, h.HistoryType.Name, h.Commentary)
	}
	return 0
}

// parseDateRange reads the --start and --end flags as dates
func parseDateRange(cmd *cobra.Command) (start, end *time.Time, err error) {
	if cmd.Flags().Changed("start") {
		t, err := time.Parse("2006-01-02", reportStartDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --start date %q: expected YYYY-MM-DD", reportStartDate)
		}
		start = &t
	}
	if cmd.Flags().Changed("end") {
		t, err := time.Parse("2006-01-02", reportEndDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --end date %q: expected YYYY-MM-DD", reportEndDate)
		}
		end = &t
	}
	return start, end, nil
}

// formatFinancialSummary renders the money columns of a profit report
func formatFinancialSummary(s client.FinancialSummary) string {
	return fmt.Sprintf(`Sales:   %.2f
Cost:    %.2f
Profit:  %.2f
`, s.TotalSales, s.TotalCost, s.TotalProfit)
}
