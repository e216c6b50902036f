// ABOUTME: Vacation commands for the clinica CLI
// ABOUTME: Entitled days plus per-employee period registration

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/clinica-gt/clinica-cli/internal/client"
	"github.com/spf13/cobra"
)

var (
	vacationYear    int
	vacationPeriods []string
)

var vacationsCmd = &cobra.Command{
	Use:   "vacations",
	Short: "Manage staff vacations",
	Long:  `Show the vacation entitlement and register vacation periods per employee and year.`,

	PersistentPreRunE: requireSession,
}

var vacationsDaysCmd = &cobra.Command{
	Use:   "days",
	Short: "Show the vacation days entitlement",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runVacationDays(ctx, os.Stdout))
	},
}

var vacationsListCmd = &cobra.Command{
	Use:   "list <employee-id>",
	Short: "List an employee's vacations for a period year",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runVacationsList(ctx, os.Stdout, args[0]))
	},
}

var vacationsSetCmd = &cobra.Command{
	Use:   "set <employee-id>",
	Short: "Register or replace an employee's vacation periods",
	Long: `Register vacation periods for an employee and period year. Each --period
is beginDate:endDate in YYYY-MM-DD; repeat the flag for multiple ranges.
With --replace, existing periods for the year are overwritten.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		replace, _ := cmd.Flags().GetBool("replace")
		exitOn(runVacationsSet(ctx, os.Stdout, args[0], replace))
	},
}

func init() {
	rootCmd.AddCommand(vacationsCmd)
	vacationsCmd.AddCommand(vacationsDaysCmd, vacationsListCmd, vacationsSetCmd)

	vacationsListCmd.Flags().IntVar(&vacationYear, "year", 0, "Period year")
	_ = vacationsListCmd.MarkFlagRequired("year")

	vacationsSetCmd.Flags().IntVar(&vacationYear, "year", 0, "Period year")
	vacationsSetCmd.Flags().StringArrayVar(&vacationPeriods, "period", nil, "Vacation range as beginDate:endDate (repeatable)")
	vacationsSetCmd.Flags().Bool("replace", false, "Replace existing periods instead of creating new ones")
	_ = vacationsSetCmd.MarkFlagRequired("year")
	_ = vacationsSetCmd.MarkFlagRequired("period")
}

// runVacationDays prints the configured entitlement
func runVacationDays(ctx context.Context, w io.Writer) int {
	c := newClient()
	days, err := c.VacationDays(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(days))
	} else {
		fmt.Fprintf(w, "Vacation entitlement: %d day(s) per period year\n", days.Days)
	}
	return 0
}

// runVacationsList fetches an employee's vacations for the year
func runVacationsList(ctx context.Context, w io.Writer, employeeID string) int {
	c := newClient()
	vacations, err := c.GetVacations(ctx, employeeID, vacationYear)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(vacations))
	} else {
		fmt.Fprint(w, formatVacationList(vacations))
	}
	return 0
}

// runVacationsSet registers or replaces vacation periods
func runVacationsSet(ctx context.Context, w io.Writer, employeeID string, replace bool) int {
	periods, err := parsePeriods(vacationPeriods)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := newClient()
	var vacations []client.Vacation
	if replace {
		vacations, err = c.UpdateVacations(ctx, employeeID, vacationYear, periods)
	} else {
		vacations, err = c.CreateVacations(ctx, employeeID, vacationYear, periods)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(vacations))
	} else {
		fmt.Fprint(w, formatVacationList(vacations))
	}
	return 0
}

// parsePeriods converts beginDate:endDate strings into periods
func parsePeriods(raw []string) ([]client.VacationPeriod, error) {
	periods := make([]client.VacationPeriod, 0, len(raw))
	for _, r := range raw {
		begin, end, found := strings.Cut(r, ":")
		if !found || begin == "" || end == "" {
			return nil, fmt.Errorf("invalid --period %q: expected beginDate:endDate", r)
		}
		periods = append(periods, client.VacationPeriod{BeginDate: begin, EndDate: end})
	}
	return periods, nil
}

// formatVacationList renders vacations one per line
func formatVacationList(vacations []client.Vacation) string {
	if len(vacations) == 0 {
		return "No vacations registered.\n"
	}
	var output string
	for _, v := range vacations {
		status := "planned"
		if v.WasUsed {
			status = "used"
		}
		output += fmt.Sprintf("%s  %s to %s  [%s]\n", v.ID, v.BeginDate, v.EndDate, status)
	}
	output += fmt.Sprintf("\n%d period(s)\n", len(vacations))
	return output
}
