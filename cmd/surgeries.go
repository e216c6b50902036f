// ABOUTME: Surgery commands for the clinica CLI
// ABOUTME: Scheduling, surgery types, and staff assignment

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
	surgeryConsultID     string
	surgeryTypeIDFlag    string
	surgeryTypeSearch    string
	surgeryTypeName      string
	surgeryTypeDesc      string
	surgerySpecialistPay float64
	surgeryHospitalCost  float64
	surgeryCost          float64
	surgeryEmployeeID    string
	surgeryAsSpecialist  bool
)

var surgeriesCmd = &cobra.Command{
	Use:   "surgeries",
	Short: "Manage surgeries",
	Long:  `Schedule surgeries, manage the surgery type catalog, and assign staff.`,

	PersistentPreRunE: requireSession,
}

var surgeriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all surgeries",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runSurgeriesList(ctx, os.Stdout))
	},
}

var surgeriesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one surgery",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runSurgeriesGet(ctx, os.Stdout, args[0]))
	},
}

var surgeriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Schedule a surgery billed to a consult",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runSurgeriesCreate(ctx, os.Stdout))
	},
}

var surgeryTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List surgery types, optionally filtered",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runSurgeryTypes(ctx, os.Stdout, cmd))
	},
}

var surgeryTypesCreateCmd = &cobra.Command{
	Use:   "create-type",
	Short: "Add a surgery type to the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runSurgeryTypesCreate(ctx, os.Stdout))
	},
}

var surgeriesStaffCmd = &cobra.Command{
	Use:   "staff <surgery-id>",
	Short: "List the staff assigned to a surgery",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runSurgeriesStaff(ctx, os.Stdout, args[0]))
	},
}

var surgeriesAssignCmd = &cobra.Command{
	Use:   "assign <surgery-id>",
	Short: "Assign an employee or specialist to a surgery",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runSurgeriesAssign(ctx, os.Stdout, args[0], true))
	},
}

var surgeriesUnassignCmd = &cobra.Command{
	Use:   "unassign <surgery-id>",
	Short: "Remove an employee or specialist from a surgery",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runSurgeriesAssign(ctx, os.Stdout, args[0], false))
	},
}

func init() {
	rootCmd.AddCommand(surgeriesCmd)
	surgeriesCmd.AddCommand(surgeriesListCmd, surgeriesGetCmd, surgeriesCreateCmd,
		surgeryTypesCmd, surgeryTypesCreateCmd, surgeriesStaffCmd,
		surgeriesAssignCmd, surgeriesUnassignCmd)

	surgeriesCreateCmd.Flags().StringVar(&surgeryConsultID, "consult", "", "Consult the surgery is billed to")
	surgeriesCreateCmd.Flags().StringVar(&surgeryTypeIDFlag, "type-id", "", "Surgery type id (see: surgeries types)")
	_ = surgeriesCreateCmd.MarkFlagRequired("consult")
	_ = surgeriesCreateCmd.MarkFlagRequired("type-id")

	surgeryTypesCmd.Flags().StringVar(&surgeryTypeSearch, "search", "", "Filter by type name")

	surgeryTypesCreateCmd.Flags().StringVar(&surgeryTypeName, "type", "", "Type name")
	surgeryTypesCreateCmd.Flags().StringVar(&surgeryTypeDesc, "description", "", "Description")
	surgeryTypesCreateCmd.Flags().Float64Var(&surgerySpecialistPay, "specialist-payment", 0, "Specialist payment")
	surgeryTypesCreateCmd.Flags().Float64Var(&surgeryHospitalCost, "hospital-cost", 0, "Hospital cost")
	surgeryTypesCreateCmd.Flags().Float64Var(&surgeryCost, "surgery-cost", 0, "Surgery cost billed to the patient")
	_ = surgeryTypesCreateCmd.MarkFlagRequired("type")
	_ = surgeryTypesCreateCmd.MarkFlagRequired("surgery-cost")

	for _, cmd := range []*cobra.Command{surgeriesAssignCmd, surgeriesUnassignCmd} {
		cmd.Flags().StringVar(&surgeryEmployeeID, "employee", "", "Employee id")
		cmd.Flags().BoolVar(&surgeryAsSpecialist, "specialist", false, "Treat the employee as an external specialist")
		_ = cmd.MarkFlagRequired("employee")
	}
}

// runSurgeriesList fetches and prints all surgeries
func runSurgeriesList(ctx context.Context, w io.Writer) int {
	c := newClient()
	surgeries, err := c.ListSurgeries(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(surgeries))
	} else {
		fmt.Fprint(w, formatSurgeryList(surgeries))
	}
	return 0
}

// runSurgeriesGet fetches one surgery
func runSurgeriesGet(ctx context.Context, w io.Writer, id string) int {
	c := newClient()
	surgery, err := c.GetSurgery(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(surgery))
	} else {
		fmt.Fprint(w, formatSurgery(surgery))
	}
	return 0
}

// runSurgeriesCreate schedules a surgery from the flag values
func runSurgeriesCreate(ctx context.Context, w io.Writer) int {
	c := newClient()
	surgery, err := c.CreateSurgery(ctx, client.CreateSurgeryPayload{
		ConsultID:     surgeryConsultID,
		SurgeryTypeID: surgeryTypeIDFlag,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(surgery))
	} else {
		fmt.Fprintf(w, "Scheduled %s surgery (%s) on consult %s\n", surgery.SurgeryType.Type, surgery.ID, surgery.ConsultID)
	}
	return 0
}

// runSurgeryTypes lists the surgery type catalog
func runSurgeryTypes(ctx context.Context, w io.Writer, cmd *cobra.Command) int {
	var search *string
	if cmd.Flags().Changed("search") {
		search = &surgeryTypeSearch
	}

	c := newClient()
	types, err := c.ListSurgeryTypes(ctx, search)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(types))
	} else {
		for _, t := range types {
			fmt.Fprintf(w, "%s  %s  cost %.2f (hospital %.2f, specialist %.2f)\n",
				t.ID, t.Type, t.SurgeryCost, t.HospitalCost, t.SpecialistPayment)
		}
	}
	return 0
}

// runSurgeryTypesCreate adds a surgery type from the flag values
func runSurgeryTypesCreate(ctx context.Context, w io.Writer) int {
	c := newClient()
	st, err := c.CreateSurgeryType(ctx, client.CreateSurgeryTypePayload{
		Type:              surgeryTypeName,
		Description:       surgeryTypeDesc,
		SpecialistPayment: surgerySpecialistPay,
		HospitalCost:      surgeryHospitalCost,
		SurgeryCost:       surgeryCost,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(st))
	} else {
		fmt.Fprintf(w, "Added surgery type %s (%s)\n", st.Type, st.ID)
	}
	return 0
}

// runSurgeriesStaff lists the staff assigned to a surgery
func runSurgeriesStaff(ctx context.Context, w io.Writer, surgeryID string) int {
	c := newClient()
	staff, err := c.ListSurgeryStaff(ctx, surgeryID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(staff))
	} else {
		fmt.Fprint(w, formatSurgeryStaff(staff))
	}
	return 0
}

// runSurgeriesAssign adds or removes a staff assignment
func runSurgeriesAssign(ctx context.Context, w io.Writer, surgeryID string, add bool) int {
	assignment := client.StaffAssignment{
		SurgeryID:  surgeryID,
		EmployeeID: surgeryEmployeeID,
	}

	c := newClient()
	var err error
	switch {
	case add && surgeryAsSpecialist:
		_, err = c.AddSurgerySpecialist(ctx, assignment)
	case add:
		_, err = c.AddSurgeryEmployee(ctx, assignment)
	case surgeryAsSpecialist:
		_, err = c.RemoveSurgerySpecialist(ctx, assignment)
	default:
		_, err = c.RemoveSurgeryEmployee(ctx, assignment)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	verb := "Assigned"
	if !add {
		verb = "Unassigned"
	}
	fmt.Fprintf(w, "%s employee %s on surgery %s\n", verb, surgeryEmployeeID, surgeryID)
	return 0
}

// formatSurgeryList renders surgeries one per line
func formatSurgeryList(surgeries []client.Surgery) string {
	if len(surgeries) == 0 {
		return "No surgeries scheduled.\n"
	}
	var output string
	for _, s := range surgeries {
		output += fmt.Sprintf("%s  %s  consult %s  cost %.2f  staff %d\n",
			s.ID, s.SurgeryType.Type, s.ConsultID, s.SurgeryCost, len(s.Staff))
	}
	output += fmt.Sprintf("\n%d surgery(ies)\n", len(surgeries))
	return output
}

// formatSurgery renders a single surgery with its staff
func formatSurgery(s *client.Surgery) string {
	output := fmt.Sprintf(`Surgery:   %s (%s)
Consult:   %s
Cost:      %.2f (hospital %.2f)
`, s.SurgeryType.Type, s.ID, s.ConsultID, s.SurgeryCost, s.HospitalCost)
	if len(s.Staff) > 0 {
		output += "\nStaff:\n" + formatSurgeryStaff(s.Staff)
	}
	return output
}

// formatSurgeryStaff renders staff assignments one per line
func formatSurgeryStaff(staff []client.SurgeryStaff) string {
	if len(staff) == 0 {
		return "No staff assigned.\n"
	}
	var output string
	for _, member := range staff {
		switch {
		case member.SpecialistEmployeeID != nil:
			output += fmt.Sprintf("  specialist %s  payment %.2f\n", *member.SpecialistEmployeeID, member.SpecialistPayment)
		case member.EmployeeID != nil:
			output += fmt.Sprintf("  employee %s\n", *member.EmployeeID)
		}
	}
	return output
}
