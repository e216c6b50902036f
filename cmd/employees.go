// ABOUTME: Employee commands for the clinica CLI
// ABOUTME: Staff listing, hiring, salary changes, and activation state

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
	employeeFirstName string
	employeeLastName  string
	employeeSalary    float64
	employeeIGSS      float64
	employeeIRTRA     float64
	employeeTypeID    string
	employeeUsername  string
	employeePassword  string
	employeeHireDate  string
	employeeSearch    string
	salaryDate        string
	deactivationDate  string
	historyTypeID     string
	reactivationDate  string
)

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "Manage staff",
	Long:  `List, hire, and administer clinic staff, including salary and activation changes.`,

	PersistentPreRunE: requireSession,
}

var employeesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all employees",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runEmployeesList(ctx, os.Stdout))
	},
}

var employeesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one employee with account and history detail",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runEmployeesGet(ctx, os.Stdout, args[0]))
	},
}

var employeesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Hire a new employee with a linked account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runEmployeesCreate(ctx, os.Stdout))
	},
}

var employeesSalaryCmd = &cobra.Command{
	Use:   "salary <id>",
	Short: "Change an employee's salary",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runEmployeesSalary(ctx, os.Stdout, args[0]))
	},
}

var employeesDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Deactivate an employee",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runEmployeesDeactivate(ctx, os.Stdout, args[0]))
	},
}

var employeesReactivateCmd = &cobra.Command{
	Use:   "reactivate <id>",
	Short: "Reactivate a deactivated employee",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runEmployeesReactivate(ctx, os.Stdout, args[0]))
	},
}

var employeesDoctorsCmd = &cobra.Command{
	Use:   "doctors",
	Short: "List employees with the doctor role",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runEmployeesRole(ctx, os.Stdout, cmd, "doctors"))
	},
}

var employeesNursesCmd = &cobra.Command{
	Use:   "nurses",
	Short: "List employees with the nurse role",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runEmployeesRole(ctx, os.Stdout, cmd, "nurses"))
	},
}

var employeesTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List employee types",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runEmployeeTypes(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(employeesCmd)
	employeesCmd.AddCommand(employeesListCmd, employeesGetCmd, employeesCreateCmd,
		employeesSalaryCmd, employeesDeactivateCmd, employeesReactivateCmd,
		employeesDoctorsCmd, employeesNursesCmd, employeesTypesCmd)

	employeesCreateCmd.Flags().StringVar(&employeeFirstName, "first-name", "", "First name")
	employeesCreateCmd.Flags().StringVar(&employeeLastName, "last-name", "", "Last name")
	employeesCreateCmd.Flags().Float64Var(&employeeSalary, "salary", 0, "Monthly salary")
	employeesCreateCmd.Flags().Float64Var(&employeeIGSS, "igss", 0, "IGSS deduction percentage")
	employeesCreateCmd.Flags().Float64Var(&employeeIRTRA, "irtra", 0, "IRTRA deduction percentage")
	employeesCreateCmd.Flags().StringVar(&employeeTypeID, "type-id", "", "Employee type id (see: employees types)")
	employeesCreateCmd.Flags().StringVar(&employeeUsername, "username", "", "Account username")
	employeesCreateCmd.Flags().StringVar(&employeePassword, "user-password", "", "Account password")
	employeesCreateCmd.Flags().StringVar(&employeeHireDate, "hire-date", "", "Hire date (YYYY-MM-DD, defaults to today on the backend)")
	_ = employeesCreateCmd.MarkFlagRequired("first-name")
	_ = employeesCreateCmd.MarkFlagRequired("last-name")
	_ = employeesCreateCmd.MarkFlagRequired("salary")
	_ = employeesCreateCmd.MarkFlagRequired("type-id")
	_ = employeesCreateCmd.MarkFlagRequired("username")
	_ = employeesCreateCmd.MarkFlagRequired("user-password")

	employeesSalaryCmd.Flags().Float64Var(&employeeSalary, "salary", 0, "New monthly salary")
	employeesSalaryCmd.Flags().StringVar(&salaryDate, "date", "", "Effective date (YYYY-MM-DD)")
	_ = employeesSalaryCmd.MarkFlagRequired("salary")
	_ = employeesSalaryCmd.MarkFlagRequired("date")

	employeesDeactivateCmd.Flags().StringVar(&deactivationDate, "date", "", "Deactivation date (YYYY-MM-DD)")
	employeesDeactivateCmd.Flags().StringVar(&historyTypeID, "history-type-id", "", "History type recording the reason")
	_ = employeesDeactivateCmd.MarkFlagRequired("date")
	_ = employeesDeactivateCmd.MarkFlagRequired("history-type-id")

	employeesReactivateCmd.Flags().StringVar(&reactivationDate, "date", "", "Reactivation date (YYYY-MM-DD)")
	_ = employeesReactivateCmd.MarkFlagRequired("date")

	employeesDoctorsCmd.Flags().StringVar(&employeeSearch, "search", "", "Filter by name")
	employeesNursesCmd.Flags().StringVar(&employeeSearch, "search", "", "Filter by name")
}

// runEmployeesList fetches and prints all employees
func runEmployeesList(ctx context.Context, w io.Writer) int {
	c := newClient()
	employees, err := c.ListEmployees(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(employees))
	} else {
		fmt.Fprint(w, formatEmployeeList(employees))
	}
	return 0
}

// runEmployeesGet fetches the compound employee view
func runEmployeesGet(ctx context.Context, w io.Writer, id string) int {
	c := newClient()
	emp, err := c.GetEmployee(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(emp))
	} else {
		fmt.Fprint(w, formatCompoundEmployee(emp))
	}
	return 0
}

// runEmployeesCreate hires an employee from the flag values
func runEmployeesCreate(ctx context.Context, w io.Writer) int {
	payload := client.CreateEmployeePayload{
		FirstName:       employeeFirstName,
		LastName:        employeeLastName,
		Salary:          employeeSalary,
		IGSSPercentage:  &employeeIGSS,
		IRTRAPercentage: &employeeIRTRA,
		EmployeeTypeID:  client.IDRef{ID: employeeTypeID},
		CreateUser: client.CreateUserPayload{
			Username: employeeUsername,
			Password: employeePassword,
		},
	}
	if employeeHireDate != "" {
		payload.HireDate = &client.DatePayload{HistoryDate: employeeHireDate}
	}

	c := newClient()
	emp, err := c.CreateEmployee(ctx, payload)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(emp))
	} else {
		fmt.Fprintf(w, "Hired %s %s (%s)\n", emp.FirstName, emp.LastName, emp.ID)
	}
	return 0
}

// runEmployeesSalary applies a salary change
func runEmployeesSalary(ctx context.Context, w io.Writer, id string) int {
	c := newClient()
	emp, err := c.UpdateEmployeeSalary(ctx, id, client.SalaryPayload{
		Salary:     employeeSalary,
		SalaryDate: salaryDate,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(emp))
	} else {
		fmt.Fprintf(w, "Updated salary for %s %s to %.2f\n", emp.FirstName, emp.LastName, emp.Salary)
	}
	return 0
}

// runEmployeesDeactivate deactivates an employee
func runEmployeesDeactivate(ctx context.Context, w io.Writer, id string) int {
	c := newClient()
	err := c.DeactivateEmployee(ctx, id, client.DeactivatePayload{
		DeactivationDate: deactivationDate,
		HistoryTypeID:    client.IDRef{ID: historyTypeID},
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintf(w, "Deactivated employee %s\n", id)
	return 0
}

// runEmployeesReactivate reactivates an employee
func runEmployeesReactivate(ctx context.Context, w io.Writer, id string) int {
	c := newClient()
	err := c.ReactivateEmployee(ctx, id, client.ReactivatePayload{
		ReactivationDate: reactivationDate,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintf(w, "Reactivated employee %s\n", id)
	return 0
}

// runEmployeesRole lists doctors or nurses with an optional name filter
func runEmployeesRole(ctx context.Context, w io.Writer, cmd *cobra.Command, role string) int {
	var search *string
	if cmd.Flags().Changed("search") {
		search = &employeeSearch
	}

	c := newClient()
	var (
		employees []client.Employee
		err       error
	)
	if role == "doctors" {
		employees, err = c.ListDoctors(ctx, search)
	} else {
		employees, err = c.ListNurses(ctx, search)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(employees))
	} else {
		fmt.Fprint(w, formatEmployeeList(employees))
	}
	return 0
}

// runEmployeeTypes lists the employee type catalog
func runEmployeeTypes(ctx context.Context, w io.Writer) int {
	c := newClient()
	types, err := c.ListEmployeeTypes(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(types))
	} else {
		for _, t := range types {
			fmt.Fprintf(w, "%s  %s\n", t.ID, t.Name)
		}
	}
	return 0
}

// formatEmployeeList renders employees one per line
func formatEmployeeList(employees []client.Employee) string {
	if len(employees) == 0 {
		return "No employees found.\n"
	}
	var output string
	for _, e := range employees {
		line := fmt.Sprintf("%s  %s %s  salary %.2f", e.ID, e.FirstName, e.LastName, e.Salary)
		if e.DesactivatedAt != "" {
			line += "  [deactivated]"
		}
		output += line + "\n"
	}
	output += fmt.Sprintf("\n%d employee(s)\n", len(employees))
	return output
}

// formatCompoundEmployee renders the employee detail view
func formatCompoundEmployee(emp *client.CompoundEmployee) string {
	e := emp.Employee
	output := fmt.Sprintf(`Employee:  %s %s
ID:        %s
Username:  %s
Salary:    %.2f
IGSS:      %.2f%%
IRTRA:     %.2f%%
`, e.FirstName, e.LastName, e.ID, emp.Username, e.Salary, e.IGSSPercentage, e.IRTRAPercentage)
	if e.DesactivatedAt != "" {
		output += fmt.Sprintf("Status:    deactivated since %s\n", e.DesactivatedAt)
	}
	if len(emp.Histories) > 0 {
		output += "\nHistory:\n"
		for _, h := range emp.Histories {
			output += fmt.Sprintf("  %s  %s  %s\n", h.HistoryDate, h.HistoryType.Name, h.Commentary)
		}
	}
	return output
}
