// ABOUTME: Patient commands for the clinica CLI
// ABOUTME: List, look up, register, and edit patients

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/clinica-gt/clinica-cli/internal/client"
	"github.com/spf13/cobra"
)

var (
	patientDPI        string
	patientFirstnames string
	patientLastnames  string
)

var patientsCmd = &cobra.Command{
	Use:   "patients",
	Short: "Manage patients",
	Long:  `List, look up, register, and edit patients in the clinic registry.`,

	PersistentPreRunE: requireSession,
}

var patientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all patients",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runPatientsList(ctx, os.Stdout))
	},
}

var patientsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one patient by id or --dpi",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		exitOn(runPatientsGet(ctx, os.Stdout, id, patientDPI))
	},
}

var patientsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new patient",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runPatientsCreate(ctx, os.Stdout))
	},
}

var patientsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit an existing patient",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runPatientsUpdate(ctx, os.Stdout, args[0], cmd))
	},
}

func init() {
	rootCmd.AddCommand(patientsCmd)
	patientsCmd.AddCommand(patientsListCmd, patientsGetCmd, patientsCreateCmd, patientsUpdateCmd)

	patientsGetCmd.Flags().StringVar(&patientDPI, "dpi", "", "Look up by national id number instead of id")

	patientsCreateCmd.Flags().StringVar(&patientFirstnames, "firstnames", "", "Patient first names")
	patientsCreateCmd.Flags().StringVar(&patientLastnames, "lastnames", "", "Patient last names")
	patientsCreateCmd.Flags().StringVar(&patientDPI, "dpi", "", "Patient national id number")
	_ = patientsCreateCmd.MarkFlagRequired("firstnames")
	_ = patientsCreateCmd.MarkFlagRequired("lastnames")
	_ = patientsCreateCmd.MarkFlagRequired("dpi")

	patientsUpdateCmd.Flags().StringVar(&patientFirstnames, "firstnames", "", "New first names")
	patientsUpdateCmd.Flags().StringVar(&patientLastnames, "lastnames", "", "New last names")
	patientsUpdateCmd.Flags().StringVar(&patientDPI, "dpi", "", "New national id number")
}

// runPatientsList fetches and prints all patients
func runPatientsList(ctx context.Context, w io.Writer) int {
	c := newClient()
	patients, err := c.ListPatients(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(patients))
	} else {
		fmt.Fprint(w, formatPatientList(patients))
	}
	return 0
}

// runPatientsGet fetches one patient by id or DPI
func runPatientsGet(ctx context.Context, w io.Writer, id, dpi string) int {
	if id == "" && dpi == "" {
		fmt.Fprintln(w, "Error: provide a patient id or --dpi")
		return 2
	}

	c := newClient()
	var (
		patient *client.Patient
		err     error
	)
	if dpi != "" {
		patient, err = c.GetPatientByDPI(ctx, dpi)
	} else {
		patient, err = c.GetPatient(ctx, id)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(patient))
	} else {
		fmt.Fprint(w, formatPatient(patient))
	}
	return 0
}

// runPatientsCreate registers a new patient from the flag values
func runPatientsCreate(ctx context.Context, w io.Writer) int {
	c := newClient()
	patient, err := c.CreatePatient(ctx, client.CreatePatientPayload{
		Firstnames: patientFirstnames,
		Lastnames:  patientLastnames,
		DPI:        patientDPI,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(patient))
	} else {
		fmt.Fprintf(w, "Registered patient %s %s (%s)\n", patient.Firstnames, patient.Lastnames, patient.ID)
	}
	return 0
}

// runPatientsUpdate edits a patient; only flags the user set are sent
func runPatientsUpdate(ctx context.Context, w io.Writer, id string, cmd *cobra.Command) int {
	payload := client.UpdatePatientPayload{}
	if cmd.Flags().Changed("firstnames") {
		payload.Firstnames = &patientFirstnames
	}
	if cmd.Flags().Changed("lastnames") {
		payload.Lastnames = &patientLastnames
	}
	if cmd.Flags().Changed("dpi") {
		payload.DPI = &patientDPI
	}

	c := newClient()
	patient, err := c.UpdatePatient(ctx, id, payload)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(patient))
	} else {
		fmt.Fprintf(w, "Updated patient %s %s (%s)\n", patient.Firstnames, patient.Lastnames, patient.ID)
	}
	return 0
}

// formatPatientList renders patients one per line
func formatPatientList(patients []client.Patient) string {
	if len(patients) == 0 {
		return "No patients registered.\n"
	}
	var output string
	for _, p := range patients {
		output += fmt.Sprintf("%s  %s %s  DPI %s\n", p.ID, p.Firstnames, p.Lastnames, p.DPI)
	}
	output += fmt.Sprintf("\n%d patient(s)\n", len(patients))
	return output
}

// formatPatient renders a single patient
func formatPatient(p *client.Patient) string {
	return fmt.Sprintf(`Patient:  %s %s
ID:       %s
DPI:      %s
`, p.Firstnames, p.Lastnames, p.ID, p.DPI)
}

// formatJSON renders any value as indented JSON
func formatJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}
