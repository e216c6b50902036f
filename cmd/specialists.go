// ABOUTME: Specialist doctor commands for the clinica CLI
// ABOUTME: List, look up, register, and edit external specialists

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
	specialistSearch     string
	specialistDPI        string
	specialistFirstnames string
	specialistLastnames  string
)

var specialistsCmd = &cobra.Command{
	Use:   "specialists",
	Short: "Manage specialist doctors",
	Long: `List, look up, register, and edit the external specialist doctors
that can be assigned to surgeries.`,

	PersistentPreRunE: requireSession,
}

var specialistsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List specialist doctors",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runSpecialistsList(ctx, os.Stdout, cmd))
	},
}

var specialistsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one specialist by id or --dpi",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		exitOn(runSpecialistsGet(ctx, os.Stdout, id, specialistDPI))
	},
}

var specialistsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new specialist doctor",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runSpecialistsCreate(ctx, os.Stdout))
	},
}

var specialistsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit an existing specialist doctor",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		exitOn(runSpecialistsUpdate(ctx, os.Stdout, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(specialistsCmd)
	specialistsCmd.AddCommand(specialistsListCmd, specialistsGetCmd, specialistsCreateCmd, specialistsUpdateCmd)

	specialistsListCmd.Flags().StringVar(&specialistSearch, "search", "", "Filter by name")

	specialistsGetCmd.Flags().StringVar(&specialistDPI, "dpi", "", "Look up by national id number instead of id")

	specialistsCreateCmd.Flags().StringVar(&specialistFirstnames, "firstnames", "", "Specialist first names")
	specialistsCreateCmd.Flags().StringVar(&specialistLastnames, "lastnames", "", "Specialist last names")
	specialistsCreateCmd.Flags().StringVar(&specialistDPI, "dpi", "", "Specialist national id number")
	_ = specialistsCreateCmd.MarkFlagRequired("firstnames")
	_ = specialistsCreateCmd.MarkFlagRequired("lastnames")
	_ = specialistsCreateCmd.MarkFlagRequired("dpi")

	// The backend replaces the whole record on edit, so all fields are needed
	specialistsUpdateCmd.Flags().StringVar(&specialistFirstnames, "firstnames", "", "Specialist first names")
	specialistsUpdateCmd.Flags().StringVar(&specialistLastnames, "lastnames", "", "Specialist last names")
	specialistsUpdateCmd.Flags().StringVar(&specialistDPI, "dpi", "", "Specialist national id number")
	_ = specialistsUpdateCmd.MarkFlagRequired("firstnames")
	_ = specialistsUpdateCmd.MarkFlagRequired("lastnames")
	_ = specialistsUpdateCmd.MarkFlagRequired("dpi")
}

// runSpecialistsList fetches and prints specialists, optionally searched
func runSpecialistsList(ctx context.Context, w io.Writer, cmd *cobra.Command) int {
	var search *string
	if cmd.Flags().Changed("search") {
		search = &specialistSearch
	}

	c := newClient()
	specialists, err := c.ListSpecialists(ctx, search)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(specialists))
	} else {
		fmt.Fprint(w, formatSpecialistList(specialists))
	}
	return 0
}

// runSpecialistsGet fetches one specialist by id or DPI
func runSpecialistsGet(ctx context.Context, w io.Writer, id, dpi string) int {
	if id == "" && dpi == "" {
		fmt.Fprintln(w, "Error: provide a specialist id or --dpi")
		return 2
	}

	c := newClient()
	var (
		specialist *client.Specialist
		err        error
	)
	if dpi != "" {
		specialist, err = c.GetSpecialistByDPI(ctx, dpi)
	} else {
		specialist, err = c.GetSpecialist(ctx, id)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(specialist))
	} else {
		fmt.Fprint(w, formatSpecialist(specialist))
	}
	return 0
}

// runSpecialistsCreate registers a new specialist from the flag values
func runSpecialistsCreate(ctx context.Context, w io.Writer) int {
	c := newClient()
	specialist, err := c.CreateSpecialist(ctx, client.SpecialistPayload{
		Firstnames: specialistFirstnames,
		Lastnames:  specialistLastnames,
		DPI:        specialistDPI,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(specialist))
	} else {
		fmt.Fprintf(w, "Registered specialist %s %s (%s)\n", specialist.Firstnames, specialist.Lastnames, specialist.ID)
	}
	return 0
}

// runSpecialistsUpdate replaces a specialist's record
func runSpecialistsUpdate(ctx context.Context, w io.Writer, id string) int {
	c := newClient()
	specialist, err := c.UpdateSpecialist(ctx, id, client.SpecialistPayload{
		Firstnames: specialistFirstnames,
		Lastnames:  specialistLastnames,
		DPI:        specialistDPI,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(specialist))
	} else {
		fmt.Fprintf(w, "Updated specialist %s %s (%s)\n", specialist.Firstnames, specialist.Lastnames, specialist.ID)
	}
	return 0
}

// formatSpecialistList renders specialists one per line
func formatSpecialistList(specialists []client.Specialist) string {
	if len(specialists) == 0 {
		return "No specialists registered.\n"
	}
	var output string
	for _, s := range specialists {
		output += fmt.Sprintf("%s  %s %s  DPI %s\n", s.ID, s.Firstnames, s.Lastnames, s.DPI)
	}
	output += fmt.Sprintf("\n%d specialist(s)\n", len(specialists))
	return output
}

// formatSpecialist renders a single specialist
func formatSpecialist(s *client.Specialist) string {
	return fmt.Sprintf(`Specialist:  %s %s
ID:          %s
DPI:         %s
`, s.Firstnames, s.Lastnames, s.ID, s.DPI)
}
