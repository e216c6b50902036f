// ABOUTME: UI command for the clinica CLI
// ABOUTME: Launches the interactive terminal interface

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/clinica-gt/clinica-cli/internal/client"
	"github.com/clinica-gt/clinica-cli/internal/config"
	"github.com/clinica-gt/clinica-cli/internal/session"
	"github.com/clinica-gt/clinica-cli/internal/tui"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive terminal interface",
	Long: `Launch the interactive terminal interface for browsing patients,
staff, pharmacy inventory, consults, and surgeries. Starts at the login
screen unless a stored session exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _ := config.Load()
		creds := session.NewTokenFile(cfg.ConfigDir)
		api := client.NewWithTimeout(GetAPIURL(), creds, time.Duration(cfg.RequestTimeout)*time.Second)

		if err := tui.Run(api, creds); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
