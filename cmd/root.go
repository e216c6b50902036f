// ABOUTME: Root command for the clinica CLI
// ABOUTME: Handles global flags and shared client/session construction

package cmd

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/clinica-gt/clinica-cli/internal/client"
	"github.com/clinica-gt/clinica-cli/internal/config"
	"github.com/clinica-gt/clinica-cli/internal/session"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "clinica",
	Short: "CLI for the clinic administration backend",
	Long: `clinica is a command-line interface for the clinic administration backend.

It manages patients, staff, pharmacy inventory, consults, surgeries,
vacations, and financial reports against the hospital API.

Environment Variables:
  CLINICA_API_URL          Backend API URL (default: http://localhost:8080/api)
  CLINICA_REQUEST_TIMEOUT  Request timeout in seconds (default: 30)
  CLINICA_CONFIG_DIR       Directory for the stored session token`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides CLINICA_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	cfg, _ := config.Load()
	return cfg.APIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newClient builds an API client backed by the persistent credential store
func newClient() *client.Client {
	cfg, _ := config.Load()
	creds := session.NewTokenFile(cfg.ConfigDir)
	return client.NewWithTimeout(GetAPIURL(), creds, time.Duration(cfg.RequestTimeout)*time.Second)
}

// newSession builds the session store wired to the given output streams
func newSession(out, errOut io.Writer) (*session.Store, *session.TokenFile) {
	cfg, _ := config.Load()
	creds := session.NewTokenFile(cfg.ConfigDir)
	api := client.NewWithTimeout(GetAPIURL(), creds, time.Duration(cfg.RequestTimeout)*time.Second)
	store := session.NewStore(api, creds, &session.WriterNotifier{Out: out, Err: errOut})
	store.Restore()
	return store, creds
}

// requireSession rejects data commands when no stored session exists,
// without touching the network
func requireSession(cmd *cobra.Command, args []string) error {
	store, _ := newSession(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if !store.Authenticated() {
		return errors.New("not logged in: run 'clinica login' first")
	}
	return nil
}

// exitOn exits the process for non-zero codes; split out so runX funcs
// stay testable
func exitOn(code int) {
	if code != 0 {
		os.Exit(code)
	}
}
