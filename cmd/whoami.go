// ABOUTME: Whoami command for the clinica CLI
// ABOUTME: Shows the identity attached to the stored session

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Long: `Display the username of the stored session, if any.

Exit codes:
  0 - Logged in
  1 - Not logged in`,
	Run: func(cmd *cobra.Command, args []string) {
		exitOn(runWhoami(os.Stdout, os.Stderr))
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami prints the current session identity and returns an exit code
func runWhoami(w, errW io.Writer) int {
	store, _ := newSession(w, errW)
	user := store.CurrentUser()
	if user == nil {
		if IsJSONOutput() {
			fmt.Fprintln(w, `{"authenticated": false}`)
		} else {
			fmt.Fprintln(w, "Not logged in.")
		}
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]any{
			"authenticated": true,
			"username":      user.Username,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s\n", user.Username)
	}
	return 0
}
