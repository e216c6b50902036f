// ABOUTME: Logout command for the clinica CLI
// ABOUTME: Clears the stored session token

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored session token",
	Long:  `Clear the stored session token. Logging out while already logged out is a no-op.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitOn(runLogout(os.Stdout, os.Stderr))
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns an exit code
func runLogout(w, errW io.Writer) int {
	store, _ := newSession(w, errW)
	store.Logout()
	fmt.Fprintln(w, "Logged out.")
	return 0
}
