// ABOUTME: Login command for the clinica CLI
// ABOUTME: Authenticates against the backend and persists the session token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in to the clinic backend",
	Long: `Authenticate against the clinic backend and store the session token.

The token is stored in the config directory and attached to every
subsequent request. Missing username or password is prompted for
interactively.

Exit codes:
  0 - Logged in
  1 - Authentication rejected
  2 - Error (connectivity, canceled prompt)`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		username := ""
		if len(args) > 0 {
			username = args[0]
		}

		exitOn(runLogin(ctx, os.Stdout, os.Stderr, username, loginPassword))
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
}

// runLogin authenticates and returns an exit code
func runLogin(ctx context.Context, w, errW io.Writer, username, password string) int {
	if username == "" || password == "" {
		var err error
		username, password, err = promptCredentials(username)
		if err != nil {
			fmt.Fprintf(errW, "Error: %v\n", err)
			return 2
		}
	}

	store, _ := newSession(w, errW)
	if !store.Login(ctx, username, password) {
		return 1
	}
	return 0
}

// promptCredentials asks for whichever of username/password is missing
func promptCredentials(username string) (string, string, error) {
	var password string

	fields := []huh.Field{}
	if username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&username))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password))

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return username, password, nil
}
