// ABOUTME: Entry point for the clinica CLI
// ABOUTME: Command-line admin tool for the clinic management backend

package main

import (
	"fmt"
	"os"

	"github.com/clinica-gt/clinica-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
