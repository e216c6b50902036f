// ABOUTME: Writer-backed notifier for command-line use
// ABOUTME: The CLI analogue of a toast: one line per outcome

package session

import (
	"fmt"
	"io"
)

// WriterNotifier prints session outcomes to a pair of writers
type WriterNotifier struct {
	Out io.Writer
	Err io.Writer
}

// Success implements Notifier
func (n *WriterNotifier) Success(msg string) {
	fmt.Fprintln(n.Out, msg)
}

// Error implements Notifier
func (n *WriterNotifier) Error(msg string) {
	fmt.Fprintf(n.Err, "Error: %s\n", msg)
}
