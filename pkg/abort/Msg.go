package abort

import (
	"fmt"
	"io"
)

// Msg prints an error message and returns the exit status of an
// aborted run.
func Msg(w io.Writer, format string, args ...interface{}) int {
	fmt.Fprintf(w, "Error: "+format+"\n", args...)
	fmt.Fprintln(w, "Aborted")
	return 1
}

// Bug is like Msg, but for failed internal consistency checks.
// The message is printed as is, it already names the problem.
func Bug(w io.Writer, err error) int {
	fmt.Fprintln(w, err)
	fmt.Fprintln(w, "Aborted")
	return 1
}
