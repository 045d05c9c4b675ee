package main

import (
	"fmt"
	"io"
	"os"

	"github.com/suykerbuyk/chronal/internal/solve"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitBadInput = 2 // malformed line or no deltas
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the command tree and maps errors to exit codes: bad input
// is exitBadInput, anything else exitFailure.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "chronal: %v\n", err)
		if solve.IsInputError(err) {
			return exitBadInput
		}
		return exitFailure
	}
	return exitOK
}
