package pickbuild

import "strings"

// exitError is a sentinel that also carries the process exit status.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }
func (e *exitError) ExitCode() int { return e.code }

var (
	// ErrHelp is returned by ParseArgs for -h and --help.
	ErrHelp = &exitError{code: 1, msg: "help requested"}
	// ErrAborted means the confirmation prompt was not answered.
	ErrAborted = &exitError{code: 1, msg: "aborted"}
	// ErrNoTerminal means stdin is not a terminal and that was not allowed.
	ErrNoTerminal = &exitError{code: 1, msg: "stdin is not a terminal; set allow_non_terminal to confirm from a pipe"}
	// ErrWrongPackageDir means the working directory is not a known package.
	ErrWrongPackageDir = &exitError{code: 1, msg: "working directory is not a configured package"}
)

// UsageError lists every problem found on the command line.
type UsageError struct {
	Problems []string
}

func (e *UsageError) Error() string {
	return "usage: " + strings.Join(e.Problems, "; ")
}

func (e *UsageError) ExitCode() int { return 1 }
