package main

import "fmt"

// Exit codes for the tally CLI.
const (
	ExitOK             = 0 // Dashboard rendered.
	ExitInvalidArgs    = 1 // Invalid arguments, flags or config.
	ExitNoInput        = 2 // No checklist documents were found.
	ExitMalformedInput = 3 // A document could not be decoded.
)

type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitNoInput:
			msg = "tally: no checklist documents found"
		case ExitMalformedInput:
			msg = "tally: malformed input"
		default:
			msg = "tally: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
