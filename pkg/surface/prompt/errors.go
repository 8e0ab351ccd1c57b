package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrOutOfRange rejects a slider answer outside its bounds.
	ErrOutOfRange = errors.New("prompt: value out of range")
	// ErrNotANumber rejects a slider answer that does not parse.
	ErrNotANumber = errors.New("prompt: not a number")
)
