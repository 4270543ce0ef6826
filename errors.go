package stopwatch

import "errors"

const Namespace = "stopwatch"

var (
	ErrInvalidOption = errors.New(Namespace + ": invalid option")
	ErrPanicked      = errors.New(Namespace + ": measured execution panicked")
	ErrCanceled      = errors.New(Namespace + ": measured execution not started, context done")
)
