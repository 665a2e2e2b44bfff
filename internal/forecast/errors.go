package forecast

import "fmt"

// InputError reports a malformed or missing request shape.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// DataError reports input that is well formed but cannot be modeled:
// unparseable dates or amounts, or too little history.
type DataError struct {
	Message string
	Cause   error
}

func (e *DataError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DataError) Unwrap() error {
	return e.Cause
}

// ComputationError reports a failed model fit, e.g. an optimizer that
// produced no usable parameters.
type ComputationError struct {
	Stage string
	Cause error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("model %s failed: %v", e.Stage, e.Cause)
}

func (e *ComputationError) Unwrap() error {
	return e.Cause
}

// NewInputError returns an InputError with the given message
func NewInputError(msg string) error {
	return &InputError{Message: msg}
}

// ErrInsufficientHistory returns the DataError raised for series shorter than two days
func ErrInsufficientHistory() error {
	return &DataError{Message: MsgInsufficientHistory}
}
