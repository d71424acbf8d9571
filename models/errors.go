package models

import "errors"

// Engine error kinds. Callers branch on these with errors.Is; the
// envelope carries the kind name across the module boundary.
var (
	// ErrInsufficientData means the supplied history is shorter than
	// the required window. Recoverable by fetching more history.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidInput means an argument is outside its domain
	// (non-positive price, probability outside [0,1], etc).
	ErrInvalidInput = errors.New("invalid input")

	// ErrComputationDefect means a result landed outside its documented
	// valid range, which points at a logic or upstream-data defect.
	ErrComputationDefect = errors.New("computation defect")
)

// ErrorKind names the taxonomy bucket for err, or "internal" when the
// error does not wrap a known kind.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrComputationDefect):
		return "computation_defect"
	}
	return "internal"
}

// Envelope is the uniform result wrapper every engine output carries,
// so batch callers can branch on success without exceptions crossing
// the boundary.
type Envelope struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}

// OK returns a success envelope.
func OK() Envelope {
	return Envelope{Success: true}
}

// Failure folds err into a failure envelope.
func Failure(err error) Envelope {
	return Envelope{Success: false, Error: err.Error(), ErrorKind: ErrorKind(err)}
}
