package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when the input fails domain validation (malformed id, amount, etc.).
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the referenced parcel, rider, user or session does not exist.
var ErrNotFound = errors.New("not found")

// ErrPrecondition indicates that the record changed under us or is in the wrong state
// for the requested transition. Callers should re-read instead of retrying the write.
var ErrPrecondition = errors.New("precondition failed")

// ErrGateway indicates that the payment processor rejected the call or was unreachable.
var ErrGateway = errors.New("payment gateway error")

// StepError tags an error with the workflow step that produced it.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	if e.Err == nil {
		return e.Step
	}
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// AtStep wraps err with step; nil stays nil.
func AtStep(step string, err error) error {
	if err == nil {
		return nil
	}
	return &StepError{Step: step, Err: err}
}

// Step returns the innermost step recorded in err, or "".
func Step(err error) string {
	step := ""
	for err != nil {
		var se *StepError
		if !errors.As(err, &se) {
			break
		}
		step = se.Step
		err = se.Err
	}
	return step
}

// Code returns a short machine-readable code for err.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalid):
		return "invalid_input"
	case errors.Is(err, ErrGateway):
		return "gateway_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPrecondition):
		return "precondition_failed"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
