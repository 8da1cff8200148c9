// internal/trade/errors.go
package trade

import (
	"errors"
	"fmt"
)

var (
	// ErrInputInvalid marks amounts that are missing, non-numeric or non-positive.
	ErrInputInvalid = errors.New("invalid trade input")

	// ErrSubmissionTimeout is returned when the submitter exceeds the engine's bound.
	ErrSubmissionTimeout = errors.New("submission timed out")

	// ErrSubmissionCancelled is returned when an in-flight attempt is cancelled.
	ErrSubmissionCancelled = errors.New("submission cancelled")

	// ErrSubmissionInFlight is returned when submitting while not idle.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)

// ValidationError explains why a request was rejected before submission.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInputInvalid, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInputInvalid
}

// FailureReason is the closed set of execution failures.
type FailureReason string

const (
	FailureInsufficientFunds FailureReason = "insufficient_funds"
	FailureSlippageExceeded  FailureReason = "slippage_exceeded"
	FailureNetwork           FailureReason = "network"
	FailureRejected          FailureReason = "rejected"
)

// Describe returns a user-facing description of the reason
func (r FailureReason) Describe() string {
	switch r {
	case FailureInsufficientFunds:
		return "insufficient funds"
	case FailureSlippageExceeded:
		return "price moved beyond slippage tolerance"
	case FailureNetwork:
		return "network error"
	case FailureRejected:
		return "rejected by execution backend"
	default:
		return string(r)
	}
}

// ParseFailureReason maps a configured string onto a FailureReason.
func ParseFailureReason(s string) (FailureReason, bool) {
	switch r := FailureReason(s); r {
	case FailureInsufficientFunds, FailureSlippageExceeded, FailureNetwork, FailureRejected:
		return r, true
	default:
		return "", false
	}
}

// SubmissionError is a rejection from the execution backend.
type SubmissionError struct {
	Reason FailureReason
	Err    error
}

// NewSubmissionError wraps err with a failure reason.
func NewSubmissionError(reason FailureReason, err error) *SubmissionError {
	return &SubmissionError{Reason: reason, Err: err}
}

func (e *SubmissionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("submission failed: %s", e.Reason.Describe())
	}
	return fmt.Sprintf("submission failed: %s: %v", e.Reason.Describe(), e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// ReasonOf extracts the failure reason from err, if any.
func ReasonOf(err error) (FailureReason, bool) {
	var se *SubmissionError
	if errors.As(err, &se) {
		return se.Reason, true
	}
	return "", false
}

// Retryable reports whether a new user-initiated attempt may succeed as is.
func Retryable(err error) bool {
	if errors.Is(err, ErrSubmissionTimeout) {
		return true
	}
	reason, ok := ReasonOf(err)
	return ok && reason == FailureNetwork
}
