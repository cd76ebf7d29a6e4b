package qsim

import (
	"errors"
	"fmt"
)

// Contract violations reported by the engine. None of them are transient.
var (
	// ErrInvalidQubitCount indicates a register size outside [1, MaxQubits], or a
	// gate addressing more qubits than the register holds.
	ErrInvalidQubitCount = errors.New("invalid qubit count")

	// ErrInvalidQubitIndex indicates a handle whose index is outside the register.
	ErrInvalidQubitIndex = errors.New("invalid qubit index")

	// ErrDuplicateQubit indicates the same qubit listed twice for one gate.
	ErrDuplicateQubit = errors.New("duplicate qubit")

	// ErrDimensionMismatch indicates a matrix that is not 2^k x 2^k for k qubits.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrUnknownGate indicates a catalog lookup for a name that is not defined.
	ErrUnknownGate = errors.New("unknown gate")

	// ErrParameterCount indicates a parametric gate given the wrong number of angles.
	ErrParameterCount = errors.New("wrong parameter count")
)

// QubitError wraps a contract violation with the operation and offending index.
type QubitError struct {
	Op    string
	Index int
	Err   error
}

// Error implements the error interface
func (e *QubitError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("qsim: %s on qubit %d: %v", e.Op, e.Index, e.Err)
	}
	return fmt.Sprintf("qsim: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *QubitError) Unwrap() error {
	return e.Err
}
