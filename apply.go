package qsim

import (
	"fmt"
	"time"
)

// Applicator is anything that can apply a unitary to an ordered list of qubits.
type Applicator interface {
	Apply(matrix Matrix, qubits ...Qubit) error
}

// Machine is an Applicator that can also hand out qubits and measure them.
type Machine interface {
	Applicator
	Qubits() []Qubit
	Measure(qubit Qubit) (MeasuredResult, error)
}

/*
Apply evolves the register by a 2^k x 2^k unitary acting on k qubits. The first
listed qubit is the most significant bit of the matrix index, so callers must
pass qubits in the order the matrix was written for (control before target).

For every compressed index over the N-k untouched bits, the 2^k amplitudes of
that slice are gathered in pattern order, multiplied by the matrix and written
back. The slices partition the index space, so each amplitude is read and
written exactly once. The state is not renormalized.

All checks run before the first write; a rejected call leaves the state intact.
*/
func (s *Simulator) Apply(matrix Matrix, qubits ...Qubit) error {
	if err := s.validate("apply", qubits); err != nil {
		return s.reject(err)
	}

	k := len(qubits)
	if matrix.Size() != 1<<uint(k) {
		return s.reject(&QubitError{
			Op:    "apply",
			Index: -1,
			Err:   fmt.Errorf("%w: %dx%d matrix for %d qubits", ErrDimensionMismatch, matrix.Size(), matrix.Size(), k),
		})
	}

	startTime := time.Now()

	m := newAddressMap(qubits)
	size := matrix.Size()
	indices := make([]int, size)
	in := make([]complex128, size)

	for c, n := 0, m.slices(s.dimension); c < n; c++ {
		base := m.base(c)
		for p, offset := range m.offsets {
			indices[p] = base | offset
			in[p] = s.amplitudes[indices[p]]
		}

		for r := 0; r < size; r++ {
			var acc complex128
			for col, v := range matrix.row(r) {
				acc += v * in[col]
			}
			s.amplitudes[indices[r]] = acc
		}
	}

	s.metrics.recordGate(startTime, k)
	return nil
}
