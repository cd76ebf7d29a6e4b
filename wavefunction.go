// wavefunction.go
package qsim

import (
	"math"
	"time"
)

/*
Measure performs a projective measurement of one qubit in the computational
basis and collapses the register onto the observed outcome.

The register is split into pairs (i0, i1) that differ only in the measured
bit. p0 is the weight of the i0 half relative to the whole vector, clamped to
[0, 1]. A uniform draw r in [0, 1) selects Zero when p0 > r, so Zero comes up
with probability p0 and a branch of zero weight is never chosen. The losing
half is zeroed and the surviving half divided by the square root of its
weight, which restores unit norm.
*/
func (s *Simulator) Measure(qubit Qubit) (MeasuredResult, error) {
	if err := s.validate("measure", []Qubit{qubit}); err != nil {
		return Zero, s.reject(err)
	}

	startTime := time.Now()

	m := newAddressMap([]Qubit{qubit})
	n := m.slices(s.dimension)
	one := m.offsets[1]

	var w0, w1 float64
	for c := 0; c < n; c++ {
		i0 := m.base(c)
		w0 += sqr(s.amplitudes[i0])
		w1 += sqr(s.amplitudes[i0|one])
	}

	p0 := clamp(w0 / (w0 + w1))

	result := One
	if p0 > s.rng.Float64() {
		result = Zero
	}

	if result == Zero {
		norm := complex(math.Sqrt(w0), 0)
		for c := 0; c < n; c++ {
			i0 := m.base(c)
			s.amplitudes[i0] /= norm
			s.amplitudes[i0|one] = 0
		}
	} else {
		norm := complex(math.Sqrt(w1), 0)
		for c := 0; c < n; c++ {
			i0 := m.base(c)
			s.amplitudes[i0] = 0
			s.amplitudes[i0|one] /= norm
		}
	}

	s.metrics.recordMeasurement(startTime, result)
	return result, nil
}

// MeasureAll measures every qubit in index order and returns the outcomes.
func (s *Simulator) MeasureAll() ([]MeasuredResult, error) {
	results := make([]MeasuredResult, s.dimension)
	for i, q := range s.Qubits() {
		r, err := s.Measure(q)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}

// Probability returns the chance of observing Zero on qubit without collapsing.
func (s *Simulator) Probability(qubit Qubit) (float64, error) {
	if err := s.validate("probability", []Qubit{qubit}); err != nil {
		return 0, s.reject(err)
	}

	m := newAddressMap([]Qubit{qubit})
	one := m.offsets[1]

	var w0, w1 float64
	for c, n := 0, m.slices(s.dimension); c < n; c++ {
		i0 := m.base(c)
		w0 += sqr(s.amplitudes[i0])
		w1 += sqr(s.amplitudes[i0|one])
	}

	return clamp(w0 / (w0 + w1)), nil
}

/*
Set prepares qubit in the basis state r: it measures, and flips the qubit with
X when the outcome differs. Any entanglement with the rest of the register is
broken by the measurement.
*/
func Set(m Machine, qubit Qubit, r MeasuredResult) error {
	got, err := m.Measure(qubit)
	if err != nil {
		return err
	}
	if got != r {
		return X(m, qubit)
	}
	return nil
}

func clamp(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 0
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
