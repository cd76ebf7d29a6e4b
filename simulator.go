package qsim

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand/v2"

	"github.com/theapemachine/errnie"
)

/*
Simulator is a register of N qubits evolved by exact dense state-vector
simulation. It owns 2^N complex amplitudes; bit b of an index holds the basis
value of qubit b.

The amplitudes stay normalized: gates are unitary, and Measure renormalizes
the surviving branch. A Simulator is driven by a single goroutine; callers
sharing one across goroutines must synchronize externally.
*/
type Simulator struct {
	dimension  int
	amplitudes []complex128
	config     *Config
	rng        *rand.Rand
	metrics    *Metrics
}

// registerCeiling is the widest register whose amplitude count fits in an int.
const registerCeiling = bits.UintSize - 2

// QubitProbability is the marginal outcome distribution of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// New allocates a register of n qubits in the basis state |0...0⟩.
func New(n int, opts ...Option) (*Simulator, error) {
	s := &Simulator{
		config:  NewConfig(),
		metrics: newMetrics(),
	}

	for _, opt := range opts {
		opt(s)
	}

	limit := min(s.config.MaxQubits, registerCeiling)
	if n < 1 || n > limit {
		errnie.Info("New - rejected register of %d qubits (max %d)", n, limit)
		return nil, &QubitError{
			Op:    "new",
			Index: -1,
			Err:   fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidQubitCount, n, limit),
		}
	}

	if s.rng == nil {
		s.rng = newRand(s.config.Seed)
	}

	s.dimension = n
	s.amplitudes = make([]complex128, 1<<uint(n))
	s.amplitudes[0] = 1

	errnie.Info("New - register of %d qubits, %d amplitudes", n, len(s.amplitudes))
	return s, nil
}

// Dimension is the number of qubits.
func (s *Simulator) Dimension() int {
	return s.dimension
}

// Qubits returns one handle per bit position, in index order.
func (s *Simulator) Qubits() []Qubit {
	qubits := make([]Qubit, s.dimension)
	for i := range qubits {
		qubits[i] = Qubit{index: i}
	}
	return qubits
}

// Reset returns the register to |0...0⟩ without reallocating.
func (s *Simulator) Reset() {
	clear(s.amplitudes)
	s.amplitudes[0] = 1
	s.metrics.recordReset()
}

// Amplitudes returns a copy of the state vector.
func (s *Simulator) Amplitudes() []complex128 {
	amps := make([]complex128, len(s.amplitudes))
	copy(amps, s.amplitudes)
	return amps
}

/*
Amplitude returns the amplitude of basis state i. Like slice indexing, it
panics when i is outside [0, 2^N).
*/
func (s *Simulator) Amplitude(i int) complex128 {
	if i < 0 || i >= len(s.amplitudes) {
		panic(fmt.Sprintf("qsim: amplitude index %d out of range [0, %d)", i, len(s.amplitudes)))
	}
	return s.amplitudes[i]
}

// Norm is the sum of squared amplitude magnitudes.
func (s *Simulator) Norm() float64 {
	var total float64
	for _, a := range s.amplitudes {
		total += sqr(a)
	}
	return total
}

// Normalized reports whether Norm is within the configured tolerance of 1.
func (s *Simulator) Normalized() bool {
	return math.Abs(s.Norm()-1) <= s.config.Tolerance
}

// Probabilities returns the probability of every basis state.
func (s *Simulator) Probabilities() []float64 {
	probs := make([]float64, len(s.amplitudes))
	for i, a := range s.amplitudes {
		probs[i] = sqr(a)
	}
	return probs
}

// QubitProbabilities returns the marginal distribution of each qubit.
func (s *Simulator) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.dimension)

	for i, a := range s.amplitudes {
		p := sqr(a)
		for q := 0; q < s.dimension; q++ {
			if i&(1<<uint(q)) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}

	return probs
}

func (s *Simulator) Metrics() *Metrics {
	return s.metrics
}

func (s *Simulator) Config() Config {
	return *s.config
}

// validate checks a qubit list before any amplitude is touched.
func (s *Simulator) validate(op string, qubits []Qubit) error {
	if len(qubits) == 0 || len(qubits) > s.dimension {
		return &QubitError{
			Op:    op,
			Index: -1,
			Err:   fmt.Errorf("%w: %d qubits on a %d-qubit register", ErrInvalidQubitCount, len(qubits), s.dimension),
		}
	}

	seen := 0
	for _, q := range qubits {
		if q.index < 0 || q.index >= s.dimension {
			return &QubitError{Op: op, Index: q.index, Err: ErrInvalidQubitIndex}
		}
		bit := 1 << uint(q.index)
		if seen&bit != 0 {
			return &QubitError{Op: op, Index: q.index, Err: ErrDuplicateQubit}
		}
		seen |= bit
	}

	return nil
}

func (s *Simulator) reject(err error) error {
	s.metrics.recordRejection()
	errnie.Info("rejected operation - %v", err)
	return err
}

func sqr(a complex128) float64 {
	return real(a)*real(a) + imag(a)*imag(a)
}
