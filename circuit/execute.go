package circuit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qsim"
)

var ErrInvalidShots = errors.New("shots must be positive")

// Outcome is one observed classical bitstring and how often it came up.
type Outcome struct {
	Bits  string
	Count int
}

// Result aggregates every shot of an execution.
type Result struct {
	Shots    int
	Counts   map[string]int
	Final    []complex128
	Metrics  map[string]interface{}
	Duration time.Duration
}

// Outcomes returns the counts sorted by bitstring.
func (r *Result) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(r.Counts))
	for bits, n := range r.Counts {
		out = append(out, Outcome{Bits: bits, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Bits < out[j].Bits
	})
	return out
}

// Frequency is the observed fraction of shots that produced bits.
func (r *Result) Frequency(bits string) float64 {
	if r.Shots == 0 {
		return 0
	}
	return float64(r.Counts[bits]) / float64(r.Shots)
}

/*
Execute runs prog for the given number of shots on a single simulator that is
reset to |0...0⟩ before every shot. Cancellation is checked between shots; a
cancelled run returns the context error. Final holds the amplitudes left by
the last shot.
*/
func Execute(ctx context.Context, prog *Program, shots int, opts ...qsim.Option) (*Result, error) {
	if shots < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShots, shots)
	}

	sim, err := qsim.New(prog.NumQubits, opts...)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	result := &Result{
		Shots:  shots,
		Counts: make(map[string]int),
	}

	for shot := 0; shot < shots; shot++ {
		select {
		case <-ctx.Done():
			errnie.Info("Execute - cancelled after %d of %d shots", shot, shots)
			return nil, fmt.Errorf("execution cancelled after %d shots: %w", shot, ctx.Err())
		default:
		}

		sim.Reset()

		bits, err := prog.Run(sim)
		if err != nil {
			return nil, fmt.Errorf("shot %d: %w", shot, err)
		}
		result.Counts[Bitstring(bits)]++
	}

	result.Final = sim.Amplitudes()
	result.Metrics = sim.Metrics().ExportMetrics()
	result.Duration = time.Since(startTime)

	errnie.Info("Execute - %d shots, %d distinct outcomes in %v", shots, len(result.Counts), result.Duration)
	return result, nil
}
