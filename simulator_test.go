package qsim

import (
	"errors"
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a request for a register", t, func() {
		Convey("Zero qubits should be rejected", func() {
			_, err := New(0)
			So(errors.Is(err, ErrInvalidQubitCount), ShouldBeTrue)
		})

		Convey("More than MaxQubits should be rejected", func() {
			_, err := New(5, WithMaxQubits(4))
			So(errors.Is(err, ErrInvalidQubitCount), ShouldBeTrue)
		})

		Convey("A cap beyond what an int can index should still be rejected", func() {
			for _, n := range []int{63, 64, 65} {
				var sim *Simulator
				var err error
				So(func() { sim, err = New(n, WithMaxQubits(n)) }, ShouldNotPanic)
				So(sim, ShouldBeNil)
				So(errors.Is(err, ErrInvalidQubitCount), ShouldBeTrue)
			}
		})

		Convey("A valid size should start in |0...0⟩", func() {
			sim, err := New(3)
			So(err, ShouldBeNil)
			So(sim.Dimension(), ShouldEqual, 3)

			amps := sim.Amplitudes()
			So(len(amps), ShouldEqual, 8)
			So(amps[0], ShouldEqual, complex(1, 0))
			for _, a := range amps[1:] {
				So(a, ShouldEqual, complex(0, 0))
			}
			So(sim.Normalized(), ShouldBeTrue)
		})

		Convey("Qubits should hand out one handle per index", func() {
			sim, err := New(4)
			So(err, ShouldBeNil)

			qubits := sim.Qubits()
			So(len(qubits), ShouldEqual, 4)
			for i, q := range qubits {
				So(q.Index(), ShouldEqual, i)
				So(q, ShouldEqual, NewQubit(i))
			}
		})

		Convey("WithConfig should not alias the caller's config", func() {
			config := NewConfig()
			sim, err := New(2, WithConfig(config), WithSeed(5))
			So(err, ShouldBeNil)
			So(sim.Config().Seed, ShouldEqual, uint64(5))
			So(config.Seed, ShouldEqual, uint64(0))
		})

		Convey("WithRand should drive measurement", func() {
			a, err := New(1, WithRand(rand.New(rand.NewPCG(1, 2))))
			So(err, ShouldBeNil)
			b, err := New(1, WithRand(rand.New(rand.NewPCG(1, 2))))
			So(err, ShouldBeNil)

			for trial := 0; trial < 20; trial++ {
				So(H(a, a.Qubits()[0]), ShouldBeNil)
				So(H(b, b.Qubits()[0]), ShouldBeNil)
				ra, _ := a.Measure(a.Qubits()[0])
				rb, _ := b.Measure(b.Qubits()[0])
				So(ra, ShouldEqual, rb)
			}
		})
	})

	Convey("Given an evolved register", t, func() {
		sim, err := New(2)
		So(err, ShouldBeNil)
		q := sim.Qubits()
		So(X(sim, q[0]), ShouldBeNil)
		So(H(sim, q[1]), ShouldBeNil)

		Convey("Probabilities should cover every basis state", func() {
			probs := sim.Probabilities()
			So(probs[0b01], ShouldAlmostEqual, 0.5, 1e-12)
			So(probs[0b11], ShouldAlmostEqual, 0.5, 1e-12)
			So(probs[0b00], ShouldAlmostEqual, 0.0, 1e-12)
		})

		Convey("QubitProbabilities should give the marginals", func() {
			probs := sim.QubitProbabilities()
			So(probs[0].Prob1, ShouldAlmostEqual, 1.0, 1e-12)
			So(probs[1].Prob0, ShouldAlmostEqual, 0.5, 1e-12)
		})

		Convey("Reset should return to |00⟩", func() {
			sim.Reset()
			So(sim.Amplitude(0), ShouldEqual, complex(1, 0))
			So(sim.Norm(), ShouldEqual, 1.0)
			So(sim.Metrics().Resets, ShouldEqual, int64(1))
		})

		Convey("Amplitudes should be a copy", func() {
			amps := sim.Amplitudes()
			amps[0] = 42
			So(sim.Amplitude(0), ShouldNotEqual, complex(42, 0))
		})

		Convey("Amplitude should panic outside the state vector", func() {
			So(func() { sim.Amplitude(4) }, ShouldPanic)
			So(func() { sim.Amplitude(-1) }, ShouldPanic)
		})
	})
}

func TestMetrics(t *testing.T) {
	Convey("Given a simulator that ran gates and measurements", t, func() {
		sim, err := New(3, WithSeed(1))
		So(err, ShouldBeNil)
		q := sim.Qubits()

		So(H(sim, q[0]), ShouldBeNil)
		So(CNOT(sim, q[0], q[1]), ShouldBeNil)
		So(CCNOT(sim, q[0], q[1], q[2]), ShouldBeNil)
		_, err = sim.MeasureAll()
		So(err, ShouldBeNil)
		_, err = sim.Measure(NewQubit(7))
		So(err, ShouldNotBeNil)

		Convey("Counts should be kept per arity and outcome", func() {
			m := sim.Metrics()
			So(m.GateApplications[1], ShouldEqual, int64(1))
			So(m.GateApplications[2], ShouldEqual, int64(1))
			So(m.GateApplications[3], ShouldEqual, int64(1))
			So(m.Gates(), ShouldEqual, int64(3))
			So(m.Measurements, ShouldEqual, int64(3))
			So(m.ZeroOutcomes+m.OneOutcomes, ShouldEqual, int64(3))
			So(m.RejectedOperations, ShouldEqual, int64(1))
		})

		Convey("ExportMetrics should expose the totals", func() {
			export := sim.Metrics().ExportMetrics()
			So(export["gate_applications"], ShouldEqual, int64(3))
			So(export["measurements"], ShouldEqual, int64(3))
			So(export["rejected_operations"], ShouldEqual, int64(1))
		})
	})
}
