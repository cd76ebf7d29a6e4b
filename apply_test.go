package qsim

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"
)

// permutations returns every ordering of 0..n-1.
func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}

	var out [][]int
	for _, rest := range permutations(n - 1) {
		for pos := 0; pos <= len(rest); pos++ {
			perm := make([]int, 0, n)
			perm = append(perm, rest[:pos]...)
			perm = append(perm, n-1)
			perm = append(perm, rest[pos:]...)
			out = append(out, perm)
		}
	}
	return out
}

/*
checkTruthTable prepares each input on every ordering of the register's qubits,
applies gate with qubits in that order and measures the expected outputs.
*/
func checkTruthTable(gate Gate, table [][2][]int) {
	n := gate.Arity()
	sim, err := New(n, WithSeed(7))
	So(err, ShouldBeNil)
	qubits := sim.Qubits()

	for _, perm := range permutations(n) {
		ordered := make([]Qubit, n)
		for i, p := range perm {
			ordered[i] = qubits[p]
		}

		for _, row := range table {
			in, want := row[0], row[1]
			for i, q := range ordered {
				So(Set(sim, q, ResultFromBit(in[i])), ShouldBeNil)
			}

			So(gate.On(sim, ordered...), ShouldBeNil)

			for i, q := range ordered {
				got, err := sim.Measure(q)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, ResultFromBit(want[i]))
			}
		}
	}
}

func TestApplyTruthTables(t *testing.T) {
	Convey("Given the CNOT gate", t, func() {
		Convey("It should flip the target only when the control is one", func() {
			checkTruthTable(GateCNOT, [][2][]int{
				{{0, 0}, {0, 0}},
				{{0, 1}, {0, 1}},
				{{1, 0}, {1, 1}},
				{{1, 1}, {1, 0}},
			})
		})
	})

	Convey("Given the SWAP gate", t, func() {
		Convey("It should exchange the two qubits", func() {
			checkTruthTable(GateSWAP, [][2][]int{
				{{0, 0}, {0, 0}},
				{{0, 1}, {1, 0}},
				{{1, 0}, {0, 1}},
				{{1, 1}, {1, 1}},
			})
		})
	})

	Convey("Given the CCNOT gate", t, func() {
		Convey("It should flip the target only when both controls are one", func() {
			checkTruthTable(GateCCNOT, [][2][]int{
				{{0, 0, 0}, {0, 0, 0}},
				{{0, 0, 1}, {0, 0, 1}},
				{{0, 1, 0}, {0, 1, 0}},
				{{0, 1, 1}, {0, 1, 1}},
				{{1, 0, 0}, {1, 0, 0}},
				{{1, 0, 1}, {1, 0, 1}},
				{{1, 1, 0}, {1, 1, 1}},
				{{1, 1, 1}, {1, 1, 0}},
			})
		})
	})

	Convey("Given a 5-qubit register with CNOT on non-adjacent qubits", t, func() {
		sim, err := New(5)
		So(err, ShouldBeNil)
		q := sim.Qubits()

		So(X(sim, q[4]), ShouldBeNil)
		So(CNOT(sim, q[4], q[1]), ShouldBeNil)

		Convey("Only the target bit should change", func() {
			So(sim.Amplitude(0b10010), ShouldEqual, complex(1, 0))
			So(sim.Norm(), ShouldAlmostEqual, 1.0, 1e-12)
		})
	})
}

func TestApplyAmplitudes(t *testing.T) {
	Convey("Given a register in |0...0⟩", t, func() {
		sim, err := New(3)
		So(err, ShouldBeNil)
		q := sim.Qubits()

		Convey("H on the middle qubit should split weight between |000⟩ and |010⟩", func() {
			So(H(sim, q[1]), ShouldBeNil)

			h := 1 / math.Sqrt2
			So(real(sim.Amplitude(0b000)), ShouldAlmostEqual, h, 1e-12)
			So(real(sim.Amplitude(0b010)), ShouldAlmostEqual, h, 1e-12)
			for _, i := range []int{1, 3, 4, 5, 6, 7} {
				So(sim.Amplitude(i), ShouldEqual, complex(0, 0))
			}
		})

		Convey("Y should apply its phases", func() {
			So(Y(sim, q[2]), ShouldBeNil)
			So(sim.Amplitude(0b100), ShouldEqual, complex(0, 1))

			So(Y(sim, q[2]), ShouldBeNil)
			So(sim.Amplitude(0b000), ShouldEqual, complex(1, 0))
		})

		Convey("H twice should be the identity", func() {
			So(H(sim, q[0]), ShouldBeNil)
			So(H(sim, q[0]), ShouldBeNil)
			So(real(sim.Amplitude(0)), ShouldAlmostEqual, 1.0, 1e-12)
			So(cmplx.Abs(sim.Amplitude(1)), ShouldAlmostEqual, 0.0, 1e-12)
		})

		Convey("SQSWAP twice should act as SWAP", func() {
			So(X(sim, q[0]), ShouldBeNil)
			So(SQSWAP(sim, q[0], q[2]), ShouldBeNil)
			So(SQSWAP(sim, q[0], q[2]), ShouldBeNil)
			So(cmplx.Abs(sim.Amplitude(0b100)), ShouldAlmostEqual, 1.0, 1e-12)
			So(cmplx.Abs(sim.Amplitude(0b001)), ShouldAlmostEqual, 0.0, 1e-12)
		})

		Convey("Z after H should move the weight to |1⟩ after a second H", func() {
			So(H(sim, q[0]), ShouldBeNil)
			So(Z(sim, q[0]), ShouldBeNil)
			So(H(sim, q[0]), ShouldBeNil)
			So(cmplx.Abs(sim.Amplitude(1)), ShouldAlmostEqual, 1.0, 1e-12)
		})
	})
}

func TestApplyRejections(t *testing.T) {
	Convey("Given a prepared 3-qubit register", t, func() {
		sim, err := New(3)
		So(err, ShouldBeNil)
		q := sim.Qubits()
		So(H(sim, q[0]), ShouldBeNil)
		before := sim.Amplitudes()

		Convey("A qubit outside the register should be rejected", func() {
			err := sim.Apply(GateX.Matrix, NewQubit(3))
			So(errors.Is(err, ErrInvalidQubitIndex), ShouldBeTrue)

			var qerr *QubitError
			So(errors.As(err, &qerr), ShouldBeTrue)
			So(qerr.Index, ShouldEqual, 3)
		})

		Convey("A negative index should be rejected", func() {
			So(errors.Is(sim.Apply(GateX.Matrix, NewQubit(-1)), ErrInvalidQubitIndex), ShouldBeTrue)
		})

		Convey("A repeated qubit should be rejected", func() {
			So(errors.Is(sim.Apply(GateCNOT.Matrix, q[1], q[1]), ErrDuplicateQubit), ShouldBeTrue)
		})

		Convey("A matrix of the wrong size should be rejected", func() {
			So(errors.Is(sim.Apply(GateCNOT.Matrix, q[0]), ErrDimensionMismatch), ShouldBeTrue)
		})

		Convey("More qubits than the register holds should be rejected", func() {
			big := MustMatrix(identityRows(16))
			err := sim.Apply(big, q[0], q[1], q[2], NewQubit(3))
			So(errors.Is(err, ErrInvalidQubitCount), ShouldBeTrue)
		})

		Convey("An empty qubit list should be rejected", func() {
			So(errors.Is(sim.Apply(GateX.Matrix), ErrInvalidQubitCount), ShouldBeTrue)
		})

		Convey("A gate wrapper given the wrong arity should be rejected", func() {
			So(errors.Is(GateCCNOT.On(sim, q[0], q[1]), ErrInvalidQubitCount), ShouldBeTrue)
		})

		Convey("No rejected call should touch the amplitudes", func() {
			sim.Apply(GateX.Matrix, NewQubit(9))
			sim.Apply(GateCNOT.Matrix, q[2], q[2])
			sim.Apply(GateCNOT.Matrix, q[2])
			So(sim.Amplitudes(), ShouldResemble, before)
			So(sim.Metrics().RejectedOperations, ShouldEqual, int64(3))
		})
	})
}

func TestNormalizationInvariance(t *testing.T) {
	Convey("Given a long random sequence of unitary gates", t, func() {
		const n = 6
		sim, err := New(n, WithSeed(11))
		So(err, ShouldBeNil)
		q := sim.Qubits()
		rng := rand.New(rand.NewPCG(3, 5))

		fixed := []Gate{GateH, GateX, GateY, GateZ, GateS, GateT, GateCNOT, GateSWAP, GateSQSWAP, GateCCNOT}

		for step := 0; step < 500; step++ {
			var g Gate
			switch rng.IntN(4) {
			case 0:
				g = RX(rng.Float64() * 2 * math.Pi)
			case 1:
				g = RY(rng.Float64() * 2 * math.Pi)
			default:
				g = fixed[rng.IntN(len(fixed))]
			}

			perm := rng.Perm(n)
			targets := make([]Qubit, g.Arity())
			for i := range targets {
				targets[i] = q[perm[i]]
			}
			So(g.On(sim, targets...), ShouldBeNil)
		}

		Convey("The norm should stay within 1e-9 of one", func() {
			norm := sim.Norm()
			if math.Abs(norm-1) > 1e-9 {
				t.Log(spew.Sdump(sim.Amplitudes()))
			}
			So(norm, ShouldAlmostEqual, 1.0, 1e-9)
			So(sim.Normalized(), ShouldBeTrue)
		})

		Convey("Every gate should have been counted", func() {
			So(sim.Metrics().Gates(), ShouldEqual, int64(500))
		})
	})
}

func identityRows(n int) [][]complex128 {
	rows := make([][]complex128, n)
	for i := range rows {
		rows[i] = make([]complex128, n)
		rows[i][i] = 1
	}
	return rows
}
