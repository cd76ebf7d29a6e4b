package circuit

import (
	"fmt"
	"strings"

	"github.com/theapemachine/qsim"
)

type OpKind int

const (
	OpGate OpKind = iota
	OpMeasure
	OpReset
	OpBarrier
)

func (k OpKind) String() string {
	switch k {
	case OpGate:
		return "gate"
	case OpMeasure:
		return "measure"
	case OpReset:
		return "reset"
	case OpBarrier:
		return "barrier"
	}
	return "unknown"
}

// Op is one parsed instruction. Qubits are in the gate's role order.
type Op struct {
	Kind   OpKind
	Gate   qsim.Gate
	Qubits []qsim.Qubit
	Cbit   int
	Line   int
}

type creg struct {
	name   string
	offset int
	size   int
}

// Program is a parsed circuit, ready to run against any qsim.Machine.
type Program struct {
	NumQubits int
	NumCbits  int
	Ops       []Op

	qreg  string
	cregs []creg
}

/*
Run executes one shot of the program on m and returns the classical bits,
indexed by their flattened position across classical registers. Bits that are
never written stay Zero. Reset prepares |0⟩ by measuring and flipping.
*/
func (p *Program) Run(m qsim.Machine) ([]qsim.MeasuredResult, error) {
	bits := make([]qsim.MeasuredResult, p.NumCbits)

	for _, op := range p.Ops {
		var err error

		switch op.Kind {
		case OpGate:
			err = op.Gate.On(m, op.Qubits...)
		case OpMeasure:
			var r qsim.MeasuredResult
			if r, err = m.Measure(op.Qubits[0]); err == nil {
				bits[op.Cbit] = r
			}
		case OpReset:
			err = qsim.Set(m, op.Qubits[0], qsim.Zero)
		case OpBarrier:
		}

		if err != nil {
			return nil, fmt.Errorf("line %d (%s): %w", op.Line, op.Kind, err)
		}
	}

	return bits, nil
}

// Bitstring renders classical bits most significant first, c[n-1] ... c[0].
func Bitstring(bits []qsim.MeasuredResult) string {
	var sb strings.Builder
	for i := len(bits) - 1; i >= 0; i-- {
		sb.WriteString(bits[i].String())
	}
	return sb.String()
}
