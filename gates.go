package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

/*
Gate names an immutable unitary and the role of each qubit it expects, in the
order the matrix was written for. CNOT is [control, target], so its control
drives the most significant bit of the matrix index.
*/
type Gate struct {
	Name   string
	Matrix Matrix
	roles  []string
}

func (g Gate) Arity() int {
	return len(g.roles)
}

// Roles returns a copy of the qubit roles in matrix order.
func (g Gate) Roles() []string {
	roles := make([]string, len(g.roles))
	copy(roles, g.roles)
	return roles
}

// On applies the gate to qubits, listed in role order.
func (g Gate) On(a Applicator, qubits ...Qubit) error {
	if len(qubits) != g.Arity() {
		return &QubitError{
			Op:    strings.ToLower(g.Name),
			Index: -1,
			Err:   fmt.Errorf("%w: %s takes %d qubits, got %d", ErrInvalidQubitCount, g.Name, g.Arity(), len(qubits)),
		}
	}
	return a.Apply(g.Matrix, qubits...)
}

var invSqrt2 = complex(1/math.Sqrt2, 0)

// The fixed catalog. These are built once at package init and never mutated.
var (
	GateH = Gate{Name: "H", roles: []string{"target"}, Matrix: MustMatrix([][]complex128{
		{1, 1},
		{1, -1},
	}).Scale(invSqrt2)}

	GateX = Gate{Name: "X", roles: []string{"target"}, Matrix: MustMatrix([][]complex128{
		{0, 1},
		{1, 0},
	})}

	GateY = Gate{Name: "Y", roles: []string{"target"}, Matrix: MustMatrix([][]complex128{
		{0, -1i},
		{1i, 0},
	})}

	GateZ = Gate{Name: "Z", roles: []string{"target"}, Matrix: MustMatrix([][]complex128{
		{1, 0},
		{0, -1},
	})}

	GateID = Gate{Name: "ID", roles: []string{"target"}, Matrix: MustMatrix([][]complex128{
		{1, 0},
		{0, 1},
	})}

	GateS = Phase(math.Pi / 2).named("S")
	GateT = Phase(math.Pi / 4).named("T")

	GateCNOT = Gate{Name: "CNOT", roles: []string{"control", "target"}, Matrix: MustMatrix([][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	})}

	GateSWAP = Gate{Name: "SWAP", roles: []string{"a", "b"}, Matrix: MustMatrix([][]complex128{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	})}

	GateSQSWAP = Gate{Name: "SQSWAP", roles: []string{"a", "b"}, Matrix: MustMatrix([][]complex128{
		{1, 0, 0, 0},
		{0, 0.5 + 0.5i, 0.5 - 0.5i, 0},
		{0, 0.5 - 0.5i, 0.5 + 0.5i, 0},
		{0, 0, 0, 1},
	})}

	GateCCNOT = Gate{Name: "CCNOT", roles: []string{"control", "control", "target"}, Matrix: MustMatrix([][]complex128{
		{1, 0, 0, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0, 0, 0, 0},
		{0, 0, 0, 1, 0, 0, 0, 0},
		{0, 0, 0, 0, 1, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 1},
		{0, 0, 0, 0, 0, 0, 1, 0},
	})}
)

func (g Gate) named(name string) Gate {
	g.Name = name
	return g
}

// Phase returns diag(1, e^{iφ}).
func Phase(phi float64) Gate {
	return Gate{Name: "PHASE", roles: []string{"target"}, Matrix: MustMatrix([][]complex128{
		{1, 0},
		{0, cmplx.Exp(complex(0, phi))},
	})}
}

// RX rotates about the X axis by theta.
func RX(theta float64) Gate {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return Gate{Name: "RX", roles: []string{"target"}, Matrix: MustMatrix([][]complex128{
		{c, js},
		{js, c},
	})}
}

// RY rotates about the Y axis by theta.
func RY(theta float64) Gate {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Gate{Name: "RY", roles: []string{"target"}, Matrix: MustMatrix([][]complex128{
		{c, -s},
		{s, c},
	})}
}

// RZ rotates about the Z axis by theta.
func RZ(theta float64) Gate {
	phase := cmplx.Exp(complex(0, theta/2))
	return Gate{Name: "RZ", roles: []string{"target"}, Matrix: MustMatrix([][]complex128{
		{cmplx.Conj(phase), 0},
		{0, phase},
	})}
}

var fixedGates = map[string]Gate{
	"h":       GateH,
	"x":       GateX,
	"not":     GateX,
	"y":       GateY,
	"z":       GateZ,
	"id":      GateID,
	"i":       GateID,
	"s":       GateS,
	"t":       GateT,
	"cx":      GateCNOT,
	"cnot":    GateCNOT,
	"swap":    GateSWAP,
	"sqswap":  GateSQSWAP,
	"ccx":     GateCCNOT,
	"ccnot":   GateCCNOT,
	"toffoli": GateCCNOT,
}

var parametricGates = map[string]func(float64) Gate{
	"p":     Phase,
	"u1":    Phase,
	"phase": Phase,
	"rx":    RX,
	"ry":    RY,
	"rz":    RZ,
}

// Lookup resolves a gate by case-insensitive name. Parametric gates take exactly
// one angle; fixed gates take none.
func Lookup(name string, params ...float64) (Gate, error) {
	key := strings.ToLower(name)

	if g, ok := fixedGates[key]; ok {
		if len(params) != 0 {
			return Gate{}, fmt.Errorf("%w: %s takes no parameters, got %d", ErrParameterCount, name, len(params))
		}
		return g, nil
	}

	if build, ok := parametricGates[key]; ok {
		if len(params) != 1 {
			return Gate{}, fmt.Errorf("%w: %s takes 1 parameter, got %d", ErrParameterCount, name, len(params))
		}
		return build(params[0]), nil
	}

	return Gate{}, fmt.Errorf("%w: %q", ErrUnknownGate, name)
}

func H(a Applicator, q Qubit) error  { return GateH.On(a, q) }
func X(a Applicator, q Qubit) error  { return GateX.On(a, q) }
func Y(a Applicator, q Qubit) error  { return GateY.On(a, q) }
func Z(a Applicator, q Qubit) error  { return GateZ.On(a, q) }
func ID(a Applicator, q Qubit) error { return GateID.On(a, q) }
func S(a Applicator, q Qubit) error  { return GateS.On(a, q) }
func T(a Applicator, q Qubit) error  { return GateT.On(a, q) }

func PhaseShift(a Applicator, q Qubit, phi float64) error { return Phase(phi).On(a, q) }

func CNOT(a Applicator, control, target Qubit) error { return GateCNOT.On(a, control, target) }
func SWAP(a Applicator, q1, q2 Qubit) error          { return GateSWAP.On(a, q1, q2) }
func SQSWAP(a Applicator, q1, q2 Qubit) error        { return GateSQSWAP.On(a, q1, q2) }

func CCNOT(a Applicator, control1, control2, target Qubit) error {
	return GateCCNOT.On(a, control1, control2, target)
}
