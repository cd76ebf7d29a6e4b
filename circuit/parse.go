package circuit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/coregx/coregex"
	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qsim"
)

// Pre-compiled patterns for the QASM subset. Lines are matched after comments
// and the trailing semicolon have been stripped.
var (
	qregRegex    = coregex.MustCompile(`^qreg\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	cregRegex    = coregex.MustCompile(`^creg\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	measureRegex = coregex.MustCompile(`^measure\s+(\w+)\s*\[\s*(\d+)\s*\]\s*->\s*(\w+)\s*\[\s*(\d+)\s*\]$`)
	resetRegex   = coregex.MustCompile(`^reset\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	barrierRegex = coregex.MustCompile(`^barrier(\s+.*)?$`)
	gateRegex    = coregex.MustCompile(`^(\w+)\s*(?:\(([^)]*)\))?\s+(\S.*)$`)
	operandRegex = coregex.MustCompile(`^(\w+)\s*\[\s*(\d+)\s*\]$`)
)

var (
	ErrSyntax           = errors.New("syntax error")
	ErrNoQuantumReg     = errors.New("no qreg declared")
	ErrRedeclared       = errors.New("register redeclared")
	ErrUnknownRegister  = errors.New("unknown register")
	ErrOutOfRange       = errors.New("register index out of range")
	ErrRegisterTooLarge = errors.New("classical registers too large")
)

// MaxClassicalBits bounds the combined size of all classical registers.
const MaxClassicalBits = 1 << 12

// ParseError locates a failure in the source text.
type ParseError struct {
	Line int
	Text string
	Err  error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("circuit: line %d %q: %v", e.Line, e.Text, e.Err)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}

type parser struct {
	prog *Program
	line int
	text string
}

/*
Parse reads a circuit written in a subset of OpenQASM 2.0:

	OPENQASM 2.0;
	include "qelib1.inc";
	qreg q[2];
	creg c[2];
	h q[0];
	cx q[0], q[1];
	rz(pi/4) q[1];
	measure q[0] -> c[0];
	reset q[1];
	barrier q;

One quantum register is supported. Several classical registers may be
declared; they are laid out one after another in declaration order.
*/
func Parse(src string) (*Program, error) {
	p := &parser{prog: &Program{}}

	for i, raw := range strings.Split(src, "\n") {
		p.line = i + 1
		p.text = strings.TrimSpace(raw)

		stmt := p.text
		if idx := strings.Index(stmt, "//"); idx >= 0 {
			stmt = stmt[:idx]
		}
		stmt = strings.TrimSpace(stmt)
		stmt = strings.TrimSpace(strings.TrimSuffix(stmt, ";"))

		if stmt == "" || strings.HasPrefix(stmt, "OPENQASM") || strings.HasPrefix(stmt, "include") {
			continue
		}

		if err := p.statement(stmt); err != nil {
			errnie.Info("Parse - line %d: %v", p.line, err)
			return nil, &ParseError{Line: p.line, Text: p.text, Err: err}
		}
	}

	errnie.Info("Parse - %d qubits, %d classical bits, %d operations",
		p.prog.NumQubits, p.prog.NumCbits, len(p.prog.Ops))

	return p.prog, nil
}

func (p *parser) statement(stmt string) error {
	if m := qregRegex.FindStringSubmatch(stmt); m != nil {
		if p.prog.qreg != "" {
			return fmt.Errorf("%w: qreg %s", ErrRedeclared, m[1])
		}
		n, err := strconv.Atoi(m[2])
		if err != nil || n < 1 {
			return fmt.Errorf("%w: qreg size %q", qsim.ErrInvalidQubitCount, m[2])
		}
		p.prog.qreg = m[1]
		p.prog.NumQubits = n
		return nil
	}

	if m := cregRegex.FindStringSubmatch(stmt); m != nil {
		for _, c := range p.prog.cregs {
			if c.name == m[1] {
				return fmt.Errorf("%w: creg %s", ErrRedeclared, m[1])
			}
		}
		n, err := strconv.Atoi(m[2])
		if err != nil || n < 1 {
			return fmt.Errorf("%w: creg size %q", ErrSyntax, m[2])
		}
		if n > MaxClassicalBits-p.prog.NumCbits {
			return fmt.Errorf("%w: creg %s[%d] exceeds %d bits in total", ErrRegisterTooLarge, m[1], n, MaxClassicalBits)
		}
		p.prog.cregs = append(p.prog.cregs, creg{name: m[1], offset: p.prog.NumCbits, size: n})
		p.prog.NumCbits += n
		return nil
	}

	if barrierRegex.MatchString(stmt) {
		p.prog.Ops = append(p.prog.Ops, Op{Kind: OpBarrier, Line: p.line})
		return nil
	}

	if m := measureRegex.FindStringSubmatch(stmt); m != nil {
		q, err := p.qubit(m[1], m[2])
		if err != nil {
			return err
		}
		bit, err := p.cbit(m[3], m[4])
		if err != nil {
			return err
		}
		p.prog.Ops = append(p.prog.Ops, Op{Kind: OpMeasure, Qubits: []qsim.Qubit{q}, Cbit: bit, Line: p.line})
		return nil
	}

	if m := resetRegex.FindStringSubmatch(stmt); m != nil {
		q, err := p.qubit(m[1], m[2])
		if err != nil {
			return err
		}
		p.prog.Ops = append(p.prog.Ops, Op{Kind: OpReset, Qubits: []qsim.Qubit{q}, Line: p.line})
		return nil
	}

	if m := gateRegex.FindStringSubmatch(stmt); m != nil {
		return p.gate(m[1], m[2], m[3])
	}

	return ErrSyntax
}

func (p *parser) gate(name, rawParams, rawOperands string) error {
	params, ok := parseParams(rawParams)
	if !ok {
		return fmt.Errorf("%w: parameters %q", ErrSyntax, rawParams)
	}

	g, err := qsim.Lookup(name, params...)
	if err != nil {
		return err
	}

	var qubits []qsim.Qubit
	for _, operand := range strings.Split(rawOperands, ",") {
		m := operandRegex.FindStringSubmatch(strings.TrimSpace(operand))
		if m == nil {
			return fmt.Errorf("%w: operand %q", ErrSyntax, operand)
		}
		q, err := p.qubit(m[1], m[2])
		if err != nil {
			return err
		}
		qubits = append(qubits, q)
	}

	if len(qubits) != g.Arity() {
		return fmt.Errorf("%w: %s takes %d qubits, got %d", qsim.ErrInvalidQubitCount, name, g.Arity(), len(qubits))
	}

	for i := range qubits {
		for j := i + 1; j < len(qubits); j++ {
			if qubits[i] == qubits[j] {
				return fmt.Errorf("%w: %s", qsim.ErrDuplicateQubit, qubits[i])
			}
		}
	}

	p.prog.Ops = append(p.prog.Ops, Op{Kind: OpGate, Gate: g, Qubits: qubits, Line: p.line})
	return nil
}

func (p *parser) qubit(reg, idx string) (qsim.Qubit, error) {
	if p.prog.qreg == "" {
		return qsim.Qubit{}, ErrNoQuantumReg
	}
	if reg != p.prog.qreg {
		return qsim.Qubit{}, fmt.Errorf("%w: %s", ErrUnknownRegister, reg)
	}

	i, err := strconv.Atoi(idx)
	if err != nil || i >= p.prog.NumQubits {
		return qsim.Qubit{}, fmt.Errorf("%w: %s[%s]", ErrOutOfRange, reg, idx)
	}
	return qsim.NewQubit(i), nil
}

func (p *parser) cbit(reg, idx string) (int, error) {
	for _, c := range p.prog.cregs {
		if c.name != reg {
			continue
		}
		i, err := strconv.Atoi(idx)
		if err != nil || i >= c.size {
			return 0, fmt.Errorf("%w: %s[%s]", ErrOutOfRange, reg, idx)
		}
		return c.offset + i, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownRegister, reg)
}
