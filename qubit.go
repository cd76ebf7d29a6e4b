package qsim

import "fmt"

/*
Qubit is an opaque handle to one bit position of a register. Bit b of an
amplitude index carries the basis value of the qubit whose index is b.

Handles are plain values and compare equal by index. A handle is not bound to a
particular Simulator, so the engine checks the index on every operation.
*/
type Qubit struct {
	index int
}

// NewQubit returns the handle for bit position i.
func NewQubit(i int) Qubit {
	return Qubit{index: i}
}

func (q Qubit) Index() int {
	return q.index
}

func (q Qubit) String() string {
	return fmt.Sprintf("q[%d]", q.index)
}

// MeasuredResult is the classical outcome of a computational-basis measurement.
type MeasuredResult int

const (
	Zero MeasuredResult = iota
	One
)

// ResultFromBit maps 0 to Zero and anything else to One.
func ResultFromBit(b int) MeasuredResult {
	if b == 0 {
		return Zero
	}
	return One
}

func (r MeasuredResult) Bit() int {
	return int(r)
}

func (r MeasuredResult) String() string {
	if r == Zero {
		return "0"
	}
	return "1"
}
