package qsim

import (
	"fmt"
	"math/bits"
	"math/cmplx"
)

/*
Matrix is an immutable square complex matrix stored row-major. Gate matrices
are indexed by the binary pattern of the qubits they act on, first listed
qubit as the most significant bit.
*/
type Matrix struct {
	size int
	data []complex128
}

// NewMatrix copies rows into a Matrix. The matrix must be square with a
// power-of-two size.
func NewMatrix(rows [][]complex128) (Matrix, error) {
	n := len(rows)
	if n == 0 || n&(n-1) != 0 {
		return Matrix{}, fmt.Errorf("%w: %d rows is not a power of two", ErrDimensionMismatch, n)
	}

	data := make([]complex128, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return Matrix{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), n)
		}
		data = append(data, row...)
	}

	return Matrix{size: n, data: data}, nil
}

// MustMatrix is NewMatrix for constant tables; it panics on a malformed matrix.
func MustMatrix(rows [][]complex128) Matrix {
	m, err := NewMatrix(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Size is the number of rows (and columns).
func (m Matrix) Size() int {
	return m.size
}

// Arity is the number of qubits the matrix acts on.
func (m Matrix) Arity() int {
	if m.size == 0 {
		return 0
	}
	return bits.TrailingZeros(uint(m.size))
}

func (m Matrix) At(r, c int) complex128 {
	return m.data[r*m.size+c]
}

func (m Matrix) row(r int) []complex128 {
	return m.data[r*m.size : (r+1)*m.size]
}

func (m Matrix) Scale(f complex128) Matrix {
	data := make([]complex128, len(m.data))
	for i, v := range m.data {
		data[i] = v * f
	}
	return Matrix{size: m.size, data: data}
}

// Mul returns m·o.
func (m Matrix) Mul(o Matrix) (Matrix, error) {
	if m.size != o.size {
		return Matrix{}, fmt.Errorf("%w: %dx%d times %dx%d", ErrDimensionMismatch, m.size, m.size, o.size, o.size)
	}

	n := m.size
	data := make([]complex128, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			var acc complex128
			for k := 0; k < n; k++ {
				acc += m.data[r*n+k] * o.data[k*n+c]
			}
			data[r*n+c] = acc
		}
	}

	return Matrix{size: n, data: data}, nil
}

// Dagger returns the conjugate transpose.
func (m Matrix) Dagger() Matrix {
	n := m.size
	data := make([]complex128, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			data[c*n+r] = cmplx.Conj(m.data[r*n+c])
		}
	}
	return Matrix{size: n, data: data}
}

// IsUnitary reports whether m·m† is the identity within tol.
func (m Matrix) IsUnitary(tol float64) bool {
	if m.size == 0 {
		return false
	}

	p, err := m.Mul(m.Dagger())
	if err != nil {
		return false
	}

	for r := 0; r < p.size; r++ {
		for c := 0; c < p.size; c++ {
			want := complex(0, 0)
			if r == c {
				want = 1
			}
			if cmplx.Abs(p.At(r, c)-want) > tol {
				return false
			}
		}
	}
	return true
}
