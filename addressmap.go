package qsim

import "sort"

/*
addressMap translates between full register indices and the pair
(compressed index, pattern) for a fixed list of k participating qubits.

The compressed index enumerates the N-k bits that do not take part in an
operation, packed in their original relative order. The pattern is the k-bit
value of the participating qubits, with the first listed qubit as its most
significant bit, which is the row and column order of a gate matrix.

All masks depend only on the qubit list, so one addressMap is built per
operation and reused for every one of the 2^(N-k) slices.
*/
type addressMap struct {
	qubits []int
	// segments[s] selects the full-index bits lying between the (s-1)-th and
	// s-th participating positions in ascending order. Compressed bits that
	// land in segment s are shifted left by s.
	segments []int
	// offsets[p] is pattern p scattered onto the participating positions.
	offsets []int
}

func newAddressMap(qubits []Qubit) *addressMap {
	k := len(qubits)

	listed := make([]int, k)
	for i, q := range qubits {
		listed[i] = q.index
	}

	sorted := make([]int, k)
	copy(sorted, listed)
	sort.Ints(sorted)

	all := ^0
	segments := make([]int, k+1)
	for s := 0; s <= k; s++ {
		lower, upper := all, all
		if s > 0 {
			lower = all << uint(sorted[s-1]+1)
		}
		if s < k {
			upper = ^(all << uint(sorted[s]))
		}
		segments[s] = lower & upper
	}

	offsets := make([]int, 1<<uint(k))
	for p := range offsets {
		offsets[p] = scatter(p, listed)
	}

	return &addressMap{
		qubits:   listed,
		segments: segments,
		offsets:  offsets,
	}
}

// scatter places bit j of pattern (MSB first) at position positions[j].
func scatter(pattern int, positions []int) int {
	k := len(positions)
	full := 0
	for j, pos := range positions {
		full |= ((pattern >> uint(k-1-j)) & 1) << uint(pos)
	}
	return full
}

// base returns the full index of compressed index c with every participating bit zero.
func (m *addressMap) base(c int) int {
	full := 0
	for s, mask := range m.segments {
		full |= (c << uint(s)) & mask
	}
	return full
}

func (m *addressMap) expand(c, pattern int) int {
	return m.base(c) | m.offsets[pattern]
}

// compress is the inverse of expand.
func (m *addressMap) compress(full int) (c, pattern int) {
	for s, mask := range m.segments {
		c |= (full & mask) >> uint(s)
	}

	k := len(m.qubits)
	for j, pos := range m.qubits {
		pattern |= ((full >> uint(pos)) & 1) << uint(k-1-j)
	}

	return c, pattern
}

// slices is the number of compressed indices for a register of n qubits.
func (m *addressMap) slices(n int) int {
	return 1 << uint(n-len(m.qubits))
}
