/*
Package qsim simulates a gate-model quantum computer by exact dense state-vector
evolution.

A Simulator holds the 2^N complex amplitudes of an N-qubit register. Gates are
unitary matrices applied to an ordered list of 1 to N qubits with Apply, and
Measure performs a projective single-qubit measurement that collapses and
renormalizes the register.

	sim, err := qsim.New(2)
	if err != nil {
		return err
	}

	q := sim.Qubits()
	qsim.H(sim, q[0])
	qsim.CNOT(sim, q[0], q[1])

	a, _ := sim.Measure(q[0])
	b, _ := sim.Measure(q[1]) // always equal to a
*/
package qsim
