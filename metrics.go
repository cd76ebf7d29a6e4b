package qsim

import (
	"sync"
	"time"
)

// Metrics counts engine operations for one Simulator.
type Metrics struct {
	mu sync.RWMutex

	// GateApplications is keyed by gate arity.
	GateApplications   map[int]int64
	Measurements       int64
	ZeroOutcomes       int64
	OneOutcomes        int64
	RejectedOperations int64
	Resets             int64

	TotalGateTime    time.Duration
	TotalMeasureTime time.Duration
}

func newMetrics() *Metrics {
	return &Metrics{
		GateApplications: make(map[int]int64),
	}
}

func (m *Metrics) recordGate(startTime time.Time, arity int) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.GateApplications[arity]++
	m.TotalGateTime += duration
}

func (m *Metrics) recordMeasurement(startTime time.Time, result MeasuredResult) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Measurements++
	if result == Zero {
		m.ZeroOutcomes++
	} else {
		m.OneOutcomes++
	}
	m.TotalMeasureTime += duration
}

func (m *Metrics) recordRejection() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RejectedOperations++
}

func (m *Metrics) recordReset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Resets++
}

// Gates returns the total number of gate applications across all arities.
func (m *Metrics) Gates() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total int64
	for _, n := range m.GateApplications {
		total += n
	}
	return total
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var gates int64
	byArity := make(map[int]int64, len(m.GateApplications))
	for arity, n := range m.GateApplications {
		byArity[arity] = n
		gates += n
	}

	avgGate := time.Duration(0)
	if gates > 0 {
		avgGate = m.TotalGateTime / time.Duration(gates)
	}

	return map[string]interface{}{
		"gate_applications":   gates,
		"gates_by_arity":      byArity,
		"measurements":        m.Measurements,
		"zero_outcomes":       m.ZeroOutcomes,
		"one_outcomes":        m.OneOutcomes,
		"rejected_operations": m.RejectedOperations,
		"resets":              m.Resets,
		"avg_gate_latency_us": avgGate.Microseconds(),
		"measure_time_ms":     m.TotalMeasureTime.Milliseconds(),
	}
}
