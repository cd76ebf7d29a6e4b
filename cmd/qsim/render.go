package main

import (
	"fmt"
	"math/cmplx"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/theapemachine/qsim/circuit"
)

// renderHistogram draws one bar per observed bitstring, scaled to the most frequent.
func renderHistogram(title string, result *circuit.Result) string {
	outcomes := result.Outcomes()

	peak := 0
	for _, o := range outcomes {
		peak = max(peak, o.Count)
	}

	lines := []string{titleStyle.Render(title)}
	for _, o := range outcomes {
		n := 0
		if peak > 0 {
			n = o.Count * barWidth / peak
		}
		bits := o.Bits
		if bits == "" {
			bits = "-"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			bitsStyle.Render(bits),
			barStyle.Render(strings.Repeat("█", n)+strings.Repeat(" ", barWidth-n)),
			dimStyle.Render(fmt.Sprintf("%6d  %.4f", o.Count, result.Frequency(o.Bits))),
		))
	}

	lines = append(lines, dimStyle.Render(fmt.Sprintf("%d shots in %v", result.Shots, result.Duration)))
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderState lists the nonzero amplitudes of the final register, qubit 0 rightmost.
func renderState(amps []complex128, qubits int) string {
	lines := []string{titleStyle.Render("final state")}
	for i, a := range amps {
		if cmplx.Abs(a) < 1e-12 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s  %+.4f%+.4fi  %s",
			bitsStyle.Render(fmt.Sprintf("|%0*b⟩", qubits, i)),
			real(a), imag(a),
			dimStyle.Render(fmt.Sprintf("p=%.4f", real(a)*real(a)+imag(a)*imag(a))),
		))
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderMetrics(metrics map[string]interface{}) string {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := []string{titleStyle.Render("metrics")}
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%-22s %v", dimStyle.Render(k), metrics[k]))
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
