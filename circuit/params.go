package circuit

import (
	"math"
	"strconv"
	"strings"

	"github.com/coregx/coregex"
)

// piExprRegex matches pi, 2pi, 2*pi, pi/2, 3*pi/4, -pi, -3pi/4 and similar.
var piExprRegex = coregex.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// parseParam parses a single angle: a plain number or a pi expression.
func parseParam(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	matches := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if matches == nil {
		return 0, false
	}

	coeff := 1.0
	if matches[2] != "" {
		var err error
		if coeff, err = strconv.ParseFloat(matches[2], 64); err != nil {
			return 0, false
		}
	}

	result := coeff * math.Pi
	if matches[3] != "" {
		denom, err := strconv.ParseFloat(matches[3], 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		result /= denom
	}

	if matches[1] == "-" {
		result = -result
	}
	return result, true
}

// parseParams splits a comma-separated parameter list. Empty input yields no params.
func parseParams(input string) ([]float64, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, true
	}

	var params []float64
	for _, part := range strings.Split(input, ",") {
		val, ok := parseParam(part)
		if !ok {
			return nil, false
		}
		params = append(params, val)
	}
	return params, true
}
