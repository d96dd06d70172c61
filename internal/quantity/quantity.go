// Package quantity converts Kubernetes resource-quantity strings into
// canonical base units: cores for CPU, bytes for memory. All raw quantity
// strings in a snapshot cross through this package exactly once; the report
// layer only ever sees numeric values.
package quantity

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a quantity string whose numeric body is not a valid
// number. A single bad quantity makes the surrounding percentages
// meaningless, so callers abort the whole report on it.
type ParseError struct {
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid resource quantity %q", e.Value)
}

// ParseCPU parses a CPU quantity into cores. An empty value parses to zero,
// the "m" suffix denotes millicores, and a bare number is taken as cores.
func ParseCPU(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	if rest, ok := strings.CutSuffix(s, "m"); ok {
		v, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return 0, &ParseError{Value: s}
		}
		return v / 1000, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Value: s}
	}
	return v, nil
}

var memorySuffixes = []struct {
	suffix string
	factor float64
}{
	{"Ki", 1 << 10},
	{"Mi", 1 << 20},
	{"Gi", 1 << 30},
	{"Ti", 1 << 40},
}

// ParseMemoryBytes parses a memory quantity into bytes. The binary
// (1024-based) suffixes Ki, Mi, Gi and Ti are recognized; a bare number is
// taken as raw bytes. An empty value parses to zero.
func ParseMemoryBytes(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	for _, u := range memorySuffixes {
		rest, ok := strings.CutSuffix(s, u.suffix)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return 0, &ParseError{Value: s}
		}
		return v * u.factor, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Value: s}
	}
	return v, nil
}

// FormatMemory renders a byte count in the largest binary unit it fills: one
// decimal of Gi, whole Mi, or the raw byte count. A value sitting exactly on
// a unit boundary takes the larger unit.
func FormatMemory(b float64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1fGi", b/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.0fMi", b/(1<<20))
	default:
		return fmt.Sprintf("%.0f", b)
	}
}
