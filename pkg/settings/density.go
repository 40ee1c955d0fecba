package settings

import (
	"fmt"
	"strings"
)

// Density controls which prefix of the particles carries a label
type Density int

const (
	DensityNone Density = iota
	DensityLow
	DensityMedium
	DensityHigh
	DensityAll
)

var densityNames = [...]string{"none", "low", "medium", "high", "all"}

// Threshold returns the fraction of particles (by index order) eligible
// for a label
func (d Density) Threshold() float64 {
	switch d {
	case DensityNone:
		return 0
	case DensityLow:
		return 0.25
	case DensityMedium:
		return 0.5
	case DensityAll:
		return 1.0
	default:
		return 0.75
	}
}

// Eligible reports whether particle i of n passes the density gate
func (d Density) Eligible(i, n int) bool {
	if n <= 0 || i < 0 || i >= n {
		return false
	}
	return float64(i)/float64(n) < d.Threshold()
}

func (d Density) String() string {
	if d < DensityNone || d > DensityAll {
		return fmt.Sprintf("Density(%d)", int(d))
	}
	return densityNames[d]
}

// Next cycles through the densities in increasing order
func (d Density) Next() Density {
	return (d + 1) % (DensityAll + 1)
}

// ParseDensity parses a density name
func ParseDensity(s string) (Density, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range densityNames {
		if n == name {
			return Density(i), nil
		}
	}
	return DensityHigh, fmt.Errorf("unknown label density %q (expected none, low, medium, high or all)", s)
}
