// Package analysis summarizes a record set for the info command
package analysis

import (
	"cmp"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/philipparndt/tokenviz/pkg/geometry"
	"github.com/philipparndt/tokenviz/pkg/particles"
	"github.com/philipparndt/tokenviz/pkg/tokens"
)

// AxisStats describes one vector component across all records
type AxisStats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// IDCount is a token ID with its number of occurrences
type IDCount struct {
	ID    int
	Count int
}

// Result contains the statistics of a record set
type Result struct {
	Count       int
	UniqueIDs   int
	Symbols     int // records with empty text
	BoundingBox geometry.BoundingBox
	Dimensions  geometry.Vector3
	Centroid    geometry.Vector3
	X, Y, Z     AxisStats
	MeanNorm    float64
	MaxNorm     float64

	// HueCollisions counts distinct IDs that share a color with another
	// distinct ID (IDs equal modulo 360)
	HueCollisions int

	// Occurrences lists every ID by descending count, then ascending ID
	Occurrences []IDCount
}

// Analyze computes the statistics of records
func Analyze(records []tokens.Record) (*Result, error) {
	n := len(records)
	if n == 0 {
		return nil, fmt.Errorf("analyze: %w", tokens.ErrNoData)
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	zs := make([]float64, n)
	norms := make([]float64, n)
	counts := make(map[int]int)

	result := &Result{Count: n, BoundingBox: geometry.NewBoundingBox()}
	for i, r := range records {
		xs[i], ys[i], zs[i] = r.Vector.X, r.Vector.Y, r.Vector.Z
		norms[i] = r.Vector.Length()
		result.BoundingBox.Extend(r.Vector)
		counts[r.ID]++
		if r.Text == "" {
			result.Symbols++
		}
	}

	result.X = axisStats(xs)
	result.Y = axisStats(ys)
	result.Z = axisStats(zs)
	result.Centroid = geometry.NewVector3(result.X.Mean, result.Y.Mean, result.Z.Mean)
	result.Dimensions = result.BoundingBox.Size()
	result.MeanNorm = stat.Mean(norms, nil)
	result.MaxNorm = floats.Max(norms)
	result.UniqueIDs = len(counts)

	hues := make(map[float64]int)
	for id, c := range counts {
		result.Occurrences = append(result.Occurrences, IDCount{ID: id, Count: c})
		hues[particles.Hue(id)]++
	}
	for _, ids := range hues {
		if ids > 1 {
			result.HueCollisions += ids
		}
	}

	slices.SortFunc(result.Occurrences, func(a, b IDCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return result, nil
}

// Top returns at most count of the most frequent IDs
func (r *Result) Top(count int) []IDCount {
	return r.Occurrences[:min(max(count, 0), len(r.Occurrences))]
}

func axisStats(values []float64) AxisStats {
	s := AxisStats{
		Mean: stat.Mean(values, nil),
		Min:  floats.Min(values),
		Max:  floats.Max(values),
	}
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	return s
}

// FormatVector formats a vector with three decimals
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
