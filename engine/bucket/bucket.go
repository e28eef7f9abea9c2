// Package bucket maps continuous differences onto small ordinal categories.
//
// Edges are ascending thresholds; bucket i holds values in (edges[i-1], edges[i]].
// The last edge must be +Inf so every real number lands somewhere.
package bucket

import (
	"fmt"
	"math"
)

// Default is used for stat and total differences (10 buckets).
var Default = []float64{-200, -100, -50, -20, 0, 20, 50, 100, 200, math.Inf(1)}

// Level is the finer set used for level differences (12 buckets).
var Level = []float64{-50, -20, -10, -5, -1, 0, 1, 5, 10, 20, 50, math.Inf(1)}

// Index returns the index of the first edge >= x, or the last index if x
// exceeds every edge. NaN lands in the last bucket.
func Index(x float64, edges []float64) int {
	for i, e := range edges {
		if x <= e {
			return i
		}
	}
	return len(edges) - 1
}

// Validate reports an edge set that is empty, not strictly ascending, or
// missing the +Inf sentinel.
func Validate(edges []float64) error {
	if len(edges) == 0 {
		return fmt.Errorf("bucket: no edges")
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return fmt.Errorf("bucket: edges not ascending at %d (%v <= %v)", i, edges[i], edges[i-1])
		}
	}
	if !math.IsInf(edges[len(edges)-1], 1) {
		return fmt.Errorf("bucket: last edge %v must be +Inf", edges[len(edges)-1])
	}
	return nil
}
