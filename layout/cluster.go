package layout

import (
	"math"
	"sort"
)

// Cluster is a group of near-equal scalar positions.
type Cluster struct {
	// Anchor is the arithmetic mean of the members
	Anchor float64

	// Min and Max bound the members
	Min, Max float64

	// Count is the number of members
	Count int
}

// clusterValues performs 1-D tolerance clustering. Values are sorted
// ascending and a new cluster starts whenever the gap to the previous value
// exceeds tolerance. Clusters come back in ascending anchor order.
func clusterValues(values []float64, tolerance float64) []Cluster {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Float64s(sorted)

	var clusters []Cluster
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[i]-sorted[i-1] <= tolerance {
			continue
		}
		members := sorted[start:i]
		sum := 0.0
		for _, v := range members {
			sum += v
		}
		clusters = append(clusters, Cluster{
			Anchor: sum / float64(len(members)),
			Min:    members[0],
			Max:    members[len(members)-1],
			Count:  len(members),
		})
		start = i
	}

	return clusters
}

// anchorsOf extracts the anchors of a cluster list
func anchorsOf(clusters []Cluster) []float64 {
	anchors := make([]float64, len(clusters))
	for i, c := range clusters {
		anchors[i] = c.Anchor
	}
	return anchors
}

// nearestAnchor returns the anchor closest to x if it lies within tolerance.
// Ties resolve to the lower anchor.
func nearestAnchor(anchors []float64, x, tolerance float64) (float64, bool) {
	best := 0.0
	bestDist := math.Inf(1)
	for _, a := range anchors {
		d := math.Abs(x - a)
		if d < bestDist {
			best = a
			bestDist = d
		}
	}
	if bestDist <= tolerance {
		return best, true
	}
	return 0, false
}

// clusterIndex returns the index of the cluster whose member range, widened
// by tolerance, contains x. It returns -1 when no cluster does.
func clusterIndex(clusters []Cluster, x, tolerance float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, c := range clusters {
		if x < c.Min-tolerance || x > c.Max+tolerance {
			continue
		}
		d := math.Abs(x - c.Anchor)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// roundTo rounds v to the nearest multiple of precision
func roundTo(v, precision float64) float64 {
	if precision <= 0 {
		return v
	}
	return math.Round(v/precision) * precision
}

// histogram counts rounded values
type histogram map[float64]int

func (h histogram) add(v float64) {
	h[v]++
}

// mode returns the most frequent value. Ties resolve to the smaller value so
// the result does not depend on map iteration order.
func (h histogram) mode() (float64, bool) {
	best := 0.0
	bestCount := 0
	for v, c := range h {
		if c > bestCount || (c == bestCount && v < best) {
			best = v
			bestCount = c
		}
	}
	return best, bestCount > 0
}

// atLeast returns the values whose count is at least min, ascending
func (h histogram) atLeast(min int) []float64 {
	var out []float64
	for v, c := range h {
		if c >= min {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

// median returns the median of values; values is reordered
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2
}
