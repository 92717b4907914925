// Package chart serves bounded price series for tokens.
package chart

import (
	"math"
	"time"
)

// Point is one price observation of a series.
type Point struct {
	Time         time.Time `json:"time"`
	Price        float64   `json:"price"`
	Interpolated bool      `json:"interpolated"`
	Anchor       bool      `json:"anchor,omitempty"`
}

// Stride is the step that reduces count points to at most maxPoints.
func Stride(count, maxPoints int) int {
	if maxPoints <= 0 || count <= maxPoints {
		return 1
	}
	return (count + maxPoints - 1) / maxPoints
}

// Downsample keeps every stride-th point of a chronological series and always keeps the
// first and last points. The result never exceeds maxPoints.
func Downsample(points []Point, maxPoints int) []Point {
	if maxPoints <= 0 {
		return nil
	}
	if len(points) <= maxPoints {
		return points
	}
	if maxPoints == 1 {
		return []Point{points[len(points)-1]}
	}

	stride := Stride(len(points), maxPoints)
	out := make([]Point, 0, maxPoints)
	for i := 0; i < len(points); i += stride {
		out = append(out, points[i])
	}

	if (len(points)-1)%stride == 0 {
		return out
	}
	last := points[len(points)-1]
	if len(out) < maxPoints {
		return append(out, last)
	}
	out[len(out)-1] = last
	return out
}

// fitStrided takes rows the store already strode. They carry the newest observation after
// the last strided one, which overshoots the budget by one when the stride divides the
// window evenly into budget rows; the newest then replaces the last strided row, as
// Downsample would have done.
func fitStrided(points []Point, budget int) []Point {
	if budget < 2 || len(points) != budget+1 {
		return points
	}
	out := make([]Point, 0, budget)
	out = append(out, points[:budget-1]...)
	return append(out, points[budget])
}

// FilterNoise drops interior points whose relative change from the previously kept point
// is below threshold. The first and last points are always kept.
func FilterNoise(points []Point, threshold float64) []Point {
	if len(points) <= 2 || threshold <= 0 {
		return points
	}

	out := make([]Point, 0, len(points))
	out = append(out, points[0])
	for _, p := range points[1 : len(points)-1] {
		prev := out[len(out)-1].Price
		if prev != 0 && math.Abs(p.Price-prev)/math.Abs(prev) < threshold {
			continue
		}
		out = append(out, p)
	}
	return append(out, points[len(points)-1])
}
