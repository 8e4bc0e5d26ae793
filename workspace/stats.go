package workspace

import (
	"github.com/golang/geo/r3"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Summary describes a set of samples. Reach is the distance of a tip from the world origin.
type Summary struct {
	Count       int
	ReachMean   float64
	ReachStdDev float64
	ReachMin    float64
	ReachMax    float64
	ReachP95    float64
	Min         r3.Vector
	Max         r3.Vector
}

// Reaches returns the distance of every tip from the world origin.
func Reaches(points []Point) []float64 {
	reaches := make([]float64, 0, len(points))
	for _, p := range points {
		reaches = append(reaches, p.Tip.Norm())
	}
	return reaches
}

// Summarize computes reach statistics and the axis aligned bounds of the tips. An empty input
// yields a zero Summary.
func Summarize(points []Point) (Summary, error) {
	if len(points) == 0 {
		return Summary{}, nil
	}
	reaches := stats.Float64Data(Reaches(points))

	var err error
	s := Summary{Count: len(points)}
	if s.ReachMean, err = reaches.Mean(); err != nil {
		return Summary{}, errors.Wrap(err, "reach mean")
	}
	if s.ReachStdDev, err = reaches.StandardDeviation(); err != nil {
		return Summary{}, errors.Wrap(err, "reach standard deviation")
	}
	if s.ReachMin, err = reaches.Min(); err != nil {
		return Summary{}, errors.Wrap(err, "reach min")
	}
	if s.ReachMax, err = reaches.Max(); err != nil {
		return Summary{}, errors.Wrap(err, "reach max")
	}
	if s.ReachP95, err = reaches.Percentile(95); err != nil {
		return Summary{}, errors.Wrap(err, "reach 95th percentile")
	}

	xs, ys, zs := components(points)
	s.Min = r3.Vector{X: floats.Min(xs), Y: floats.Min(ys), Z: floats.Min(zs)}
	s.Max = r3.Vector{X: floats.Max(xs), Y: floats.Max(ys), Z: floats.Max(zs)}
	return s, nil
}

func components(points []Point) (xs, ys, zs []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	zs = make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i], zs[i] = p.Tip.X, p.Tip.Y, p.Tip.Z
	}
	return xs, ys, zs
}
