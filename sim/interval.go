package sim

import "fmt"

// Interval is a closed real interval [Min, Max] serving as the uniform
// support for inter-arrival and service times. The zero value [0,0] doubles
// as the "no direct external arrivals" sentinel on a queue node.
type Interval struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// NewInterval builds an interval, failing fast on negative or inverted
// bounds.
func NewInterval(lo, hi float64) (Interval, error) {
	if lo < 0 || hi < 0 {
		return Interval{}, fmt.Errorf("interval bounds must be non-negative, got [%v, %v]", lo, hi)
	}
	if lo > hi {
		return Interval{}, fmt.Errorf("interval min %v exceeds max %v", lo, hi)
	}
	return Interval{Min: lo, Max: hi}, nil
}

// Sample draws one value uniformly from the interval. Consumes exactly one
// draw even when the interval is degenerate.
func (iv Interval) Sample(r *RandomStream) float64 {
	return iv.Min + r.NextNormalized()*(iv.Max-iv.Min)
}

// IsZero reports whether the interval is the zero-width [0,0] sentinel.
func (iv Interval) IsZero() bool {
	return iv.Min == 0 && iv.Max == 0
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%v, %v]", iv.Min, iv.Max)
}
