package trace

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/streetplan"
	"github.com/npillmayer/streetplan/fit"
)

// Params collects the settings of street plan generation.
type Params struct {
	GridSize        float64 // side length of the square grid
	H               float64 // integration step size
	Separation      float64 // minimum distance between roads of the same family
	SeparationScale float64 // added separation at a distance of GridSize from the city center
	MaxLength       float64 // maximum arc length of a single trace
	Iterations      int     // number of tracing rounds, alternating major and minor
	Alpha           float64 // direction change threshold of the first smoothing pass
	Beta            float64 // direction change threshold of the second smoothing pass
	Padding         int     // minimum index distance between control points
	Blend           float64 // blend factor for interior control point velocities
	MinLengthFactor float64 // clipped curves shorter than this times Separation are dropped
	Connection      float64 // maximum gap closed by endpoint merging
	Workers         int     // size of the worker pool
}

// DefaultParams returns the settings used for a 512×512 grid.
func DefaultParams() Params {
	return Params{
		GridSize:        512,
		H:               0.2,
		Separation:      16,
		SeparationScale: 0,
		MaxLength:       200,
		Iterations:      16,
		Alpha:           0.03,
		Beta:            0.3,
		Padding:         20,
		Blend:           0.7,
		MinLengthFactor: 2,
		Connection:      8,
		Workers:         4,
	}
}

// Validate checks p for consistency.
func (p Params) Validate() error {
	check := func(ok bool, key string, v any) error {
		if !ok {
			return fmt.Errorf("%w: %s = %v", ErrInvalidParams, key, v)
		}
		return nil
	}
	for _, err := range []error{
		check(p.GridSize > 0, "gridsize", p.GridSize),
		check(p.H > 0 && p.H <= p.MaxLength, "h", p.H),
		check(p.Separation > 0, "separation", p.Separation),
		check(p.SeparationScale >= 0, "separationscale", p.SeparationScale),
		check(p.MaxLength > 0, "maxlength", p.MaxLength),
		check(p.Iterations >= 0, "iterations", p.Iterations),
		check(p.Alpha > 0, "alpha", p.Alpha),
		check(p.Beta >= 0, "beta", p.Beta),
		check(p.Padding >= 1, "padding", p.Padding),
		check(p.Blend >= 0, "blend", p.Blend),
		check(p.MinLengthFactor >= 0, "minlength", p.MinLengthFactor),
		check(p.Connection >= 0, "connection", p.Connection),
		check(p.Workers >= 1, "workers", p.Workers),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// MinLength is the minimum length of a clipped curve.
func (p Params) MinLength() float64 {
	return p.MinLengthFactor * p.Separation
}

// SeparationFrom returns the separation function for a city centered at center.
// Separation grows linearly with the distance from center if SeparationScale is set.
func (p Params) SeparationFrom(center streetplan.Pair) fit.Separation {
	if p.SeparationScale == 0 {
		return fit.ConstantSeparation(p.Separation)
	}
	d, scale, size := p.Separation, p.SeparationScale, p.GridSize
	return func(pt streetplan.Pair) float64 {
		return d + (pt-center).Norm()/size*scale
	}
}

// Smoothing returns the curve fitting parameters.
func (p Params) Smoothing() fit.Smoothing {
	return fit.Smoothing{
		Alpha:   p.Alpha,
		Beta:    p.Beta,
		Padding: p.Padding,
		H:       p.H,
		Blend:   p.Blend,
	}
}

// ConfigPrefix is prepended to all configuration keys read by ParamsFromConfig.
const ConfigPrefix = "streetplan."

// ParamsFromConfig reads parameters from a configuration. Keys are
// ConfigPrefix followed by the lowercase parameter name, e.g. "streetplan.separation".
// Unset keys keep their default value. The result is validated.
func ParamsFromConfig(conf schuko.Configuration) (Params, error) {
	p := DefaultParams()
	if conf == nil {
		return p, nil
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{"gridsize", &p.GridSize},
		{"h", &p.H},
		{"separation", &p.Separation},
		{"separationscale", &p.SeparationScale},
		{"maxlength", &p.MaxLength},
		{"alpha", &p.Alpha},
		{"beta", &p.Beta},
		{"blend", &p.Blend},
		{"minlength", &p.MinLengthFactor},
		{"connection", &p.Connection},
	}
	for _, f := range floats {
		key := ConfigPrefix + f.key
		if !conf.IsSet(key) {
			continue
		}
		v, err := strconv.ParseFloat(conf.GetString(key), 64)
		if err != nil {
			return p, fmt.Errorf("%w: %s: %v", ErrInvalidParams, key, err)
		}
		*f.dst = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"iterations", &p.Iterations},
		{"padding", &p.Padding},
		{"workers", &p.Workers},
	}
	for _, n := range ints {
		if key := ConfigPrefix + n.key; conf.IsSet(key) {
			*n.dst = conf.GetInt(key)
		}
	}
	tracer().Debugf("street plan parameters: %+v", p)
	return p, p.Validate()
}
