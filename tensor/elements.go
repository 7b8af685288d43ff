package tensor

import (
	"fmt"
	"math"

	"github.com/npillmayer/streetplan"
)

// DesignElement is a field generator placed by a designer. Implementations are
// immutable. The set of design elements is closed: Grid and Radial.
type DesignElement interface {
	// Anchor returns the center of the element.
	Anchor() streetplan.Pair
	// contribution returns the element's weighted tensor at p.
	contribution(p streetplan.Pair, decay float64) Tensor
}

// Grid produces a grid-aligned tensor, rotated by Angle (radians). Its influence
// decays with the squared distance from Center and vanishes beyond Length.
type Grid struct {
	Center streetplan.Pair
	Angle  float64
	Length float64
}

// Anchor is part of interface DesignElement.
func (g Grid) Anchor() streetplan.Pair {
	return g.Center
}

func (g Grid) contribution(p streetplan.Pair, decay float64) Tensor {
	d2 := (p - g.Center).NormSq()
	if d2 > g.Length*g.Length {
		return Tensor{}
	}
	return FromAngle(math.Exp(-decay*d2), g.Angle)
}

func (g Grid) String() string {
	return fmt.Sprintf("grid{%v, θ=%g, l=%g}", g.Center, g.Angle, g.Length)
}

// Radial produces a tensor whose major directions circle around Center and whose
// minor directions radiate from it. Center itself is a degenerate point.
type Radial struct {
	Center streetplan.Pair
}

// Anchor is part of interface DesignElement.
func (r Radial) Anchor() streetplan.Pair {
	return r.Center
}

func (r Radial) contribution(p streetplan.Pair, decay float64) Tensor {
	v := p - r.Center
	d2 := v.NormSq()
	if streetplan.Is0(d2) {
		return Tensor{}
	}
	x, y := v.F()
	basis := Tensor{A: (y*y - x*x) / d2, B: -2 * x * y / d2}
	return basis.Scaled(math.Exp(-decay * d2))
}

func (r Radial) String() string {
	return fmt.Sprintf("radial{%v}", r.Center)
}

var _ DesignElement = Grid{}
var _ DesignElement = Radial{}
