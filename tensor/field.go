package tensor

import (
	"fmt"
	"math"

	"github.com/npillmayer/streetplan"
)

// smoothingRadius is the distance of neighbouring samples for smoothed evaluation.
const smoothingRadius = 1.0

// Field is a tensor field over the square grid [0,size]×[0,size]. It owns an
// ordered list of design elements and a global decay constant.
//
// Evaluation is a pure function of position and the element list; a Field may
// be used by concurrent goroutines.
type Field struct {
	size     float64
	decay    float64
	elements []DesignElement
	kernel   []tap // smoothing kernel, built once
}

type tap struct {
	offset streetplan.Pair
	weight float64
}

// NewField creates a tensor field of the given grid size. decay controls how fast
// the influence of elements fades with the squared distance.
func NewField(size, decay float64, elements ...DesignElement) (*Field, error) {
	if !(size > 0) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: size %g", ErrInvalidField, size)
	}
	if !(decay >= 0) || math.IsInf(decay, 0) {
		return nil, fmt.Errorf("%w: decay %g", ErrInvalidField, decay)
	}
	f := &Field{
		size:     size,
		decay:    decay,
		elements: append([]DesignElement(nil), elements...),
	}
	f.kernel = binomialKernel(smoothingRadius)
	tracer().Debugf("new tensor field of size %g with %d elements", size, len(elements))
	return f, nil
}

// 3×3 binomial kernel (1 2 1)ᵀ(1 2 1)/16.
func binomialKernel(r float64) []tap {
	w := [3]float64{1, 2, 1}
	kernel := make([]tap, 0, 9)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			kernel = append(kernel, tap{
				offset: streetplan.P(float64(i)*r, float64(j)*r),
				weight: w[i+1] * w[j+1] / 16,
			})
		}
	}
	return kernel
}

// Size is the extent of the square grid.
func (f *Field) Size() float64 {
	return f.size
}

// Decay is the global decay constant.
func (f *Field) Decay() float64 {
	return f.decay
}

// Elements returns a copy of the design elements of f.
func (f *Field) Elements() []DesignElement {
	return append([]DesignElement(nil), f.elements...)
}

// Contains is a predicate: is p within the grid bounds (borders included)?
func (f *Field) Contains(p streetplan.Pair) bool {
	x, y := p.F()
	return x >= 0 && y >= 0 && x <= f.size && y <= f.size
}

// Evaluate sums up the weighted contributions of all design elements at p.
func (f *Field) Evaluate(p streetplan.Pair) Tensor {
	var t Tensor
	for _, e := range f.elements {
		t = t.Add(e.contribution(p, f.decay))
	}
	return t
}

// EvaluateSmoothed averages the field over a small neighbourhood of p to suppress
// sampling noise before eigen-decomposition.
func (f *Field) EvaluateSmoothed(p streetplan.Pair) Tensor {
	var t Tensor
	for _, k := range f.kernel {
		t = t.Add(f.Evaluate(p + k.offset).Scaled(k.weight))
	}
	return t
}

// Directions returns the eigenvectors of the smoothed field at p.
func (f *Field) Directions(p streetplan.Pair) Eigenvectors {
	return f.EvaluateSmoothed(p).Eigenvectors()
}
