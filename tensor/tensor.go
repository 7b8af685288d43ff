package tensor

import (
	"fmt"
	"math"

	"github.com/npillmayer/streetplan"
)

// Tensor is a symmetric, trace-free 2×2 matrix
//
//	| A   B |
//	| B  −A |
//
// Storing two components is sufficient, as every field contribution is of this form
// and sums of such matrices stay in this form.
type Tensor struct {
	A, B float64
}

// FromAngle creates a tensor of magnitude r with major direction theta.
func FromAngle(r, theta float64) Tensor {
	return Tensor{A: r * math.Cos(2*theta), B: r * math.Sin(2*theta)}
}

// Matrix returns t as a full 2×2 matrix, rows first.
func (t Tensor) Matrix() [2][2]float64 {
	return [2][2]float64{{t.A, t.B}, {t.B, -t.A}}
}

// Norm is the magnitude R of t, i.e. the absolute value of its eigenvalues.
func (t Tensor) Norm() float64 {
	return math.Hypot(t.A, t.B)
}

// Add returns t + u.
func (t Tensor) Add(u Tensor) Tensor {
	return Tensor{A: t.A + u.A, B: t.B + u.B}
}

// Scaled returns t multiplied by w.
func (t Tensor) Scaled(w float64) Tensor {
	return Tensor{A: t.A * w, B: t.B * w}
}

// IsDegenerate is a predicate: is the magnitude of t below DegeneracyThreshold?
func (t Tensor) IsDegenerate() bool {
	return !(t.Norm() >= DegeneracyThreshold) // NaN counts as degenerate
}

func (t Tensor) String() string {
	return fmt.Sprintf("[%g,%g|%g,%g]", t.A, t.B, t.B, -t.A)
}

// Eigenvectors holds the principal directions of a tensor. Major and Minor are
// unit vectors and perpendicular to each other. For a degenerate tensor both are
// the zero vector and Degenerate is set.
type Eigenvectors struct {
	Major, Minor streetplan.Pair
	Degenerate   bool
}

// Direction returns the major eigenvector if major is true, the minor one otherwise.
func (ev Eigenvectors) Direction(major bool) streetplan.Pair {
	if major {
		return ev.Major
	}
	return ev.Minor
}

// Eigenvectors returns the principal directions of t. The major direction has
// eigenvalue +R, the minor one −R.
//
// Calling Eigenvectors on a degenerate tensor does not fail, but returns zero
// vectors. Clients have to check Degenerate before normalizing anything derived
// from the result.
func (t Tensor) Eigenvectors() Eigenvectors {
	if t.IsDegenerate() {
		return Eigenvectors{Degenerate: true}
	}
	theta := math.Atan2(t.B, t.A) / 2
	major := streetplan.Dir(theta)
	return Eigenvectors{
		Major: major,
		Minor: major.Perp(),
	}
}
