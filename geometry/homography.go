package geometry

import (
	"errors"
	"math"
)

// Numerical guards for the projective math. A homography fitted from a bad
// keypoint set can be arbitrarily close to rank-deficient, so both the
// inversion and the homogeneous divide check against an epsilon instead of
// trusting the caller.
const (
	detEpsilon = 1e-12 // |det(H)| below this means H is unusable
	wEpsilon   = 1e-9  // |w| below this means the point is at infinity
)

var (
	// ErrSingular is returned by Invert when the matrix is singular or
	// ill-conditioned. The caller skips the dependent draw for that frame.
	ErrSingular = errors.New("geometry: singular matrix")

	// ErrDegenerate is returned by Project when the homogeneous coordinate
	// collapses. The caller skips that single point, not the whole frame.
	ErrDegenerate = errors.New("geometry: degenerate projection")
)

// Matrix3 is a 3x3 real matrix in row-major order. Homographies map image
// pixel coordinates to pitch meters; their inverses map pitch meters back
// into the image.
type Matrix3 [9]float64

// Point is a 2D point in whichever plane the matrix relates (pixels or
// pitch meters).
type Point struct {
	X float64
	Y float64
}

// Det returns the determinant, expanded along the first row.
func (m Matrix3) Det() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Invert returns the inverse computed as adjugate/determinant. It returns
// ErrSingular when |det| < 1e-12 or the determinant is not finite, so a
// bad homography segment can never produce Inf/NaN geometry downstream.
func (m Matrix3) Invert() (Matrix3, error) {
	det := m.Det()
	if math.IsNaN(det) || math.IsInf(det, 0) || math.Abs(det) < detEpsilon {
		return Matrix3{}, ErrSingular
	}

	// Adjugate: transpose of the cofactor matrix.
	adj := Matrix3{
		m[4]*m[8] - m[5]*m[7], m[2]*m[7] - m[1]*m[8], m[1]*m[5] - m[2]*m[4],
		m[5]*m[6] - m[3]*m[8], m[0]*m[8] - m[2]*m[6], m[2]*m[3] - m[0]*m[5],
		m[3]*m[7] - m[4]*m[6], m[1]*m[6] - m[0]*m[7], m[0]*m[4] - m[1]*m[3],
	}

	var inv Matrix3
	for i := range adj {
		inv[i] = adj[i] / det
	}
	return inv, nil
}

// Project applies the matrix to (p.X, p.Y, 1) and divides through by the
// homogeneous coordinate. It returns ErrDegenerate when |w| < 1e-9 or the
// result is not finite.
func (m Matrix3) Project(p Point) (Point, error) {
	x := m[0]*p.X + m[1]*p.Y + m[2]
	y := m[3]*p.X + m[4]*p.Y + m[5]
	w := m[6]*p.X + m[7]*p.Y + m[8]

	if math.IsNaN(w) || math.IsInf(w, 0) || math.Abs(w) < wEpsilon {
		return Point{}, ErrDegenerate
	}

	out := Point{X: x / w, Y: y / w}
	if math.IsNaN(out.X) || math.IsInf(out.X, 0) || math.IsNaN(out.Y) || math.IsInf(out.Y, 0) {
		return Point{}, ErrDegenerate
	}
	return out, nil
}

// Identity returns the identity matrix.
func Identity() Matrix3 {
	return Matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mul returns m * n.
func (m Matrix3) Mul(n Matrix3) Matrix3 {
	var out Matrix3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[3*r+c] = m[3*r]*n[c] + m[3*r+1]*n[3+c] + m[3*r+2]*n[6+c]
		}
	}
	return out
}
