package geometry

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestInvertRoundTrip(t *testing.T) {
	// Well-conditioned homographies in the shape the pipeline actually sees:
	// roughly image-pixels -> pitch-meters with a mild perspective term.
	matrices := map[string]Matrix3{
		"identity":    Identity(),
		"scale":       {0.05, 0, 0, 0, 0.05, 0, 0, 0, 1},
		"affine":      {0.06, 0.01, -3.2, -0.004, 0.055, 1.8, 0, 0, 1},
		"perspective": {0.05, 0.012, -4.0, 0.002, 0.061, -1.1, 1.5e-5, 4.0e-5, 1},
	}
	points := []Point{
		{X: 0, Y: 0},
		{X: 960, Y: 540},
		{X: 1919, Y: 1079},
		{X: 12.5, Y: 800.25},
	}

	for name, h := range matrices {
		t.Run(name, func(t *testing.T) {
			inv, err := h.Invert()
			if err != nil {
				t.Fatalf("Invert failed on well-conditioned matrix: %v", err)
			}
			for _, p := range points {
				fwd, err := h.Project(p)
				if err != nil {
					t.Fatalf("forward projection of %+v failed: %v", p, err)
				}
				back, err := inv.Project(fwd)
				if err != nil {
					t.Fatalf("inverse projection of %+v failed: %v", fwd, err)
				}
				if math.Abs(back.X-p.X) > 1e-6 || math.Abs(back.Y-p.Y) > 1e-6 {
					t.Errorf("round trip drifted: %+v -> %+v -> %+v", p, fwd, back)
				}
			}
		})
	}
}

// TestInvertAgainstGonum cross-checks the adjugate inversion against a
// general-purpose LU inverse.
func TestInvertAgainstGonum(t *testing.T) {
	h := Matrix3{0.05, 0.012, -4.0, 0.002, 0.061, -1.1, 1.5e-5, 4.0e-5, 1}

	inv, err := h.Invert()
	if err != nil {
		t.Fatalf("Invert failed: %v", err)
	}

	var ref mat.Dense
	if err := ref.Inverse(mat.NewDense(3, 3, h[:])); err != nil {
		t.Fatalf("gonum inverse failed: %v", err)
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			want := ref.At(r, c)
			got := inv[3*r+c]
			if math.Abs(got-want) > 1e-9*math.Max(1, math.Abs(want)) {
				t.Errorf("inv[%d][%d] = %g, gonum says %g", r, c, got, want)
			}
		}
	}
}

func TestInvertSingular(t *testing.T) {
	cases := map[string]Matrix3{
		"all zero":       {},
		"identical rows": {1, 2, 3, 1, 2, 3, 0, 0, 1},
		"zero row":       {1, 2, 3, 0, 0, 0, 4, 5, 6},
		"tiny det":       {1e-7, 0, 0, 0, 1e-7, 0, 0, 0, 1e-7},
		"nan entry":      {math.NaN(), 0, 0, 0, 1, 0, 0, 0, 1},
		"inf entry":      {math.Inf(1), 0, 0, 0, 1, 0, 0, 0, 1},
	}

	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			inv, err := m.Invert()
			if !errors.Is(err, ErrSingular) {
				t.Fatalf("expected ErrSingular, got err=%v inv=%v", err, inv)
			}
			for i, v := range inv {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Errorf("singular result leaked non-finite entry at %d: %v", i, v)
				}
			}
		})
	}
}

func TestProjectDegenerate(t *testing.T) {
	// Bottom row chosen so that w = 0 exactly at (1, 1).
	m := Matrix3{1, 0, 0, 0, 1, 0, 1, 1, -2}

	if _, err := m.Project(Point{X: 1, Y: 1}); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("expected ErrDegenerate at w=0, got %v", err)
	}

	// A nearby point with |w| above the epsilon projects fine.
	if _, err := m.Project(Point{X: 4, Y: 1}); err != nil {
		t.Fatalf("expected clean projection away from the horizon, got %v", err)
	}
}

func TestProjectNonFinite(t *testing.T) {
	m := Matrix3{math.NaN(), 0, 0, 0, 1, 0, 0, 0, 1}
	if _, err := m.Project(Point{X: 1, Y: 1}); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("expected ErrDegenerate for NaN matrix, got %v", err)
	}
}

func TestMulIdentity(t *testing.T) {
	h := Matrix3{0.06, 0.01, -3.2, -0.004, 0.055, 1.8, 0, 0, 1}
	if got := h.Mul(Identity()); got != h {
		t.Errorf("h * I = %v, want %v", got, h)
	}
	if got := Identity().Mul(h); got != h {
		t.Errorf("I * h = %v, want %v", got, h)
	}
}
