package regression

import (
	"errors"
	"math"
	"testing"
)

func TestOLSRecoversKnownCoefficients(t *testing.T) {
	// y = 3 + 2·x1 − x2, no noise.
	var y []float64
	var x [][]float64
	for i := 0; i < 30; i++ {
		x1 := math.Sin(1.3 * float64(i))
		x2 := math.Cos(0.7*float64(i)) + 0.1*float64(i)
		x = append(x, []float64{1, x1, x2})
		y = append(y, 3+2*x1-x2)
	}

	coef, err := OLS{}.Fit(y, x)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	want := []float64{3, 2, -1}
	for j, w := range want {
		if math.Abs(coef[j]-w) > 1e-9 {
			t.Fatalf("coefficient %d: want %v, got %v", j, w, coef[j])
		}
	}
}

func TestOLSFewerRowsThanCoefficients(t *testing.T) {
	y := []float64{1, 2}
	x := [][]float64{{1, 1, 1}, {1, 2, 4}}

	_, err := OLS{}.Fit(y, x)
	if !errors.Is(err, ErrRankDeficient) {
		t.Fatalf("expected ErrRankDeficient, got %v", err)
	}
}

func TestOLSCollinearColumns(t *testing.T) {
	var y []float64
	var x [][]float64
	for i := 0; i < 20; i++ {
		v := float64(i)
		x = append(x, []float64{1, v, 2 * v}) // third column is twice the second
		y = append(y, v)
	}

	_, err := OLS{}.Fit(y, x)
	if !errors.Is(err, ErrRankDeficient) {
		t.Fatalf("expected ErrRankDeficient, got %v", err)
	}
}

func TestOLSEmptyDesign(t *testing.T) {
	_, err := OLS{}.Fit(nil, nil)
	if !errors.Is(err, ErrRankDeficient) {
		t.Fatalf("expected ErrRankDeficient, got %v", err)
	}
}

func TestOLSLengthMismatch(t *testing.T) {
	_, err := OLS{}.Fit([]float64{1}, [][]float64{{1}, {1}})
	if err == nil {
		t.Fatalf("expected error")
	}
}
