// Package regression fits the Phillips-curve model bank: four OLS
// regressions sharing one lag structure, differing only in a single
// predictor block, plus their unweighted ensemble.
package regression

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrRankDeficient means the design matrix cannot identify the
// coefficients (fewer rows than columns, or a singular factorization).
var ErrRankDeficient = errors.New("regression: rank-deficient design matrix")

// OLS solves y = X·beta by QR factorization. It is the default Regressor.
type OLS struct{}

// Fit returns the least-squares coefficients, one per column of x.
func (OLS) Fit(y []float64, x [][]float64) ([]float64, error) {
	n := len(x)
	if n == 0 || len(x[0]) == 0 {
		return nil, fmt.Errorf("%w: empty design", ErrRankDeficient)
	}
	p := len(x[0])
	if len(y) != n {
		return nil, fmt.Errorf("regression: %d observations but %d design rows", len(y), n)
	}
	if n < p {
		return nil, fmt.Errorf("%w: %d rows for %d coefficients", ErrRankDeficient, n, p)
	}

	X := mat.NewDense(n, p, nil)
	for i, row := range x {
		if len(row) != p {
			return nil, fmt.Errorf("regression: ragged design row %d", i)
		}
		X.SetRow(i, row)
	}

	var qr mat.QR
	qr.Factorize(X)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, mat.NewVecDense(n, y)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRankDeficient, err)
	}

	coef := make([]float64, p)
	for j := range coef {
		coef[j] = beta.AtVec(j)
	}
	return coef, nil
}
