package regression

import (
	"MacroCast/internal/domain/models"
	"MacroCast/pkg/util"
)

// Lag structure shared by all four models (Stock–Watson specification):
// the dependent variable at month t is regressed on a constant, dinfl at
// lags 12–23, and one predictor at lags 12–23.
const (
	lagMin = 12
	lagMax = 23

	// NumCoefficients is the fixed design width: intercept plus two
	// blocks of twelve lags.
	NumCoefficients = 1 + 2*(lagMax-lagMin+1)
)

// designRow builds the regressor vector for target index i of a
// contiguous table. Returns nil when the table holds fewer than lagMax
// rows of history before i.
func designRow(table models.TransformedTable, i int, predictor models.Column) []float64 {
	if i < lagMax || i >= len(table) {
		return nil
	}
	row := make([]float64, 0, NumCoefficients)
	row = append(row, 1)
	for k := lagMin; k <= lagMax; k++ {
		row = append(row, table[i-k].Dinfl)
	}
	for k := lagMin; k <= lagMax; k++ {
		row = append(row, table[i-k].Value(predictor))
	}
	return row
}

// design builds the target vector and design matrix over every row of
// the table with full lag history, along with the target months.
func design(table models.TransformedTable, predictor models.Column) (y []float64, x [][]float64, months []util.Month) {
	for i := lagMax; i < len(table); i++ {
		y = append(y, table[i].Dinfl12)
		x = append(x, designRow(table, i, predictor))
		months = append(months, table[i].Month)
	}
	return y, x, months
}
