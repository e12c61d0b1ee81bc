// Package evaluate produces per-model forecasts over the train and test
// windows and the two accuracy tables of the report.
package evaluate

import (
	"fmt"
	"math"
	"sort"

	"MacroCast/internal/domain/models"
	"MacroCast/internal/services/regression"
	"MacroCast/internal/services/transform"
	"MacroCast/pkg/util"
)

// Result holds everything the report needs: the out-of-sample forecasts
// with their actuals, and the in-sample/out-of-sample accuracy tables,
// each sorted by ascending MAPE.
type Result struct {
	TestActuals   models.ForecastSeries
	TestForecasts []models.ForecastSeries
	InSample      []models.AccuracyRow
	OutOfSample   []models.AccuracyRow
}

// modelOrder fixes the iteration order over the five forecast sources.
var modelOrder = []models.ModelName{
	models.ModelUN, models.ModelEXPINF, models.ModelMICH, models.ModelINDPRO, models.ModelEnsemble,
}

// Evaluate forecasts every row of both windows with all five models.
// Forecasts are computed on the full contiguous table, so lagged
// regressors of early test rows reach back into the train tail; the lag
// structure is not reset at the split boundary. In-sample rows are the
// training rows with full lag history.
func Evaluate(full models.TransformedTable, split models.Split, bank *regression.Bank) (*Result, error) {
	if len(split.Test) == 0 {
		return nil, fmt.Errorf("evaluate: %w", transform.ErrCutoffOutOfRange)
	}
	if !full.Contiguous() {
		return nil, fmt.Errorf("evaluate: table has month gaps")
	}

	type window struct {
		actual    []float64
		months    []util.Month
		forecasts map[models.ModelName][]float64
	}
	newWindow := func() *window {
		w := &window{forecasts: make(map[models.ModelName][]float64, len(modelOrder))}
		return w
	}
	train, test := newWindow(), newWindow()

	for i := range full {
		all, ok := bank.ForecastAll(full, i)
		if !ok {
			continue
		}
		w := train
		if full[i].Month.After(split.Cutoff) {
			w = test
		}
		w.actual = append(w.actual, full[i].Dinfl12)
		w.months = append(w.months, full[i].Month)
		for _, name := range modelOrder {
			w.forecasts[name] = append(w.forecasts[name], all[name])
		}
	}

	if len(test.actual) != len(split.Test) {
		return nil, fmt.Errorf("evaluate: %d of %d test rows lack lag history",
			len(split.Test)-len(test.actual), len(split.Test))
	}

	res := &Result{
		TestActuals: models.ForecastSeries{
			Model:  "actual",
			Months: test.months,
			Values: test.actual,
		},
	}
	for _, name := range modelOrder {
		res.TestForecasts = append(res.TestForecasts, models.ForecastSeries{
			Model:  name,
			Months: test.months,
			Values: test.forecasts[name],
		})
		res.InSample = append(res.InSample, accuracy(name, train.actual, train.forecasts[name]))
		res.OutOfSample = append(res.OutOfSample, accuracy(name, test.actual, test.forecasts[name]))
	}

	sortByMAPE(res.InSample)
	sortByMAPE(res.OutOfSample)
	return res, nil
}

// accuracy computes the error statistics of one forecast series. RMSE and
// MAE cover every point; points with a zero actual are excluded from MAPE
// (the percentage error is undefined there) and counted in Excluded. MAPE
// is NaN when every point was excluded.
func accuracy(name models.ModelName, actual, forecast []float64) models.AccuracyRow {
	row := models.AccuracyRow{Model: name, N: len(actual)}
	if len(actual) == 0 {
		row.MAPE = math.NaN()
		return row
	}

	var sqSum, absSum, pctSum float64
	pctN := 0
	for i, a := range actual {
		e := a - forecast[i]
		sqSum += e * e
		absSum += math.Abs(e)
		if a == 0 {
			row.Excluded++
			continue
		}
		pctSum += math.Abs(100 * e / a)
		pctN++
	}

	row.RMSE = math.Sqrt(sqSum / float64(len(actual)))
	row.MAE = absSum / float64(len(actual))
	if pctN > 0 {
		row.MAPE = pctSum / float64(pctN)
	} else {
		row.MAPE = math.NaN()
	}
	return row
}

// sortByMAPE orders ascending, undefined (NaN) MAPE last.
func sortByMAPE(rows []models.AccuracyRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].MAPE, rows[j].MAPE
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a < b
	})
}
