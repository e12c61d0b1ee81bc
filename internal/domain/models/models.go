package models

import (
	"encoding/json"
	"math"

	"MacroCast/pkg/util"
)

// SeriesID names a FRED series used by the report.
type SeriesID string

const (
	SeriesPCEPI     SeriesID = "PCEPI"     // PCE price index
	SeriesUNRATE    SeriesID = "UNRATE"    // civilian unemployment rate
	SeriesEXPINF1YR SeriesID = "EXPINF1YR" // Cleveland Fed 1-year expected inflation
	SeriesMICH      SeriesID = "MICH"      // Michigan survey inflation expectation
	SeriesINDPRO    SeriesID = "INDPRO"    // industrial production index
)

// AllSeries lists every series the pipeline consumes, in fetch order.
func AllSeries() []SeriesID {
	return []SeriesID{SeriesPCEPI, SeriesUNRATE, SeriesEXPINF1YR, SeriesMICH, SeriesINDPRO}
}

// RawObservation is one published monthly value of one series.
// Immutable once fetched; one value per (month, series).
type RawObservation struct {
	Month  util.Month `json:"month"`
	Series SeriesID   `json:"series"`
	Value  float64    `json:"value"`
}

// Column names a derived column of the transformed table.
type Column string

const (
	ColDinfl     Column = "dinfl"
	ColDinfl12   Column = "dinfl12"
	ColUnrate    Column = "unrate"
	ColExpinf1yr Column = "expinf1yr"
	ColMich      Column = "mich"
	ColIndpro    Column = "indpro"
)

// TransformedRow holds the stationary derived values for one month.
type TransformedRow struct {
	Month     util.Month `json:"month"`
	Dinfl     float64    `json:"dinfl"`
	Dinfl12   float64    `json:"dinfl12"`
	Unrate    float64    `json:"unrate"`
	Expinf1yr float64    `json:"expinf1yr"`
	Mich      float64    `json:"mich"`
	Indpro    float64    `json:"indpro"`
}

// Value returns the named column of the row.
func (r TransformedRow) Value(c Column) float64 {
	switch c {
	case ColDinfl:
		return r.Dinfl
	case ColDinfl12:
		return r.Dinfl12
	case ColUnrate:
		return r.Unrate
	case ColExpinf1yr:
		return r.Expinf1yr
	case ColMich:
		return r.Mich
	case ColIndpro:
		return r.Indpro
	}
	panic("unknown column " + string(c))
}

// TransformedTable is a contiguous monthly sequence of transformed rows.
type TransformedTable []TransformedRow

// Contiguous reports whether consecutive rows are consecutive months.
func (t TransformedTable) Contiguous() bool {
	for i := 1; i < len(t); i++ {
		if t[i].Month != t[i-1].Month.Add(1) {
			return false
		}
	}
	return true
}

// Column extracts one column as a slice, in row order.
func (t TransformedTable) Column(c Column) []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = r.Value(c)
	}
	return out
}

// Months extracts the month keys, in row order.
func (t TransformedTable) Months() []util.Month {
	out := make([]util.Month, len(t))
	for i, r := range t {
		out[i] = r.Month
	}
	return out
}

// Split is a chronological train/test partition of a transformed table.
// Train holds all rows up to and including the cutoff month, Test the rest.
type Split struct {
	Cutoff util.Month
	Train  TransformedTable
	Test   TransformedTable
}

// ModelName identifies one of the fitted Phillips-curve models
// or the ensemble combination.
type ModelName string

const (
	ModelUN       ModelName = "mUN"
	ModelEXPINF   ModelName = "mEXPINF"
	ModelMICH     ModelName = "mMICH"
	ModelINDPRO   ModelName = "mINDPRO"
	ModelEnsemble ModelName = "ensemble"
)

// AccuracyRow holds the error statistics of one model over one window.
// Excluded counts points dropped from MAPE because the actual was zero.
type AccuracyRow struct {
	Model    ModelName `json:"model"`
	MAPE     float64   `json:"mape"`
	RMSE     float64   `json:"rmse"`
	MAE      float64   `json:"mae"`
	N        int       `json:"n"`
	Excluded int       `json:"excluded,omitempty"`
}

// MarshalJSON emits null for an undefined (NaN) MAPE; encoding/json
// rejects NaN outright.
func (r AccuracyRow) MarshalJSON() ([]byte, error) {
	type row struct {
		Model    ModelName `json:"model"`
		MAPE     *float64  `json:"mape"`
		RMSE     float64   `json:"rmse"`
		MAE      float64   `json:"mae"`
		N        int       `json:"n"`
		Excluded int       `json:"excluded,omitempty"`
	}
	out := row{Model: r.Model, RMSE: r.RMSE, MAE: r.MAE, N: r.N, Excluded: r.Excluded}
	if !math.IsNaN(r.MAPE) {
		mape := r.MAPE
		out.MAPE = &mape
	}
	return json.Marshal(out)
}

// ForecastSeries is one model's forecasts over a window.
type ForecastSeries struct {
	Model  ModelName    `json:"model"`
	Months []util.Month `json:"months"`
	Values []float64    `json:"values"`
}

// Report is the machine-readable output of a pipeline run: the
// out-of-sample forecasts with their actuals plus both accuracy tables.
type Report struct {
	Cutoff      util.Month       `json:"cutoff"`
	Actuals     ForecastSeries   `json:"actuals"`
	Forecasts   []ForecastSeries `json:"forecasts"`
	InSample    []AccuracyRow    `json:"in_sample"`
	OutOfSample []AccuracyRow    `json:"out_of_sample"`
}
