// Package transform converts raw monthly series into the stationary
// table the Phillips-curve models are fit on, and splits that table
// chronologically into train and test windows.
package transform

import (
	"errors"
	"fmt"
	"math"

	"MacroCast/internal/domain/models"
	"MacroCast/pkg/util"
)

var (
	// ErrEmptyTransform means no row survived the lag-induced drops.
	ErrEmptyTransform = errors.New("transform: no rows with full lag history")

	// ErrMissingSeries means an input series is absent or empty.
	ErrMissingSeries = errors.New("transform: missing input series")
)

// annualize converts a monthly log-change to an annualized percentage.
const annualize = 1200

// maxLag is the deepest raw-history requirement of any derived column:
// dinfl12 needs lag(infl, 12) and infl itself needs one lag.
const maxLag = 13

// Build derives the six stationary columns from the five raw series and
// drops every month without full lag history. Per-series rules are fixed
// domain knowledge:
//
//	infl      = 1200·Δlog(PCEPI)                     (intermediate)
//	dinfl     = Δinfl
//	dinfl12   = 100·Δ₁₂log(PCEPI) − lag(infl, 12)    (dependent variable)
//	unrate    = ΔUNRATE, expinf1yr = ΔEXPINF1YR, mich = ΔMICH
//	indpro    = 1200·Δlog(INDPRO)
//
// The inputs are aligned on their common month range first; each series
// must already be contiguous monthly (the fetcher guarantees this).
func Build(raw map[models.SeriesID][]models.RawObservation) (models.TransformedTable, error) {
	aligned, start, err := align(raw)
	if err != nil {
		return nil, err
	}

	pcepi := aligned[models.SeriesPCEPI]
	n := len(pcepi)

	infl := make([]float64, n)
	for i := range infl {
		infl[i] = math.NaN()
		if i >= 1 {
			infl[i] = annualize * (math.Log(pcepi[i]) - math.Log(pcepi[i-1]))
		}
	}

	dinfl := lagDiff(infl, 1)
	dinfl12 := make([]float64, n)
	for i := range dinfl12 {
		dinfl12[i] = math.NaN()
		if i >= maxLag {
			dinfl12[i] = 100*(math.Log(pcepi[i])-math.Log(pcepi[i-12])) - infl[i-12]
		}
	}

	unrate := lagDiff(aligned[models.SeriesUNRATE], 1)
	expinf := lagDiff(aligned[models.SeriesEXPINF1YR], 1)
	mich := lagDiff(aligned[models.SeriesMICH], 1)

	indproRaw := aligned[models.SeriesINDPRO]
	indpro := make([]float64, n)
	for i := range indpro {
		indpro[i] = math.NaN()
		if i >= 1 {
			indpro[i] = annualize * (math.Log(indproRaw[i]) - math.Log(indproRaw[i-1]))
		}
	}

	table := make(models.TransformedTable, 0, n)
	for i := 0; i < n; i++ {
		row := models.TransformedRow{
			Month:     start.Add(i),
			Dinfl:     dinfl[i],
			Dinfl12:   dinfl12[i],
			Unrate:    unrate[i],
			Expinf1yr: expinf[i],
			Mich:      mich[i],
			Indpro:    indpro[i],
		}
		if hasNaN(row) {
			continue
		}
		table = append(table, row)
	}

	if len(table) == 0 {
		return nil, ErrEmptyTransform
	}
	return table, nil
}

// align intersects the month ranges of all five series and returns the
// value slices over the common range, plus the common start month.
func align(raw map[models.SeriesID][]models.RawObservation) (map[models.SeriesID][]float64, util.Month, error) {
	var first, last util.Month
	for i, id := range models.AllSeries() {
		obs := raw[id]
		if len(obs) == 0 {
			return nil, 0, fmt.Errorf("%w: %s", ErrMissingSeries, id)
		}
		lo, hi := obs[0].Month, obs[len(obs)-1].Month
		if i == 0 {
			first, last = lo, hi
			continue
		}
		if lo.After(first) {
			first = lo
		}
		if hi.Before(last) {
			last = hi
		}
	}
	if last.Before(first) {
		return nil, 0, fmt.Errorf("transform: series month ranges do not overlap")
	}

	n := int(last-first) + 1
	aligned := make(map[models.SeriesID][]float64, len(raw))
	for id, obs := range raw {
		vals := make([]float64, n)
		for _, o := range obs {
			if o.Month.Before(first) || o.Month.After(last) {
				continue
			}
			vals[int(o.Month-first)] = o.Value
		}
		aligned[id] = vals
	}
	return aligned, first, nil
}

// lagDiff returns v − lag(v, k), NaN where the lag is undefined.
func lagDiff(v []float64, k int) []float64 {
	out := make([]float64, len(v))
	for i := range out {
		out[i] = math.NaN()
		if i >= k {
			out[i] = v[i] - v[i-k]
		}
	}
	return out
}

func hasNaN(r models.TransformedRow) bool {
	return math.IsNaN(r.Dinfl) || math.IsNaN(r.Dinfl12) ||
		math.IsNaN(r.Unrate) || math.IsNaN(r.Expinf1yr) ||
		math.IsNaN(r.Mich) || math.IsNaN(r.Indpro)
}
