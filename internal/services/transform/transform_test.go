package transform

import (
	"errors"
	"math"
	"testing"
	"time"

	"MacroCast/internal/domain/models"
	"MacroCast/pkg/util"
)

var testStart = util.NewMonth(2000, time.January)

func makeRaw(id models.SeriesID, start util.Month, vals []float64) []models.RawObservation {
	obs := make([]models.RawObservation, len(vals))
	for i, v := range vals {
		obs[i] = models.RawObservation{Month: start.Add(i), Series: id, Value: v}
	}
	return obs
}

// syntheticRaw builds n months of raw data with closed-form transforms:
// PCEPI grows geometrically so infl = growth and dinfl = dinfl12 = 0,
// UNRATE rises by 1 each month, EXPINF1YR and MICH are constant, and
// INDPRO grows geometrically at 1.2%/month.
func syntheticRaw(n int) map[models.SeriesID][]models.RawObservation {
	pcepi := make([]float64, n)
	unrate := make([]float64, n)
	expinf := make([]float64, n)
	mich := make([]float64, n)
	indpro := make([]float64, n)
	for i := 0; i < n; i++ {
		pcepi[i] = 100 * math.Exp(float64(i)*2.4/1200) // infl = 2.4
		unrate[i] = 4 + float64(i)
		expinf[i] = 2.5
		mich[i] = 3.0
		indpro[i] = math.Exp(float64(i) * 0.012) // indpro = 14.4
	}
	return map[models.SeriesID][]models.RawObservation{
		models.SeriesPCEPI:     makeRaw(models.SeriesPCEPI, testStart, pcepi),
		models.SeriesUNRATE:    makeRaw(models.SeriesUNRATE, testStart, unrate),
		models.SeriesEXPINF1YR: makeRaw(models.SeriesEXPINF1YR, testStart, expinf),
		models.SeriesMICH:      makeRaw(models.SeriesMICH, testStart, mich),
		models.SeriesINDPRO:    makeRaw(models.SeriesINDPRO, testStart, indpro),
	}
}

func TestBuildDropCount(t *testing.T) {
	const n = 60
	table, err := Build(syntheticRaw(n))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(table) != n-13 {
		t.Fatalf("expected %d rows, got %d", n-13, len(table))
	}
	if table[0].Month != testStart.Add(13) {
		t.Fatalf("unexpected first month %v", table[0].Month)
	}
	if !table.Contiguous() {
		t.Fatalf("table has month gaps")
	}
}

func TestBuildKnownValues(t *testing.T) {
	table, err := Build(syntheticRaw(40))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	for _, row := range table {
		if math.Abs(row.Dinfl) > 1e-9 || math.Abs(row.Dinfl12) > 1e-9 {
			t.Fatalf("geometric PCEPI should give zero dinfl/dinfl12, got %+v", row)
		}
		if math.Abs(row.Unrate-1) > 1e-9 {
			t.Fatalf("linear UNRATE should difference to 1, got %v", row.Unrate)
		}
		if row.Expinf1yr != 0 || row.Mich != 0 {
			t.Fatalf("constant series should difference to 0, got %+v", row)
		}
		if math.Abs(row.Indpro-14.4) > 1e-9 {
			t.Fatalf("expected indpro 14.4, got %v", row.Indpro)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	raw := syntheticRaw(50)
	a, err := Build(raw)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	b, err := Build(raw)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBuildAlignsOnCommonRange(t *testing.T) {
	raw := syntheticRaw(60)
	// MICH starts 6 months later: the common range shrinks by 6 months.
	mich := raw[models.SeriesMICH][6:]
	raw[models.SeriesMICH] = mich

	table, err := Build(raw)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(table) != 60-6-13 {
		t.Fatalf("expected %d rows, got %d", 60-6-13, len(table))
	}
	if table[0].Month != testStart.Add(6+13) {
		t.Fatalf("unexpected first month %v", table[0].Month)
	}
}

func TestBuildMissingSeries(t *testing.T) {
	raw := syntheticRaw(30)
	delete(raw, models.SeriesINDPRO)

	_, err := Build(raw)
	if !errors.Is(err, ErrMissingSeries) {
		t.Fatalf("expected ErrMissingSeries, got %v", err)
	}
}

func TestBuildInsufficientHistory(t *testing.T) {
	_, err := Build(syntheticRaw(13))
	if !errors.Is(err, ErrEmptyTransform) {
		t.Fatalf("expected ErrEmptyTransform, got %v", err)
	}
}
