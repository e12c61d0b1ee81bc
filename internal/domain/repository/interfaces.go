package repository

import (
	"context"

	"MacroCast/internal/domain/models"
	"MacroCast/pkg/util"
)

// SeriesSource retrieves monthly observations of one economic series.
// end == 0 means "through the latest published month". Implementations
// do not cache or retry; any upstream failure is returned as-is.
type SeriesSource interface {
	FetchMonthly(ctx context.Context, id models.SeriesID, start, end util.Month) ([]models.RawObservation, error)
}

// Regressor fits a linear model y = X·beta and returns the coefficient
// vector, one value per column of x. Implementations must match ordinary
// least squares to floating-point tolerance and fail on rank-deficient
// designs.
type Regressor interface {
	Fit(y []float64, x [][]float64) ([]float64, error)
}
