package usecase

import (
	"context"
	"fmt"
	"time"

	"MacroCast/internal/domain/models"
	drepo "MacroCast/internal/domain/repository"
	"MacroCast/internal/services/evaluate"
	"MacroCast/internal/services/regression"
	"MacroCast/internal/services/transform"
	"MacroCast/pkg/logger"
	"MacroCast/pkg/util"
)

// Params are the run parameters: the series to fetch, the observation
// window (End == 0 means latest published), and the train/test cutoff.
type Params struct {
	Series []models.SeriesID
	Start  util.Month
	End    util.Month
	Cutoff util.Month
}

// ReportUseCase runs the full pipeline: fetch → transform → split →
// fit → evaluate. Every stage is all-or-nothing; the first failure
// aborts the run with an error naming the stage.
type ReportUseCase struct {
	source drepo.SeriesSource
	reg    drepo.Regressor
	log    *logger.Logger
	params Params
}

func NewReportUseCase(source drepo.SeriesSource, reg drepo.Regressor, log *logger.Logger, params Params) *ReportUseCase {
	return &ReportUseCase{source: source, reg: reg, log: log, params: params}
}

// Run executes one batch run and returns the report.
func (uc *ReportUseCase) Run(ctx context.Context) (*models.Report, error) {
	raw, err := uc.fetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	started := time.Now()
	table, err := transform.Build(raw)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	uc.log.Info("transformed",
		logger.Int("rows", len(table)),
		logger.Stringer("first", table[0].Month),
		logger.Stringer("last", table[len(table)-1].Month),
		logger.Duration("took", time.Since(started)))

	split, err := transform.SplitAt(table, uc.params.Cutoff)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	uc.log.Info("split",
		logger.Stringer("cutoff", split.Cutoff),
		logger.Int("train_rows", len(split.Train)),
		logger.Int("test_rows", len(split.Test)))

	started = time.Now()
	bank, err := regression.FitBank(split.Train, uc.reg)
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	uc.log.Info("fitted model bank",
		logger.Int("models", len(bank.Models)),
		logger.Int("coefficients", regression.NumCoefficients),
		logger.Duration("took", time.Since(started)))

	res, err := evaluate.Evaluate(table, split, bank)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	for _, row := range res.OutOfSample {
		uc.log.Debug("out-of-sample accuracy",
			logger.String("model", string(row.Model)),
			logger.Float64("mape", row.MAPE),
			logger.Float64("rmse", row.RMSE))
	}

	return &models.Report{
		Cutoff:      split.Cutoff,
		Actuals:     res.TestActuals,
		Forecasts:   res.TestForecasts,
		InSample:    res.InSample,
		OutOfSample: res.OutOfSample,
	}, nil
}

// fetchAll retrieves every configured series sequentially. No retry: an
// unreachable source or an unknown series aborts the run.
func (uc *ReportUseCase) fetchAll(ctx context.Context) (map[models.SeriesID][]models.RawObservation, error) {
	raw := make(map[models.SeriesID][]models.RawObservation, len(uc.params.Series))
	for _, id := range uc.params.Series {
		started := time.Now()
		obs, err := uc.source.FetchMonthly(ctx, id, uc.params.Start, uc.params.End)
		if err != nil {
			return nil, err
		}
		uc.log.Info("fetched series",
			logger.String("series", string(id)),
			logger.Int("observations", len(obs)),
			logger.Duration("took", time.Since(started)))
		raw[id] = obs
	}
	return raw, nil
}
