package regression

import (
	"fmt"

	"MacroCast/internal/domain/models"
	drepo "MacroCast/internal/domain/repository"
)

// FittedModel is one estimated Phillips-curve regression. Read-only
// after FitBank returns.
type FittedModel struct {
	Name         models.ModelName
	Predictor    models.Column
	Coefficients []float64
}

// ForecastAt evaluates the model at target index i of a contiguous
// table. ok is false when i lacks full lag history within the table.
func (m *FittedModel) ForecastAt(table models.TransformedTable, i int) (float64, bool) {
	row := designRow(table, i, m.Predictor)
	if row == nil {
		return 0, false
	}
	var sum float64
	for j, v := range row {
		sum += m.Coefficients[j] * v
	}
	return sum, true
}

// bankSpecs pairs each model name with its alternating predictor block.
// The rest of the design is identical across models.
var bankSpecs = []struct {
	name      models.ModelName
	predictor models.Column
}{
	{models.ModelUN, models.ColUnrate},
	{models.ModelEXPINF, models.ColExpinf1yr},
	{models.ModelMICH, models.ColMich},
	{models.ModelINDPRO, models.ColIndpro},
}

// Bank holds the four fitted models. The ensemble is derived from them
// and carries no coefficients of its own.
type Bank struct {
	Models []*FittedModel
}

// FitBank estimates the four regressions on the training window using
// the injected Regressor. Each model depends only on the training rows
// and its own predictor.
func FitBank(train models.TransformedTable, reg drepo.Regressor) (*Bank, error) {
	bank := &Bank{Models: make([]*FittedModel, 0, len(bankSpecs))}
	for _, spec := range bankSpecs {
		y, x, _ := design(train, spec.predictor)
		if len(x) < NumCoefficients {
			return nil, fmt.Errorf("fit %s: %d usable rows for %d coefficients: %w",
				spec.name, len(x), NumCoefficients, ErrRankDeficient)
		}
		coef, err := reg.Fit(y, x)
		if err != nil {
			return nil, fmt.Errorf("fit %s: %w", spec.name, err)
		}
		bank.Models = append(bank.Models, &FittedModel{
			Name:         spec.name,
			Predictor:    spec.predictor,
			Coefficients: coef,
		})
	}
	return bank, nil
}

// Model returns the fitted model with the given name, or nil.
func (b *Bank) Model(name models.ModelName) *FittedModel {
	for _, m := range b.Models {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// ForecastAll evaluates every model plus the ensemble at target index i
// of a contiguous table. The ensemble is the unweighted mean of the four
// component forecasts. ok is false when i lacks full lag history.
func (b *Bank) ForecastAll(table models.TransformedTable, i int) (map[models.ModelName]float64, bool) {
	out := make(map[models.ModelName]float64, len(b.Models)+1)
	var sum float64
	for _, m := range b.Models {
		f, ok := m.ForecastAt(table, i)
		if !ok {
			return nil, false
		}
		out[m.Name] = f
		sum += f
	}
	out[models.ModelEnsemble] = sum / float64(len(b.Models))
	return out, true
}
