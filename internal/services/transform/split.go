package transform

import (
	"errors"
	"fmt"

	"MacroCast/internal/domain/models"
	"MacroCast/pkg/util"
)

// ErrCutoffOutOfRange means the cutoff leaves the train or test window
// empty. That is a configuration error, not a recoverable condition.
var ErrCutoffOutOfRange = errors.New("split: cutoff outside table range")

// SplitAt partitions the table at the cutoff month: rows with month ≤
// cutoff go to Train, the rest to Test. Order is preserved and the two
// windows together are exactly the input table.
func SplitAt(table models.TransformedTable, cutoff util.Month) (models.Split, error) {
	if len(table) == 0 {
		return models.Split{}, fmt.Errorf("%w: empty table", ErrCutoffOutOfRange)
	}

	k := 0
	for k < len(table) && !table[k].Month.After(cutoff) {
		k++
	}

	if k == 0 {
		return models.Split{}, fmt.Errorf("%w: cutoff %s before first row %s",
			ErrCutoffOutOfRange, cutoff, table[0].Month)
	}
	if k == len(table) {
		return models.Split{}, fmt.Errorf("%w: cutoff %s leaves no test rows (last row %s)",
			ErrCutoffOutOfRange, cutoff, table[len(table)-1].Month)
	}

	return models.Split{Cutoff: cutoff, Train: table[:k:k], Test: table[k:]}, nil
}
