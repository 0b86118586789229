package engine

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"winedash/internal/models"
)

func toFloats(xs []int32) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

func mean(xs []float64) models.Stat {
	if len(xs) == 0 {
		return models.Undefined
	}
	return models.Defined(stat.Mean(xs, nil))
}

// sampleStd uses the n-1 denominator and is undefined below two values.
func sampleStd(xs []float64) models.Stat {
	if len(xs) < 2 {
		return models.Undefined
	}
	return models.Defined(stat.StdDev(xs, nil))
}

// Correlation is the Pearson coefficient between points and price.
// Undefined for fewer than two rows or a constant column.
func Correlation(cs *ColumnStore) models.Stat {
	return pearson(toFloats(cs.Points), cs.Prices)
}

func pearson(x, y []float64) models.Stat {
	if len(x) < 2 || len(x) != len(y) {
		return models.Undefined
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return models.Undefined
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return models.Undefined
	}
	return models.Defined(math.Max(-1, math.Min(1, r)))
}
